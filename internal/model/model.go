package model

import (
	"fmt"
	"strings"
)

// Identity 是打印在报告头部的学籍信息
type Identity struct {
	Carnet  string
	Nombre  string
	Curso   string
	Seccion string
}

// Location 是 Shodan match 里嵌套的位置信息
type Location struct {
	City string `json:"city"`
}

// ScanMeta 是 match 里 _shodan 元数据块
type ScanMeta struct {
	Module string `json:"module"`
}

// HostMatch 是 Shodan 搜索返回的单条资产记录。
// 所有字段都是可选的，访问必须通过容忍缺失的取值方法。
type HostMatch struct {
	IPStr     string    `json:"ip_str"`
	IPNumeric *int64    `json:"ip"`
	Port      *int      `json:"port"`
	Transport string    `json:"transport"`
	City      string    `json:"city"`
	Location  *Location `json:"location"`
	Hostnames []string  `json:"hostnames"`
	Data      string    `json:"data"`
	Product   string    `json:"product"`
	Meta      *ScanMeta `json:"_shodan"`
}

// IPAddress 取IP地址，优先ip_str，缺失时把数值ip转成点分十进制
func (m HostMatch) IPAddress() (string, bool) {
	if m.IPStr != "" {
		return m.IPStr, true
	}
	if m.IPNumeric != nil {
		v := uint32(*m.IPNumeric)
		return fmt.Sprintf("%d.%d.%d.%d", byte(v>>24), byte(v>>16), byte(v>>8), byte(v)), true
	}
	return "", false
}

// PortNumber 取端口号
func (m HostMatch) PortNumber() (int, bool) {
	if m.Port == nil {
		return 0, false
	}
	return *m.Port, true
}

// TransportProtocol 取传输协议（tcp/udp）
func (m HostMatch) TransportProtocol() (string, bool) {
	return m.Transport, m.Transport != ""
}

// CityName 取城市，优先location.city，兜底顶层city
func (m HostMatch) CityName() (string, bool) {
	if m.Location != nil && m.Location.City != "" {
		return m.Location.City, true
	}
	return m.City, m.City != ""
}

// ServiceName 取服务名，优先product，兜底_shodan.module
func (m HostMatch) ServiceName() (string, bool) {
	if m.Product != "" {
		return m.Product, true
	}
	if m.Meta != nil && m.Meta.Module != "" {
		return m.Meta.Module, true
	}
	return "", false
}

// FirstBannerLine 取banner第一行并按rune截断，缺失时返回空串
func (m HostMatch) FirstBannerLine(max int) string {
	if m.Data == "" {
		return ""
	}
	line := m.Data
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	if runes := []rune(line); len(runes) > max {
		line = string(runes[:max])
	}
	return line
}
