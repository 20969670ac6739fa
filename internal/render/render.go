package render

import (
	"fmt"
	"strconv"
	"strings"

	"shodan_gt_report/internal/model"
)

// 字段缺失时的占位符
const placeholder = "?"

// banner只保留第一行的前180个字符
const maxBannerLen = 180

// 最多展示的hostname数量
const maxHostnames = 3

// Line 把一条记录格式化成两行文本：
// 第一行是序号、IP、端口、协议、城市、hostname和服务名，
// 第二行是截断后的banner首行。字段缺失降级为占位符，永不报错。
func Line(idx int, m model.HostMatch) string {
	ip := placeholder
	if v, ok := m.IPAddress(); ok {
		ip = v
	}

	port := placeholder
	if p, ok := m.PortNumber(); ok {
		port = strconv.Itoa(p)
	}

	proto := placeholder
	if v, ok := m.TransportProtocol(); ok {
		proto = v
	}

	city := placeholder
	if v, ok := m.CityName(); ok {
		city = v
	}

	hosts := m.Hostnames
	if len(hosts) > maxHostnames {
		hosts = hosts[:maxHostnames]
	}

	svc := placeholder
	if v, ok := m.ServiceName(); ok {
		svc = v
	}

	return fmt.Sprintf("[%d] %s:%s/%s  ciudad=%s  hostnames=%s  servicio=%s\n      banner: %s",
		idx, ip, port, proto, city, strings.Join(hosts, ","), svc, m.FirstBannerLine(maxBannerLen))
}
