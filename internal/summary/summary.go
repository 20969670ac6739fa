package summary

import (
	"sort"

	"shodan_gt_report/internal/model"
)

// RunSummary 是一次运行的汇总状态：已列出总数、唯一IP集合、
// 每个端口对应的唯一IP集合。只由本包修改，不做持久化。
type RunSummary struct {
	totalListed int
	uniqueIPs   map[string]struct{}
	portMap     map[int]map[string]struct{}
}

// NewRunSummary 创建空的汇总状态
func NewRunSummary() *RunSummary {
	return &RunSummary{
		uniqueIPs: make(map[string]struct{}),
		portMap:   make(map[int]map[string]struct{}),
	}
}

// Record 记录单条结果：有IP才入集合，同时有端口才进端口映射
func (s *RunSummary) Record(m model.HostMatch) {
	ip, ok := m.IPAddress()
	if !ok {
		return
	}
	s.uniqueIPs[ip] = struct{}{}

	if port, ok := m.PortNumber(); ok {
		if s.portMap[port] == nil {
			s.portMap[port] = make(map[string]struct{})
		}
		s.portMap[port][ip] = struct{}{}
	}
}

// AddListed 按批次大小累加列出总数，无IP的记录也计入
func (s *RunSummary) AddListed(n int) {
	s.totalListed += n
}

// TotalListed 返回已列出的记录总数
func (s *RunSummary) TotalListed() int {
	return s.totalListed
}

// UniqueIPCount 返回唯一IP数量
func (s *RunSummary) UniqueIPCount() int {
	return len(s.uniqueIPs)
}

// UniqueIPs 返回排序后的唯一IP列表
func (s *RunSummary) UniqueIPs() []string {
	ips := make([]string, 0, len(s.uniqueIPs))
	for ip := range s.uniqueIPs {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return ips
}

// Ports 返回升序的端口列表
func (s *RunSummary) Ports() []int {
	ports := make([]int, 0, len(s.portMap))
	for p := range s.portMap {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}

// IPCountForPort 返回某端口上的唯一IP数量
func (s *RunSummary) IPCountForPort(port int) int {
	return len(s.portMap[port])
}

// PortsForIP 返回某IP上观测到的端口数量
func (s *RunSummary) PortsForIP(ip string) int {
	count := 0
	for _, ips := range s.portMap {
		if _, ok := ips[ip]; ok {
			count++
		}
	}
	return count
}
