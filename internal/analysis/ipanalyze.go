package analysis

import (
	"fmt"
	"io"
	"sort"

	"shodan_gt_report/internal/summary"
)

// IPServiceCount 表示一个IP和其上观测到的端口数量
type IPServiceCount struct {
	IP        string
	PortCount int
}

// DenseServiceIPs 找出开放端口数达到阈值的IP，按端口数降序、IP升序排列。
// 这类IP业务面较大，值得单独做端口扫描确认。
func DenseServiceIPs(s *summary.RunSummary, threshold int) []IPServiceCount {
	var result []IPServiceCount
	for _, ip := range s.UniqueIPs() {
		if n := s.PortsForIP(ip); n >= threshold {
			result = append(result, IPServiceCount{IP: ip, PortCount: n})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PortCount != result[j].PortCount {
			return result[i].PortCount > result[j].PortCount
		}
		return result[i].IP < result[j].IP
	})
	return result
}

// PrintDenseServiceIPs 把高业务量IP表追加到报告里
func PrintDenseServiceIPs(w io.Writer, ips []IPServiceCount, threshold int) {
	if len(ips) == 0 {
		fmt.Fprintf(w, "\nNo se detectaron IPs con al menos %d puertos abiertos.\n", threshold)
		return
	}
	fmt.Fprintf(w, "\nIPs con al menos %d puertos abiertos:\n", threshold)
	fmt.Fprintln(w, "IP\tPuertos")
	for _, entry := range ips {
		fmt.Fprintf(w, "%s\t%d\n", entry.IP, entry.PortCount)
	}
}
