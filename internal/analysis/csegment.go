package analysis

import (
	"fmt"
	"io"
	"net"
	"sort"
	"strings"
)

// CSegmentCount 表示一个C段和落在其中的唯一IP数量
type CSegmentCount struct {
	CIDR  string
	Count int
}

// HighDensityCSegments 统计唯一IP落入的 /24 段，返回数量达到阈值的段，
// 按CIDR排序。非IPv4地址直接跳过。
func HighDensityCSegments(ips []string, threshold int) []CSegmentCount {
	counts := make(map[string]int)
	for _, ip := range ips {
		parsed := net.ParseIP(ip)
		if parsed == nil || parsed.To4() == nil {
			continue
		}
		parts := strings.Split(ip, ".")
		if len(parts) != 4 {
			continue
		}
		cidr := fmt.Sprintf("%s.%s.%s.0/24", parts[0], parts[1], parts[2])
		counts[cidr]++
	}

	var result []CSegmentCount
	for cidr, count := range counts {
		if count >= threshold {
			result = append(result, CSegmentCount{CIDR: cidr, Count: count})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CIDR < result[j].CIDR })
	return result
}

// PrintCSegments 把高密度C段表追加到报告里
func PrintCSegments(w io.Writer, segments []CSegmentCount, threshold int) {
	if len(segments) == 0 {
		fmt.Fprintf(w, "\nNo se detectaron segmentos /24 con al menos %d IPs.\n", threshold)
		return
	}
	fmt.Fprintf(w, "\nSegmentos /24 con al menos %d IPs:\n", threshold)
	fmt.Fprintln(w, "CIDR\tIPs únicas")
	for _, seg := range segments {
		fmt.Fprintf(w, "%s\t%d\n", seg.CIDR, seg.Count)
	}
}
