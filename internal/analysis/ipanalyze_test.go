package analysis

import (
	"bytes"
	"strings"
	"testing"

	"shodan_gt_report/internal/model"
	"shodan_gt_report/internal/summary"
)

func intPtr(v int) *int { return &v }

func buildSummary(entries map[string][]int) *summary.RunSummary {
	s := summary.NewRunSummary()
	for ip, ports := range entries {
		for _, p := range ports {
			s.Record(model.HostMatch{IPStr: ip, Port: intPtr(p)})
		}
	}
	return s
}

func TestDenseServiceIPsOrdersByPortCountThenIP(t *testing.T) {
	s := buildSummary(map[string][]int{
		"1.1.1.1": {80, 443, 8080},
		"2.2.2.2": {22},
		"3.3.3.3": {80, 443, 21},
		"4.4.4.4": {80, 443},
	})

	dense := DenseServiceIPs(s, 2)
	if len(dense) != 3 {
		t.Fatalf("expected 3 dense IPs, got %v", dense)
	}
	// 端口数相同按IP升序
	if dense[0].IP != "1.1.1.1" || dense[1].IP != "3.3.3.3" || dense[2].IP != "4.4.4.4" {
		t.Fatalf("unexpected order %v", dense)
	}
	if dense[0].PortCount != 3 || dense[2].PortCount != 2 {
		t.Fatalf("unexpected port counts %v", dense)
	}
}

func TestDenseServiceIPsEmptyBelowThreshold(t *testing.T) {
	s := buildSummary(map[string][]int{"1.1.1.1": {80}})
	if got := DenseServiceIPs(s, 2); len(got) != 0 {
		t.Fatalf("expected no dense IPs, got %v", got)
	}
}

func TestPrintDenseServiceIPs(t *testing.T) {
	var buf bytes.Buffer
	PrintDenseServiceIPs(&buf, []IPServiceCount{{IP: "1.1.1.1", PortCount: 3}}, 2)
	out := buf.String()
	if !strings.Contains(out, "IPs con al menos 2 puertos abiertos:") {
		t.Fatalf("missing section title in:\n%s", out)
	}
	if !strings.Contains(out, "1.1.1.1\t3") {
		t.Fatalf("missing row in:\n%s", out)
	}

	buf.Reset()
	PrintDenseServiceIPs(&buf, nil, 4)
	if !strings.Contains(buf.String(), "No se detectaron IPs con al menos 4 puertos abiertos.") {
		t.Fatalf("missing empty notice in:\n%s", buf.String())
	}
}
