package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHostMatchDecodesOptionalFields(t *testing.T) {
	raw := `{
		"ip_str": "190.56.1.2",
		"port": 3389,
		"transport": "tcp",
		"location": {"city": "Jalapa"},
		"hostnames": ["a.example.gt", "b.example.gt"],
		"data": "RDP banner line\r\nsecond line",
		"product": "ms-wbt-server",
		"_shodan": {"module": "rdp"}
	}`

	var m HostMatch
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if ip, ok := m.IPAddress(); !ok || ip != "190.56.1.2" {
		t.Fatalf("expected IP 190.56.1.2, got %q ok=%t", ip, ok)
	}
	if port, ok := m.PortNumber(); !ok || port != 3389 {
		t.Fatalf("expected port 3389, got %d ok=%t", port, ok)
	}
	if city, ok := m.CityName(); !ok || city != "Jalapa" {
		t.Fatalf("expected city Jalapa, got %q ok=%t", city, ok)
	}
	if svc, ok := m.ServiceName(); !ok || svc != "ms-wbt-server" {
		t.Fatalf("expected product as service, got %q ok=%t", svc, ok)
	}
	if banner := m.FirstBannerLine(180); banner != "RDP banner line" {
		t.Fatalf("expected first banner line, got %q", banner)
	}
}

func TestHostMatchToleratesAbsentFields(t *testing.T) {
	var m HostMatch
	if err := json.Unmarshal([]byte(`{}`), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if _, ok := m.IPAddress(); ok {
		t.Fatal("expected absent IP")
	}
	if _, ok := m.PortNumber(); ok {
		t.Fatal("expected absent port")
	}
	if _, ok := m.TransportProtocol(); ok {
		t.Fatal("expected absent transport")
	}
	if _, ok := m.CityName(); ok {
		t.Fatal("expected absent city")
	}
	if _, ok := m.ServiceName(); ok {
		t.Fatal("expected absent service")
	}
	if banner := m.FirstBannerLine(180); banner != "" {
		t.Fatalf("expected empty banner, got %q", banner)
	}
}

func TestIPAddressFallsBackToNumericIP(t *testing.T) {
	var m HostMatch
	// 0x01020304 = 1.2.3.4
	if err := json.Unmarshal([]byte(`{"ip": 16909060}`), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ip, ok := m.IPAddress(); !ok || ip != "1.2.3.4" {
		t.Fatalf("expected numeric fallback 1.2.3.4, got %q ok=%t", ip, ok)
	}
}

func TestCityNameFallsBackToTopLevelCity(t *testing.T) {
	var m HostMatch
	if err := json.Unmarshal([]byte(`{"city": "Antigua"}`), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if city, ok := m.CityName(); !ok || city != "Antigua" {
		t.Fatalf("expected top-level city Antigua, got %q ok=%t", city, ok)
	}
}

func TestServiceNameFallsBackToShodanModule(t *testing.T) {
	var m HostMatch
	if err := json.Unmarshal([]byte(`{"_shodan": {"module": "http"}}`), &m); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if svc, ok := m.ServiceName(); !ok || svc != "http" {
		t.Fatalf("expected module fallback http, got %q ok=%t", svc, ok)
	}
}

func TestFirstBannerLineTruncatesByRunes(t *testing.T) {
	m := HostMatch{Data: strings.Repeat("ñ", 200)}
	banner := m.FirstBannerLine(180)
	if got := len([]rune(banner)); got != 180 {
		t.Fatalf("expected 180 runes, got %d", got)
	}
	if strings.Contains(banner, "�") {
		t.Fatal("banner truncation split a multi-byte rune")
	}
}
