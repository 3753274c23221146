package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestSanitizePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  console.http  ": "console.http",
		"..foo..":          "foo",
		".":                "",
		"":                 "",
	}

	for input, want := range tests {
		if got := sanitizePrefix(input); got != want {
			t.Fatalf("sanitizePrefix(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" http/request ": "http_request",
		"foo..bar":       "foo.bar",
		"multi  space":   "multi__space",
	}

	for input, want := range tests {
		if got := normalizeMetricName(input); got != want {
			t.Fatalf("normalizeMetricName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestClientDisabledIsNoop(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Enabled() {
		t.Fatal("disabled client reports Enabled() = true")
	}
	// Must not panic on a client without a connection.
	client.Count("requests", 1, nil)
	client.Timing("latency", time.Millisecond, nil)
	if closeErr := client.Close(); closeErr != nil {
		t.Fatalf("Close: %v", closeErr)
	}
}

func TestClientEmitsTaggedLine(t *testing.T) {
	t.Parallel()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer conn.Close()

	client, err := NewClient(Config{
		Enabled:    true,
		Address:    conn.LocalAddr().String(),
		Prefix:     "console",
		GlobalTags: map[string]string{"service": "console"},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	client.Count("http.request", 1, map[string]string{"status": "200"})

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	buf := make([]byte, 512)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	line := string(buf[:n])

	if !strings.HasPrefix(line, "console.http.request:1|c") {
		t.Fatalf("unexpected metric line %q", line)
	}
	if !strings.Contains(line, "service:console") || !strings.Contains(line, "status:200") {
		t.Fatalf("missing tags in %q", line)
	}
}
