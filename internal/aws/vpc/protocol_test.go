package vpc

import "testing"

func TestNormalizeProtocol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-1", "all"},
		{"6", "tcp"},
		{"tcp", "tcp"},
		{"17", "udp"},
		{"1", "icmp"},
		{"58", "icmpv6"},
		{"47", "47"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeProtocol(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeProtocol(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
