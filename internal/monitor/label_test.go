package monitor

import (
	"strings"
	"testing"
)

func TestNormalizeSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "erp", "erp"},
		{"empty", "", DefaultSource},
		{"whitespace only", "  \t ", DefaultSource},
		{"trims and collapses", "  order   desk ", "order desk"},
		{"full-width folded", "ＥＲＰ", "ERP"},
		{"control chars removed", "er\x00p\x07", "erp"},
		{"case preserved", "Warehouse", "Warehouse"},
		{"non-latin kept", "倉庫", "倉庫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSource(tt.in); got != tt.want {
				t.Errorf("NormalizeSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSourceTruncates(t *testing.T) {
	got := NormalizeSource(strings.Repeat("é", MaxSourceLen+10))
	if n := len([]rune(got)); n != MaxSourceLen {
		t.Errorf("got %d runes, want %d", n, MaxSourceLen)
	}
}
