package headless

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"89.0.774.57", "89.0.800.50", -1},
		{"89.0.774.57", "89.0.774.57", 0},
		{"89.0.800.50", "89.0.774.57", 1},
		{"1.0.0.0", "1.0.0.0", 0},
		{"1.0.0.0", "1.0.0.1", -1},
		{"1.0.0.1", "1.0.0.0", 1},
		{"120.0.2210.91", "99.0.1150.0", 1},
		{"1.2", "1.2.0.0", 0},
		{"1.10", "1.9", 1},
	}
	for _, tt := range tests {
		got, err := compareVersions(tt.a, tt.b)
		if err != nil {
			t.Fatalf("compareVersions(%q, %q): %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareVersions_Malformed(t *testing.T) {
	for _, v := range []string{"", "1..2", "1.a", "-1.0", "1.0 beta"} {
		if _, err := compareVersions(v, "1.0"); err == nil {
			t.Errorf("compareVersions(%q) succeeded", v)
		}
	}
}
