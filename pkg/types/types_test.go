package types

import "testing"

func TestMomentString(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range AllMoments {
		name := m.String()
		if name == "unknown" {
			t.Errorf("Moment %d has no name", m)
		}
		if seen[name] {
			t.Errorf("Duplicate moment name %q", name)
		}
		seen[name] = true
	}
	if Moment(99).String() != "unknown" {
		t.Error("Out-of-range moment should be unknown")
	}
}

func TestParsePlotContent(t *testing.T) {
	tests := []struct {
		in   string
		want PlotContent
	}{
		{"Corn", PlotCorn},
		{"DeadBody", PlotDeadBody},
		{"Tractor", PlotTractor},
		{"", PlotEmpty},
		{"corn", PlotEmpty},
		{"Pumpkin", PlotEmpty},
	}
	for _, tt := range tests {
		if got := ParsePlotContent(tt.in); got != tt.want {
			t.Errorf("ParsePlotContent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
