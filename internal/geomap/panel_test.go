package geomap

import "testing"

func TestPanelOpenClose(t *testing.T) {
	p := NewPanel(0.2, 0.6)

	if p.IsOpen() {
		t.Error("panel open at construction, want closed")
	}
	p.Open()
	if !p.IsOpen() {
		t.Error("panel closed after Open")
	}
	p.Close()
	if p.IsOpen() {
		t.Error("panel open after Close")
	}
}

func TestPanelDragClamped(t *testing.T) {
	p := NewPanel(0.2, 0.6)

	tests := []struct {
		drag float64
		want float64
	}{
		{0.4, 0.4},
		{0.05, 0.2},
		{0.95, 0.6},
		{0.2, 0.2},
		{0.6, 0.6},
	}
	for _, tc := range tests {
		if got := p.Drag(tc.drag); got != tc.want {
			t.Errorf("Drag(%v) = %v, want %v", tc.drag, got, tc.want)
		}
		if p.Width() != tc.want {
			t.Errorf("Width() after Drag(%v) = %v, want %v", tc.drag, p.Width(), tc.want)
		}
	}
}

func TestPanelWidthSurvivesClose(t *testing.T) {
	p := NewPanel(0.2, 0.6)
	p.Open()
	p.Drag(0.5)
	p.Close()
	p.Open()

	if p.Width() != 0.5 {
		t.Errorf("Width() after reopen = %v, want 0.5", p.Width())
	}
}

func TestPanelSwappedBounds(t *testing.T) {
	p := NewPanel(0.6, 0.2)
	if got := p.Drag(0.9); got != 0.6 {
		t.Errorf("Drag(0.9) with swapped bounds = %v, want 0.6", got)
	}
}
