package geomap

// Panel tracks the visibility and user-dragged width of the city detail
// side panel. Width is a fraction of the viewport, clamped to [min, max].
type Panel struct {
	open  bool
	width float64
	min   float64
	max   float64
}

func NewPanel(min, max float64) *Panel {
	if min > max {
		min, max = max, min
	}
	return &Panel{
		width: min,
		min:   min,
		max:   max,
	}
}

func (p *Panel) Open() {
	p.open = true
}

func (p *Panel) Close() {
	p.open = false
}

func (p *Panel) IsOpen() bool {
	return p.open
}

// Drag sets the panel width from a pointer position, clamped to the
// configured bounds. The width is tracked even while closed so reopening
// restores the last size.
func (p *Panel) Drag(widthFraction float64) float64 {
	switch {
	case widthFraction < p.min:
		p.width = p.min
	case widthFraction > p.max:
		p.width = p.max
	default:
		p.width = widthFraction
	}
	return p.width
}

func (p *Panel) Width() float64 {
	return p.width
}
