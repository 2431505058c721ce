package fetch

// Default progress range
const (
	DefaultMin = 0
	DefaultMax = 90
)

// Counter is the progress value shown while a fetch is in flight.
// It cycles through [Min, Max) and carries no meaning beyond "still working".
type Counter struct {
	Min   int
	Max   int
	value int
}

// NewCounter returns a counter over [lo, hi) positioned at lo.
// A range narrower than two values falls back to the defaults.
func NewCounter(lo, hi int) Counter {
	if hi-lo < 2 {
		lo, hi = DefaultMin, DefaultMax
	}
	return Counter{Min: lo, Max: hi, value: lo}
}

// Advance moves one step forward, wrapping to Min after Max-1
func (c *Counter) Advance() {
	if c.value >= c.Max-1 || c.value < c.Min {
		c.value = c.Min
		return
	}
	c.value++
}

// Reset puts the counter back at Min
func (c *Counter) Reset() {
	c.value = c.Min
}

// Value returns the current position
func (c Counter) Value() int {
	return c.value
}

// Percent maps the current value onto [0, 1] for progress widgets
func (c Counter) Percent() float64 {
	span := c.Max - 1 - c.Min
	if span <= 0 {
		return 0
	}
	return float64(c.value-c.Min) / float64(span)
}
