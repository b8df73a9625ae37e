package layout

import "fmt"

// Mode selects which axis encodes prerequisite depth.
type Mode string

const (
	// ModeColumn maps depth to X and spreads each layer along Y.
	// Used for module course maps and quest maps.
	ModeColumn Mode = "column"
	// ModeRow maps depth to Y and spreads each layer along X.
	// Used for program and curriculum maps.
	ModeRow Mode = "row"
)

// ParseMode converts a string to a Mode, rejecting unknown values.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeColumn, ModeRow:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode: %q (must be one of: column, row)", s)
	}
}

// Distribution decides how k items are spread over an axis range.
type Distribution int

const (
	// Slots divides the range into k+1 equal gaps and places item i
	// (0-indexed) at Min + (i+1)*gap, so nothing touches the range ends.
	Slots Distribution = iota
	// Span places the first item at Min and the last at Max with equal gaps
	// between. A single item is centered on the canvas at 50.
	Span
)

// Axis describes how positions along one axis are computed.
type Axis struct {
	Dist     Distribution
	Min, Max float64
}

// place returns the coordinate of item i out of k along the axis.
func (a Axis) place(i, k int) float64 {
	switch a.Dist {
	case Span:
		if k <= 1 {
			return center
		}
		return a.Min + float64(i)/float64(k-1)*(a.Max-a.Min)
	default:
		gap := (a.Max - a.Min) / float64(k+1)
		return a.Min + gap*float64(i+1)
	}
}

const (
	// center is the canvas midpoint used for singleton placements.
	center = 50.0

	// DefaultPrecision is the number of decimals kept in output coordinates.
	DefaultPrecision = 2
)

// Axis presets matching the two map conventions.
var (
	columnDepthAxis  = Axis{Dist: Slots, Min: 0, Max: 100}
	columnSpreadAxis = Axis{Dist: Slots, Min: 0, Max: 100}
	rowDepthAxis     = Axis{Dist: Span, Min: 10, Max: 85}
	rowSpreadAxis    = Axis{Dist: Span, Min: 15, Max: 85}
)

// config holds the resolved planner settings.
type config struct {
	mode      Mode
	depth     Axis
	spread    Axis
	precision int
}

// Option configures [Build].
type Option func(*config)

// WithMode selects the axis convention and resets both axes to the mode's
// defaults. Apply it before [WithDepthAxis] or [WithSpreadAxis].
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
		if m == ModeRow {
			c.depth, c.spread = rowDepthAxis, rowSpreadAxis
		} else {
			c.depth, c.spread = columnDepthAxis, columnSpreadAxis
		}
	}
}

// WithDepthAxis overrides how depth maps onto its axis.
func WithDepthAxis(a Axis) Option { return func(c *config) { c.depth = a } }

// WithSpreadAxis overrides how nodes within a layer are spread.
func WithSpreadAxis(a Axis) Option { return func(c *config) { c.spread = a } }

// WithPrecision sets the number of decimals kept in coordinates.
// Negative values are ignored.
func WithPrecision(p int) Option {
	return func(c *config) {
		if p >= 0 {
			c.precision = p
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		mode:      ModeColumn,
		depth:     columnDepthAxis,
		spread:    columnSpreadAxis,
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
