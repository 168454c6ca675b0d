package domain

// Point is one (x, y) sample of a chart series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is the vapor pressure of one component over a temperature range.
// X is temperature (K), Y is pressure (kPa).
type Curve struct {
	Component string  `json:"component"`
	Points    []Point `json:"points"`
}

// BoilingPoint is the grid temperature whose vapor pressure is closest to Pressure.
type BoilingPoint struct {
	Component   string  `json:"component"`
	Pressure    float64 `json:"pressure"`
	Temperature float64 `json:"temperature"`
}

// Separation is the absolute boiling temperature difference of a pair.
type Separation struct {
	Pair       Pair    `json:"pair"`
	Label      string  `json:"label"`
	Pressure   float64 `json:"pressure"`
	First      float64 `json:"first"`
	Second     float64 `json:"second"`
	Difference float64 `json:"difference"`
}

// Skip records a component dropped from a recomputation.
type Skip struct {
	Component string `json:"component"`
	Reason    string `json:"reason"`
}

// Dashboard is everything one recomputation produces.
type Dashboard struct {
	Params     Params         `json:"params"`
	Curves     []Curve        `json:"curves"`
	Boiling    []BoilingPoint `json:"boiling"`
	Separation *Separation    `json:"separation,omitempty"`
	Sweep      []Point        `json:"sweep,omitempty"` // X pressure (kPa), Y difference (K)
	Skipped    []Skip         `json:"skipped,omitempty"`
}
