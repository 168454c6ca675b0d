package domain

// Defaults of the interactive parameters, matching the initial slider positions of
// the dashboard.
const (
	DefaultTmin     = 250.0
	DefaultTmax     = 550.0
	DefaultPtarget  = 101.325
	DefaultCurvePts = 300
)

// Slider bounds exposed to the UI layer (Kelvin and kPa).
const (
	TminLower    = 200.0
	TminUpper    = 400.0
	TmaxLower    = 400.0
	TmaxUpper    = 700.0
	PtargetLower = 10.0
	PtargetUpper = 5000.0
	SliderStepT  = 10.0
	SliderStepP  = 10.0
)

// Separation sweep over pressure.
const (
	SweepPmin   = 10.0
	SweepPmax   = 5000.0
	SweepPoints = 200
)

// PairSeparator joins the two component names of a pair key ("Water|Ethanol").
const PairSeparator = "|"
