package config

import "fmt"

// Profile names in the registry. Adding support for a new capture device
// means adding a new named entry here; no code elsewhere changes (base
// spec §4.4, §9 "module-level device profiles").
const (
	ProfileBT8x8PAL  = "bt8x8_pal"
	ProfileBT8x8NTSC = "bt8x8_ntsc"
)

// registry holds the profiles available at process start. It is built once
// in init and never mutated afterward.
var registry = map[string]LineConfig{}

func init() {
	registry[ProfileBT8x8PAL] = LineConfig{
		Name:               ProfileBT8x8PAL,
		SamplesPerLine:     2048,
		SampleRate:         35_468_950,
		BitRate:            6_937_500,
		CRIWindowStart:     0,
		CRIWindowEnd:       320,
		GainCurve:          identityGain(),
		DeconvKernel:       defaultDeconvKernel(),
		Threshold:          ThresholdAdaptive,
		RejectionThreshold: 3.0,
		BitWindowSigma:     0.25,
	}
	registry[ProfileBT8x8NTSC] = LineConfig{
		Name:               ProfileBT8x8NTSC,
		SamplesPerLine:     2048,
		SampleRate:         28_636_363,
		BitRate:            5_727_272,
		CRIWindowStart:     0,
		CRIWindowEnd:       320,
		GainCurve:          identityGain(),
		DeconvKernel:       defaultDeconvKernel(),
		Threshold:          ThresholdAdaptive,
		RejectionThreshold: 3.0,
		BitWindowSigma:     0.25,
	}
}

// ErrUnknownProfile is returned by NewLineConfig for an unregistered name.
// The CLI surface maps this to exit code 3 (base spec §6).
type ErrUnknownProfile struct{ Name string }

func (e ErrUnknownProfile) Error() string {
	return fmt.Sprintf("config: unknown device profile %q", e.Name)
}

// NewLineConfig looks up a device profile by name. The returned LineConfig
// is a copy of the registry entry and is safe to treat as immutable.
func NewLineConfig(name string) (LineConfig, error) {
	lc, ok := registry[name]
	if !ok {
		return LineConfig{}, ErrUnknownProfile{Name: name}
	}
	return lc, nil
}

// Profiles returns the names of all registered device profiles, sorted
// by registration is not guaranteed; callers that need a stable order
// should sort the result themselves.
func Profiles() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

// identityGain returns a 256-entry unity gain curve; NewLowPass-style DSP
// filters apply correction multiplicatively so unity is a safe default.
func identityGain() []float64 {
	g := make([]float64, 256)
	for i := range g {
		g[i] = 1
	}
	return g
}

// defaultDeconvKernel is a short symmetric inverse kernel that sharpens the
// bit transitions smeared by the VBI low-pass channel (base spec §4.1 step
// 4). A 5-tap kernel with a center boost and small negative side lobes is a
// standard discrete approximation of deconvolving a first-order low-pass.
func defaultDeconvKernel() []float64 {
	return []float64{-0.05, -0.15, 1.4, -0.15, -0.05}
}
