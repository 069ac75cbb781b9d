// Package progress provides the progress-sink plumbing shared by every
// analyzer pass: a plain callback plus a helper that rescales a pass's
// local [0,1] progress into the fixed sub-range the batch orchestrator
// reserves for it. This generalizes the teacher's numbered-pass progress
// callback (pass int, passName string, progress float64, ...) into named
// stages with an explicit sub-range, since recspec's stages are DSP passes
// rather than ffmpeg filter-graph passes.
package progress

// Sink receives a human-readable message and overall progress in [0,1].
// Implementations that need single-threaded delivery (e.g. a Bubbletea
// program) must marshal internally — the sink may be invoked concurrently
// from multiple batch workers.
type Sink func(message string, progress float64)

// Noop discards all progress reports.
func Noop(string, float64) {}

// Range is a fixed sub-range of [0,1] owned by one analyzer pass, per the
// table in spec.md §4.10.
type Range struct {
	Lo, Hi float64
}

// Scoped returns a Sink that rescales a local progress value in [0,1] into
// r's sub-range before forwarding to parent. Values are clamped to [0,1]
// before rescaling so a pass that slightly overshoots never reports
// progress outside its reserved range.
func (r Range) Scoped(parent Sink) Sink {
	if parent == nil {
		parent = Noop
	}
	return func(message string, local float64) {
		if local < 0 {
			local = 0
		} else if local > 1 {
			local = 1
		}
		parent(message, r.Lo+local*(r.Hi-r.Lo))
	}
}

// Standard sub-ranges for the per-file pipeline, per spec.md §4.10.
var (
	Peak          = Range{0.00, 0.20}
	NoiseFloor    = Range{0.20, 0.45}
	Normalization = Range{0.45, 0.50}
	Reverb        = Range{0.50, 0.65}
	Silence       = Range{0.65, 0.80}
	Clipping      = Range{0.80, 0.90}
	Stereo        = Range{0.90, 0.95}
	Bleed         = Range{0.95, 1.00}
)
