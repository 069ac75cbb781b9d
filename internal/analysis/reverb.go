package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/rerr"
)

// Reverb timing constants, per spec.md §4.4.
const (
	onsetWindowSeconds   = 0.05
	trailingWindowCount  = 5 // 250ms / 50ms
	onsetRiseDB          = 12.0
	onsetFloorMarginDB   = 20.0
	onsetFloorCeilingDB  = -50.0
	decayWindowSeconds   = 0.005
	decayObserveSeconds  = 0.5
	decayFloorMarginDB   = 3.0
	maxUsableOnsets      = 20
	minUsableOnsets      = 3
)

// ReverbFindings is C4's output, per spec.md §3. Rt60Seconds is NaN and
// Label is "Undetermined" when fewer than minUsableOnsets onsets yield a
// usable decay fit.
type ReverbFindings struct {
	Rt60Seconds float64
	Label       string
}

// reverbCandidate is one onset's decay-fit result, kept alongside its
// quality score so the "cleanest" onsets can be selected when more than
// maxUsableOnsets are found.
type reverbCandidate struct {
	rt60    float64
	quality float64
}

// AnalyzeReverb estimates RT60 from buf's mean-across-channels mono mix,
// per spec.md §4.4. noiseFloorDB is the C3 noise-floor estimate for the
// same buffer.
func AnalyzeReverb(buf audio.Buffer, noiseFloorDB float64, sink progress.Sink, tok cancel.Token) (ReverbFindings, error) {
	if sink == nil {
		sink = progress.Noop
	}
	sink("reverb", 0)

	mono := monoMix(buf.Channels)
	sampleRate := float64(buf.SampleRateHz)
	if len(mono) == 0 || sampleRate <= 0 {
		sink("reverb", 1)
		return undeterminedReverb(), nil
	}

	window50 := framesFor(onsetWindowSeconds, sampleRate)
	series50 := rmsSeries([][]float32{mono}, window50)

	floorCeiling := math.Max(noiseFloorDB+onsetFloorMarginDB, onsetFloorCeilingDB)

	var candidates []reverbCandidate
	for i := trailingWindowCount; i < len(series50); i++ {
		if i%pollWindowInterval == 0 {
			if tok.Cancelled() {
				return ReverbFindings{}, rerr.Cancelled("reverb")
			}
			sink("reverb", float64(i)/float64(len(series50)))
		}

		if math.IsInf(series50[i], -1) {
			continue
		}
		var trailingSum float64
		for j := i - trailingWindowCount; j < i; j++ {
			trailingSum += series50[j]
		}
		trailingAvg := trailingSum / float64(trailingWindowCount)

		if series50[i] < trailingAvg+onsetRiseDB {
			continue
		}
		if series50[i] < floorCeiling {
			continue
		}

		onsetStart := i * window50
		if cand, ok := fitDecay(mono, onsetStart, sampleRate, noiseFloorDB); ok {
			candidates = append(candidates, cand)
		}
	}

	sink("reverb", 1)

	if len(candidates) < minUsableOnsets {
		return undeterminedReverb(), nil
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].quality > candidates[j].quality })
	if len(candidates) > maxUsableOnsets {
		candidates = candidates[:maxUsableOnsets]
	}

	rt60s := make([]float64, len(candidates))
	for i, c := range candidates {
		rt60s[i] = c.rt60
	}
	sort.Float64s(rt60s)
	rt60 := median(rt60s)

	return ReverbFindings{Rt60Seconds: rt60, Label: reverbLabel(rt60)}, nil
}

func undeterminedReverb() ReverbFindings {
	return ReverbFindings{Rt60Seconds: math.NaN(), Label: "Undetermined"}
}

func reverbLabel(rt60 float64) string {
	switch {
	case rt60 < 0.3:
		return "Excellent"
	case rt60 < 0.5:
		return "Good"
	case rt60 < 0.8:
		return "Acceptable"
	default:
		return "Poor"
	}
}

// fitDecay observes the 500ms following onsetStart at 5ms resolution,
// restricts to the decay portion (local peak to the first point within 3dB
// of the noise floor), and fits a linear regression of dB envelope over
// time. Returns false if the window has too few decay points to fit, or if
// the fitted slope does not indicate decay.
func fitDecay(mono []float32, onsetStart int, sampleRate, noiseFloorDB float64) (reverbCandidate, bool) {
	window5 := framesFor(decayWindowSeconds, sampleRate)
	if window5 < 1 {
		return reverbCandidate{}, false
	}
	observeFrames := framesFor(decayObserveSeconds, sampleRate)
	end := onsetStart + observeFrames
	if end > len(mono) {
		end = len(mono)
	}
	if end <= onsetStart {
		return reverbCandidate{}, false
	}

	segment := mono[onsetStart:end]
	series5 := rmsSeries([][]float32{segment}, window5)
	if len(series5) < 2 {
		return reverbCandidate{}, false
	}

	peakIdx := 0
	for i, v := range series5 {
		if v > series5[peakIdx] {
			peakIdx = i
		}
	}

	floorLine := noiseFloorDB + decayFloorMarginDB
	decayEnd := len(series5)
	for i := peakIdx; i < len(series5); i++ {
		if series5[i] <= floorLine {
			decayEnd = i + 1
			break
		}
	}

	var xs, ys []float64
	for i := peakIdx; i < decayEnd; i++ {
		if math.IsInf(series5[i], -1) {
			continue
		}
		xs = append(xs, float64(i)*decayWindowSeconds)
		ys = append(ys, series5[i])
	}
	if len(xs) < 2 {
		return reverbCandidate{}, false
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if slope >= 0 {
		return reverbCandidate{}, false
	}

	quality := math.Abs(stat.Correlation(xs, ys, nil))
	rt60 := 60 / math.Abs(slope)
	return reverbCandidate{rt60: rt60, quality: quality}, true
}

func framesFor(seconds, sampleRate float64) int {
	n := int(math.Round(seconds * sampleRate))
	if n < 1 {
		return 1
	}
	return n
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
