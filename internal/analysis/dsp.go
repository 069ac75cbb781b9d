// Package analysis implements the DSP passes (C3-C7 in spec.md §4): peak,
// noise floor, normalization and clipping (level.go); reverb RT60
// (reverb.go); silence structure (silence.go); stereo topology (stereo.go);
// mic bleed and conversational turn-taking (bleed.go). Every pass consumes
// an audio.Buffer and a cancel.Token, and reports through a progress.Sink
// scoped to its reserved sub-range — mirroring how the teacher threads a
// progress callback and a noise-floor/measurements struct through each
// filter pass without any pass holding a back-reference to its caller.
package analysis

import "math"

const negInf = math.Inf(-1)

// dbFromAmplitude converts a linear amplitude to dBFS. Zero amplitude maps
// to negative infinity, per spec.md §4.3.
func dbFromAmplitude(amp float64) float64 {
	if amp <= 0 {
		return negInf
	}
	return 20 * math.Log10(amp)
}

func linearFromDB(db float64) float64 {
	return math.Pow(10, db/20)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// monoMix returns the mean-across-channels mono mixdown of buf, used by
// passes that spec.md defines on "the mean-across-channels mono mix"
// (reverb) or on global (not per-channel) RMS series (silence).
func monoMix(channels [][]float32) []float32 {
	if len(channels) == 1 {
		return channels[0]
	}
	n := len(channels[0])
	out := make([]float32, n)
	inv := float32(1) / float32(len(channels))
	for _, ch := range channels {
		for i, s := range ch {
			out[i] += s * inv
		}
	}
	return out
}

// windowRMSDB computes the RMS level in dBFS of a single window (a slice
// per channel covering the same frame range), using the mean-across-
// channels of squared samples as spec.md §4.3 specifies.
func windowRMSDB(frames [][]float32) float64 {
	var sumSq float64
	var n int
	for _, ch := range frames {
		for _, s := range ch {
			sumSq += float64(s) * float64(s)
			n++
		}
	}
	if n == 0 {
		return negInf
	}
	meanSq := sumSq / float64(n)
	if meanSq <= 0 {
		return negInf
	}
	return 10 * math.Log10(meanSq)
}

// rmsSeries slices buf's channels into non-overlapping windows of
// windowFrames length (the last, possibly short, window is included) and
// returns the RMS level of each in dBFS.
func rmsSeries(channels [][]float32, windowFrames int) []float64 {
	if windowFrames <= 0 {
		return nil
	}
	total := len(channels[0])
	var out []float64
	for start := 0; start < total; start += windowFrames {
		end := start + windowFrames
		if end > total {
			end = total
		}
		frames := make([][]float32, len(channels))
		for c, ch := range channels {
			frames[c] = ch[start:end]
		}
		out = append(out, windowRMSDB(frames))
	}
	return out
}
