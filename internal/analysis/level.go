package analysis

import (
	"math"
	"sort"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/rerr"
)

// NormalizationTargetDB is the fixed normalization target, per spec.md
// §4.3 — not preset-driven.
const NormalizationTargetDB = -6.0

// normalizationToleranceDB is the ±0.3 dB tolerance band around the target.
const normalizationToleranceDB = 0.3

// ClippedThreshold and NearClippingLowBound are the amplitude cutoffs from
// spec.md §4.3.
const (
	ClippedThreshold     = 0.999
	NearClippingLowBound = 0.98
)

// minClipEventRun is the minimum run length, in consecutive clipped
// samples, for a run to count as a clipping event.
const minClipEventRun = 3

// rmsWindowSeconds is the fixed RMS window/hop size, per spec.md §4.3.
const rmsWindowSeconds = 0.05

// ClippingFindings reports clipping-event statistics for a buffer.
type ClippingFindings struct {
	EventCount       int
	ClippedPct       float64
	NearClippingPct  float64
}

// Normalization reports whether a file's peak sits at the target level.
type Normalization struct {
	Status  string // "normalized" or "not_normalized"
	PeakDB  float64
	TargetDB float64
}

// LevelFindings is C3's output, per spec.md §3.
type LevelFindings struct {
	PeakDB               float64
	NoiseFloorDB         float64
	NoiseFloorPerChannel []float64 // optional; nil if not computed
	Normalization        Normalization
	Clipping             ClippingFindings
}

// AnalyzeLevel runs the peak, noise-floor and normalization passes over
// buf, in that order, reporting progress through sink scoped to each
// pass's reserved sub-range. Clipping is a separate pass (AnalyzeClipping)
// since spec.md §5's dependency order runs it after reverb and silence,
// even though all four passes share this package's LevelFindings type.
func AnalyzeLevel(buf audio.Buffer, sink progress.Sink, tok cancel.Token) (LevelFindings, error) {
	if sink == nil {
		sink = progress.Noop
	}

	peak, err := peakAmplitude(buf.Channels, progress.Peak.Scoped(sink), tok)
	if err != nil {
		return LevelFindings{}, err
	}
	peakDB := dbFromAmplitude(peak)

	windowFrames := int(math.Round(rmsWindowSeconds * float64(buf.SampleRateHz)))
	if windowFrames < 1 {
		windowFrames = 1
	}

	nfSink := progress.NoiseFloor.Scoped(sink)
	series := rmsSeries(buf.Channels, windowFrames)
	if err := pollWindows(len(series), nfSink, tok, "noise-floor"); err != nil {
		return LevelFindings{}, err
	}
	noiseFloor := estimateNoiseFloor(series, peakDB)

	var perChannel []float64
	if len(buf.Channels) > 1 {
		perChannel = make([]float64, len(buf.Channels))
		for c, ch := range buf.Channels {
			s := rmsSeries([][]float32{ch}, windowFrames)
			perChannel[c] = estimateNoiseFloor(s, peakDB)
		}
	}

	normSink := progress.Normalization.Scoped(sink)
	normSink("normalization", 0)
	norm := Normalization{
		PeakDB:   peakDB,
		TargetDB: NormalizationTargetDB,
		Status:   "not_normalized",
	}
	if peakDB >= NormalizationTargetDB-normalizationToleranceDB && peakDB <= NormalizationTargetDB+normalizationToleranceDB {
		norm.Status = "normalized"
	}
	normSink("normalization", 1)

	return LevelFindings{
		PeakDB:               peakDB,
		NoiseFloorDB:         noiseFloor,
		NoiseFloorPerChannel: perChannel,
		Normalization:        norm,
	}, nil
}

// AnalyzeClipping runs C3's clipping pass independently, per spec.md §5's
// pipeline order (after silence, before stereo). sink should already be
// scoped to progress.Clipping by the caller.
func AnalyzeClipping(buf audio.Buffer, sink progress.Sink, tok cancel.Token) (ClippingFindings, error) {
	if sink == nil {
		sink = progress.Noop
	}
	return analyzeClipping(buf.Channels, sink, tok)
}

// pollSampleInterval is the cancellation-poll cadence for per-sample scans.
const pollSampleInterval = 10_000

// pollWindowInterval is the cancellation-poll cadence for window series.
const pollWindowInterval = 1_000

func peakAmplitude(channels [][]float32, sink progress.Sink, tok cancel.Token) (float64, error) {
	sink("peak", 0)
	if len(channels) == 0 || len(channels[0]) == 0 {
		sink("peak", 1)
		return 0, nil
	}
	total := len(channels[0])
	var peak float32
	for i := 0; i < total; i++ {
		if i%pollSampleInterval == 0 {
			if tok.Cancelled() {
				return 0, rerr.Cancelled("peak-levels")
			}
			sink("peak", float64(i)/float64(total))
		}
		for _, ch := range channels {
			v := ch[i]
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
	}
	sink("peak", 1)
	return float64(peak), nil
}

func pollWindows(n int, sink progress.Sink, tok cancel.Token, stage string) error {
	sink(stage, 0)
	for i := 0; i < n; i++ {
		if i%pollWindowInterval == 0 {
			if tok.Cancelled() {
				return rerr.Cancelled(stage)
			}
			sink(stage, float64(i)/float64(n))
		}
	}
	sink(stage, 1)
	return nil
}

// The histogram constants below (used by estimateNoiseFloor) and
// bottom20Floor implement the two noise-floor
// models from spec.md §4.3: histogram-mode is preferred; bottom-20% is the
// documented fallback when fewer than minPopulatedBins bins are populated.
const (
	histogramLowDB       = -120.0
	histogramHighDB      = 0.0
	histogramBinWidthDB  = 1.0
	minPopulatedBins     = 8
	peakSanityMarginDB   = 3.0
)

func estimateNoiseFloor(rmsDB []float64, peakDB float64) float64 {
	if len(rmsDB) == 0 {
		return negInf
	}

	ceiling := peakDB - peakSanityMarginDB

	bins := map[int]int{}
	for _, v := range rmsDB {
		if math.IsInf(v, -1) || v < histogramLowDB || v > histogramHighDB {
			continue
		}
		if v > ceiling {
			continue
		}
		bin := int(math.Floor((v - histogramLowDB) / histogramBinWidthDB))
		bins[bin]++
	}

	if len(bins) >= minPopulatedBins {
		bestBin, bestCount := 0, -1
		for bin, count := range bins {
			if count > bestCount || (count == bestCount && bin < bestBin) {
				bestBin, bestCount = bin, count
			}
		}
		return histogramLowDB + (float64(bestBin)+0.5)*histogramBinWidthDB
	}

	return bottom20Floor(rmsDB)
}

// bottom20Floor sorts rmsDB ascending and averages the lowest 20%.
func bottom20Floor(rmsDB []float64) float64 {
	sorted := append([]float64(nil), rmsDB...)
	sort.Float64s(sorted)

	n := len(sorted)
	k := n / 5
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	var sum float64
	var count int
	for _, v := range sorted[:k] {
		if math.IsInf(v, -1) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return negInf
	}
	return sum / float64(count)
}

func analyzeClipping(channels [][]float32, sink progress.Sink, tok cancel.Token) (ClippingFindings, error) {
	sink("clipping", 0)
	if len(channels) == 0 || len(channels[0]) == 0 {
		sink("clipping", 1)
		return ClippingFindings{}, nil
	}

	total := len(channels[0])
	var events int
	var clippedSamples int
	var nearClippedSamples int
	var totalSamples int

	for _, ch := range channels {
		runLen := 0
		for i, s := range ch {
			if i%pollSampleInterval == 0 {
				if tok.Cancelled() {
					return ClippingFindings{}, rerr.Cancelled("clipping")
				}
				sink("clipping", float64(i)/float64(total))
			}
			totalSamples++
			abs := float64(s)
			if abs < 0 {
				abs = -abs
			}

			switch {
			case abs >= ClippedThreshold:
				clippedSamples++
				runLen++
				if runLen == minClipEventRun {
					events++
				}
			case abs >= NearClippingLowBound:
				nearClippedSamples++
				runLen = 0
			default:
				runLen = 0
			}
		}
	}

	sink("clipping", 1)

	if totalSamples == 0 {
		return ClippingFindings{}, nil
	}

	return ClippingFindings{
		EventCount:      events,
		ClippedPct:      100 * float64(clippedSamples) / float64(totalSamples),
		NearClippingPct: 100 * float64(nearClippedSamples) / float64(totalSamples),
	}, nil
}
