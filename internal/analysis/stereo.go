package analysis

import (
	"math"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/rerr"
)

// Stereo classification constants, per spec.md §4.6.
const (
	stereoBlockSeconds      = 1.0
	silentTotalEnergyDB     = -60.0
	monoAsStereoRho         = 0.98
	conversationalRhoCeil   = 0.35
	dominantChannelMarginDB = 9.0
	dominantFractionFloor   = 0.60
	speakingMarginDB        = 12.0 // shared with bleed.go's "speaking" threshold
)

// Stereo topology labels, per spec.md §3.
const (
	StereoSilent             = "Silent"
	StereoMonoLeft           = "Mono in Left Channel"
	StereoMonoRight          = "Mono in Right Channel"
	StereoMonoAsStereo       = "Mono as Stereo"
	StereoConversational     = "Conversational Stereo"
	StereoMixed              = "Mixed Stereo"
	StereoUndetermined       = "Undetermined"
)

// StereoFindings is C6's output, per spec.md §3.
type StereoFindings struct {
	StereoType string
	Confidence float64
}

type stereoBlock struct {
	rho            float64
	eL, eR         float64
	leftDB         float64
	rightDB        float64
	active         bool
	dominantLR     bool // one channel exceeds the other by >= dominantChannelMarginDB
	dominantIsLeft bool // meaningful only when dominantLR is true
	startFrame     int
	endFrame       int
}

// AnalyzeStereo classifies a buf's two-channel topology, per spec.md §4.6.
// Callers must only invoke this when buf has exactly 2 channels.
func AnalyzeStereo(buf audio.Buffer, noiseFloorDB float64, sink progress.Sink, tok cancel.Token) (StereoFindings, error) {
	if sink == nil {
		sink = progress.Noop
	}
	sink("stereo", 0)

	if len(buf.Channels) != 2 {
		sink("stereo", 1)
		return StereoFindings{StereoType: StereoUndetermined}, nil
	}
	left, right := buf.Channels[0], buf.Channels[1]

	totalLeftDB := windowRMSDB([][]float32{left})
	totalRightDB := windowRMSDB([][]float32{right})

	if totalLeftDB < silentTotalEnergyDB && totalRightDB < silentTotalEnergyDB {
		sink("stereo", 1)
		margin := clamp((silentTotalEnergyDB-math.Max(totalLeftDB, totalRightDB))/20, 0, 1)
		return StereoFindings{StereoType: StereoSilent, Confidence: margin}, nil
	}
	if totalLeftDB < silentTotalEnergyDB && totalRightDB >= silentTotalEnergyDB {
		sink("stereo", 1)
		margin := clamp((silentTotalEnergyDB-totalLeftDB)/20, 0, 1)
		return StereoFindings{StereoType: StereoMonoRight, Confidence: margin}, nil
	}
	if totalRightDB < silentTotalEnergyDB && totalLeftDB >= silentTotalEnergyDB {
		sink("stereo", 1)
		margin := clamp((silentTotalEnergyDB-totalRightDB)/20, 0, 1)
		return StereoFindings{StereoType: StereoMonoLeft, Confidence: margin}, nil
	}

	blockFrames := framesFor(stereoBlockSeconds, float64(buf.SampleRateHz))
	blocks := computeStereoBlocks(left, right, blockFrames, noiseFloorDB)

	if err := pollBlocks(len(blocks), sink, tok); err != nil {
		return StereoFindings{}, err
	}
	sink("stereo", 1)

	if len(blocks) == 0 {
		return StereoFindings{StereoType: StereoUndetermined}, nil
	}

	var rhoSum float64
	var activeCount, dominantCount int
	for _, b := range blocks {
		rhoSum += math.Abs(b.rho)
		if b.active {
			activeCount++
			if b.dominantLR {
				dominantCount++
			}
		}
	}
	meanAbsRho := rhoSum / float64(len(blocks))

	if meanAbsRho >= monoAsStereoRho {
		margin := clamp((meanAbsRho-monoAsStereoRho)/(1-monoAsStereoRho), 0, 1)
		return StereoFindings{StereoType: StereoMonoAsStereo, Confidence: margin}, nil
	}

	if activeCount == 0 {
		return StereoFindings{StereoType: StereoUndetermined}, nil
	}
	dominantFraction := float64(dominantCount) / float64(activeCount)

	if meanAbsRho <= conversationalRhoCeil && dominantFraction >= dominantFractionFloor {
		rhoMargin := clamp((conversationalRhoCeil-meanAbsRho)/conversationalRhoCeil, 0, 1)
		fractionMargin := clamp((dominantFraction-dominantFractionFloor)/(1-dominantFractionFloor), 0, 1)
		margin := math.Min(rhoMargin, fractionMargin)
		return StereoFindings{StereoType: StereoConversational, Confidence: margin}, nil
	}

	margin := clamp(math.Abs(meanAbsRho-conversationalRhoCeil)/conversationalRhoCeil, 0, 1)
	return StereoFindings{StereoType: StereoMixed, Confidence: margin}, nil
}

func computeStereoBlocks(left, right []float32, blockFrames int, noiseFloorDB float64) []stereoBlock {
	if blockFrames < 1 {
		return nil
	}
	total := len(left)
	var blocks []stereoBlock
	activeThreshold := noiseFloorDB + speakingMarginDB

	for start := 0; start < total; start += blockFrames {
		end := start + blockFrames
		if end > total {
			end = total
		}
		l, r := left[start:end], right[start:end]

		var sumL2, sumR2, sumLR float64
		for i := range l {
			lv, rv := float64(l[i]), float64(r[i])
			sumL2 += lv * lv
			sumR2 += rv * rv
			sumLR += lv * rv
		}

		var rho float64
		if sumL2 > 0 && sumR2 > 0 {
			rho = sumLR / math.Sqrt(sumL2*sumR2)
		}

		var eL, eR float64
		if sumL2+sumR2 > 0 {
			eL = sumL2 / (sumL2 + sumR2)
			eR = 1 - eL
		}

		leftDB := windowRMSDB([][]float32{l})
		rightDB := windowRMSDB([][]float32{r})
		active := leftDB > activeThreshold || rightDB > activeThreshold
		dominant := active && math.Abs(leftDB-rightDB) >= dominantChannelMarginDB

		blocks = append(blocks, stereoBlock{
			rho: rho, eL: eL, eR: eR,
			leftDB: leftDB, rightDB: rightDB,
			active: active, dominantLR: dominant, dominantIsLeft: leftDB > rightDB,
			startFrame: start, endFrame: end,
		})
	}
	return blocks
}

// pollBlockInterval is the cancellation-poll cadence for stereo block
// classification.
const pollBlockInterval = 1_000

func pollBlocks(n int, sink progress.Sink, tok cancel.Token) error {
	for i := 0; i < n; i++ {
		if i%pollBlockInterval == 0 {
			if tok.Cancelled() {
				return rerr.Cancelled("stereo")
			}
			sink("stereo", float64(i)/float64(n))
		}
	}
	return nil
}
