// Package report assembles the per-file pipeline: C1/C2 decode a file into
// an audio.Buffer and FileProperties, C3-C7 analyze it, and C8/C9 validate
// the result against a preset, per spec.md §2's control flow. A Report is
// the only long-lived artifact the core produces.
package report

import (
	"strings"

	"github.com/vibingwithtom/recspec/internal/analysis"
	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/filename"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/rerr"
	"github.com/vibingwithtom/recspec/internal/wav"
)

// Report is C10's per-file output, per spec.md §3.
type Report struct {
	FileName       string
	FileProperties criteria.FileProperties

	Level          *analysis.LevelFindings
	Reverb         *analysis.ReverbFindings
	Silence        *analysis.SilenceFindings
	Stereo         *analysis.StereoFindings
	Bleed          *analysis.MicBleedFindings
	Conversational *analysis.ConversationalFindings

	Validations map[string]criteria.ValidationResult
	Overall     criteria.Overall
	Error       *rerr.Error
}

// Options bundles everything one file's analysis needs beyond its bytes,
// mirroring the way spec.md §4.10 bundles BatchOptions.
type Options struct {
	Preset      criteria.Preset
	Catalogue   filename.Catalogue
	ScriptBases []string // three-hour preset
	SpeakerID   string   // three-hour preset

	Decoder audio.Decoder // required for non-WAV input
	Sink    progress.Sink
	Token   cancel.Token
}

// Analyze runs the full per-file pipeline over src, per spec.md §2.
func Analyze(src audio.InputSource, fileName string, opts Options) Report {
	sink := opts.Sink
	if sink == nil {
		sink = progress.Noop
	}

	data, err := src.ReadAll()
	if err != nil {
		return Report{FileName: fileName, Overall: criteria.OverallError, Error: rerr.New(rerr.TruncatedInput, err)}
	}

	ext := extensionOf(fileName)
	isWav := ext == "" || strings.EqualFold(ext, "wav")

	var props criteria.FileProperties
	var buf audio.Buffer
	var haveBuf bool

	if isWav {
		format, perr := wav.ParseHeader(data)
		if perr != nil {
			return Report{
				FileName: fileName,
				FileProperties: criteria.FileProperties{FileSizeBytes: int64(len(data))},
				Overall:  criteria.OverallError,
				Error:    asRerr(perr),
			}
		}
		durationS, knownDuration := format.DurationSeconds()
		props = criteria.FileProperties{
			FileType:        wav.Label(format),
			SampleRateHz:    format.SampleRateHz,
			KnownSampleRate: format.SampleRateHz > 0,
			BitDepth:        format.BitsPerSample,
			KnownBitDepth:   !wav.IsCompressed(format),
			CompressedDepth: wav.IsCompressed(format),
			ChannelCount:    format.ChannelCount,
			KnownChannels:   format.ChannelCount > 0,
			DurationS:       durationS,
			KnownDuration:   knownDuration,
			FileSizeBytes:   int64(len(data)),
		}
		if !wav.IsCompressed(format) {
			decoded, derr := wav.Decode(data, format)
			if derr != nil {
				return Report{FileName: fileName, FileProperties: props, Overall: criteria.OverallError, Error: asRerr(derr)}
			}
			buf, haveBuf = decoded, true
		}
	} else {
		props = criteria.FileProperties{
			FileType:      wav.LabelForExtension(ext),
			FileSizeBytes: int64(len(data)),
		}
		if opts.Decoder != nil {
			decoded, derr := opts.Decoder.Decode(data)
			if derr != nil {
				return Report{FileName: fileName, FileProperties: props, Overall: criteria.OverallError, Error: rerr.New(rerr.DecodeFailed, derr)}
			}
			if verr := decoded.Validate(); verr != nil {
				return Report{FileName: fileName, FileProperties: props, Overall: criteria.OverallError, Error: rerr.New(rerr.DecodeFailed, verr)}
			}
			buf, haveBuf = decoded, true
			props.SampleRateHz, props.KnownSampleRate = buf.SampleRateHz, buf.SampleRateHz > 0
			props.ChannelCount, props.KnownChannels = uint16(buf.ChannelCount()), true
			if d := buf.DurationSeconds(); d > 0 {
				props.DurationS, props.KnownDuration = d, true
			}
		}
	}

	rep := Report{FileName: fileName, FileProperties: props}

	if haveBuf {
		if cerr := runAnalysis(&rep, buf, opts, sink); cerr != nil {
			rep.Overall = criteria.OverallError
			rep.Error = asRerr(cerr)
			return rep
		}
	}

	findings := buildFindings(&rep, opts)
	rep.Validations, rep.Overall = criteria.Validate(opts.Preset, props, findings)
	return rep
}

// runAnalysis runs C3-C7 in spec.md §5's dependency order, threading a
// single progress sink scoped per-pass and a shared cancellation token.
func runAnalysis(rep *Report, buf audio.Buffer, opts Options, sink progress.Sink) error {
	level, err := analysis.AnalyzeLevel(buf, sink, opts.Token)
	if err != nil {
		return err
	}
	rep.Level = &level

	reverb, err := analysis.AnalyzeReverb(buf, level.NoiseFloorDB, progress.Reverb.Scoped(sink), opts.Token)
	if err != nil {
		return err
	}
	rep.Reverb = &reverb

	silence, err := analysis.AnalyzeSilence(buf, level.PeakDB, level.NoiseFloorDB, progress.Silence.Scoped(sink), opts.Token)
	if err != nil {
		return err
	}
	rep.Silence = &silence

	clipping, err := analysis.AnalyzeClipping(buf, progress.Clipping.Scoped(sink), opts.Token)
	if err != nil {
		return err
	}
	rep.Level.Clipping = clipping

	if buf.ChannelCount() == 2 {
		stereo, err := analysis.AnalyzeStereo(buf, level.NoiseFloorDB, progress.Stereo.Scoped(sink), opts.Token)
		if err != nil {
			return err
		}
		rep.Stereo = &stereo

		if stereo.StereoType == analysis.StereoConversational {
			bleed, conv, err := analysis.AnalyzeBleed(buf, level.NoiseFloorDB, progress.Bleed.Scoped(sink), opts.Token)
			if err != nil {
				return err
			}
			rep.Bleed = &bleed
			rep.Conversational = &conv
		}
	}

	return nil
}

// buildFindings bridges analysis/filename outputs into criteria.Findings
// and runs the filename validator, per spec.md §4.8/§4.9.
func buildFindings(rep *Report, opts Options) criteria.Findings {
	var f criteria.Findings

	if rep.Stereo != nil {
		f.StereoType = &rep.Stereo.StereoType
	}
	if rep.Conversational != nil {
		pct := rep.Conversational.Overlap.OverlapPct
		f.OverlapPct = &pct
		if len(rep.Conversational.Overlap.Segments) > 0 {
			maxSeg := rep.Conversational.Overlap.Segments[0].DurationS
			for _, s := range rep.Conversational.Overlap.Segments[1:] {
				if s.DurationS > maxSeg {
					maxSeg = s.DurationS
				}
			}
			f.MaxOverlapSegS = &maxSeg
		}
	}

	if opts.Preset.FilenameRule != "" && opts.Preset.FilenameRule != criteria.FilenameRuleNone {
		var fr filename.Result
		switch opts.Preset.FilenameRule {
		case criteria.FilenameRuleScriptMatch:
			fr = filename.ScriptMatch(rep.FileName, opts.ScriptBases, opts.SpeakerID)
		case criteria.FilenameRuleBilingualPattern:
			fr = filename.BilingualPattern(rep.FileName, opts.Catalogue)
		}
		result := criteria.ValidationResult{
			Status:   criteria.Status(fr.Status),
			Matched:  fr.Status == "pass",
			Expected: fr.ExpectedFormat,
			Message:  fr.Issue,
		}
		f.FilenameResult = &result
	}

	return f
}

func extensionOf(fileName string) string {
	idx := strings.LastIndex(fileName, ".")
	if idx < 0 || idx == len(fileName)-1 {
		return ""
	}
	return fileName[idx+1:]
}

func asRerr(err error) *rerr.Error {
	if re, ok := err.(*rerr.Error); ok {
		return re
	}
	return rerr.New(rerr.InternalInvariant, err)
}
