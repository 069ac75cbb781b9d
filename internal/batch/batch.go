// Package batch implements the Batch Orchestrator (C10): bounded-
// concurrency scheduling of the per-file pipeline in internal/report, with
// cooperative cancellation and progress fan-in, per spec.md §4.10.
package batch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/filename"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/report"
)

// Item is one unit of work: a named, host-owned input handle.
type Item struct {
	Name   string
	Source audio.InputSource
}

// Options bundles a batch run's configuration, per spec.md §4.10's
// BatchOptions.
type Options struct {
	Concurrency int // default 1; 2-4 typical

	Preset      criteria.Preset
	Catalogue   filename.Catalogue
	ScriptBases []string
	SpeakerID   string
	Decoder     audio.Decoder

	ProgressSink      progress.Sink // not called by Run; per-file progress goes to Run's onProgress
	CancellationToken cancel.Token
}

// FileProgress is what the batch's progress sink reports: a per-file
// progress message distinguished by file name, since workers run
// concurrently and a bare (message, progress) pair can't say which file it
// describes.
type FileProgress func(fileName, message string, progressValue float64)

// Counters are the batch's aggregate outcome tallies, per spec.md §4.10.
type Counters struct {
	Pass, Warning, Fail, Error int
	TotalDuration              time.Duration
}

// Run executes items' pipelines with bounded parallelism, per spec.md
// §4.10/§5. Reports are returned in input order regardless of completion
// order; a file not yet started when the batch is cancelled contributes no
// Report at all, per spec.md §8 invariant 3.
func Run(items []Item, opts Options, onProgress FileProgress) ([]report.Report, Counters) {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if onProgress == nil {
		onProgress = func(string, string, float64) {}
	}

	results := make([]*report.Report, len(items))

	if opts.CancellationToken.Cancelled() {
		return nil, Counters{}
	}

	var nextIndex int64 = -1
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if opts.CancellationToken.Cancelled() {
					return
				}
				idx := int(atomic.AddInt64(&nextIndex, 1))
				if idx >= len(items) {
					return
				}
				if opts.CancellationToken.Cancelled() {
					return
				}

				sem <- struct{}{}
				item := items[idx]
				sink := func(message string, p float64) { onProgress(item.Name, message, p) }

				rep := report.Analyze(item.Source, item.Name, report.Options{
					Preset:      opts.Preset,
					Catalogue:   opts.Catalogue,
					ScriptBases: opts.ScriptBases,
					SpeakerID:   opts.SpeakerID,
					Decoder:     opts.Decoder,
					Sink:        sink,
					Token:       opts.CancellationToken,
				})
				results[idx] = &rep
				<-sem
			}
		}()
	}
	wg.Wait()

	var (
		out      []report.Report
		counters Counters
	)
	for _, r := range results {
		if r == nil {
			continue
		}
		out = append(out, *r)
		switch r.Overall {
		case criteria.OverallPass:
			counters.Pass++
		case criteria.OverallWarning:
			counters.Warning++
		case criteria.OverallFail:
			counters.Fail++
		case criteria.OverallError:
			counters.Error++
		}
		if r.FileProperties.KnownDuration {
			counters.TotalDuration += time.Duration(r.FileProperties.DurationS * float64(time.Second))
		}
	}

	return out, counters
}
