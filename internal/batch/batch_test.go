package batch

import (
	"fmt"
	"testing"

	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/wav/wavtest"
)

type memSource struct {
	data []byte
}

func (m memSource) ReadHeader(maxBytes int) ([]byte, error) {
	if maxBytes > len(m.data) {
		maxBytes = len(m.data)
	}
	return m.data[:maxBytes], nil
}

func (m memSource) ReadAll() ([]byte, error) {
	return m.data, nil
}

func makeItems(n int) []Item {
	items := make([]Item, n)
	for i := 0; i < n; i++ {
		data := wavtest.Generate(wavtest.Options{DurationSecs: 1.0, ToneFreq: 440, ToneLevel: -12})
		items[i] = Item{Name: fmt.Sprintf("file%d.wav", i), Source: memSource{data: data}}
	}
	return items
}

func TestRunPreservesInputOrder(t *testing.T) {
	items := makeItems(6)
	preset, _ := criteria.Lookup(criteria.CharacterRecordings)

	reports, _ := Run(items, Options{Concurrency: 3, Preset: preset}, nil)
	if len(reports) != len(items) {
		t.Fatalf("got %d reports, want %d", len(reports), len(items))
	}
	for i, rep := range reports {
		want := fmt.Sprintf("file%d.wav", i)
		if rep.FileName != want {
			t.Errorf("reports[%d].FileName = %q, want %q (order not preserved)", i, rep.FileName, want)
		}
	}
}

func TestRunCountersTallyOverall(t *testing.T) {
	items := makeItems(3)
	preset, _ := criteria.Lookup(criteria.CharacterRecordings)

	_, counters := Run(items, Options{Concurrency: 2, Preset: preset}, nil)
	if counters.Pass+counters.Warning+counters.Fail+counters.Error != len(items) {
		t.Fatalf("counters don't sum to item count: %+v", counters)
	}
}

func TestRunCancelledBeforeStartReturnsNothing(t *testing.T) {
	items := makeItems(3)
	preset, _ := criteria.Lookup(criteria.CharacterRecordings)
	token, cancelFn := cancel.NewSource()
	cancelFn()

	reports, counters := Run(items, Options{Concurrency: 2, Preset: preset, CancellationToken: token}, nil)
	if reports != nil {
		t.Fatalf("expected no reports for a pre-cancelled run, got %d", len(reports))
	}
	if counters != (Counters{}) {
		t.Fatalf("expected zero counters for a pre-cancelled run, got %+v", counters)
	}
}

func TestRunDefaultsToConcurrencyOne(t *testing.T) {
	items := makeItems(2)
	preset, _ := criteria.Lookup(criteria.CharacterRecordings)
	reports, _ := Run(items, Options{Preset: preset}, nil)
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
}
