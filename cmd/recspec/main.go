package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/vibingwithtom/recspec/internal/batch"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/cli"
	"github.com/vibingwithtom/recspec/internal/config"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/filename"
	"github.com/vibingwithtom/recspec/internal/logging"
	"github.com/vibingwithtom/recspec/internal/report"
	"github.com/vibingwithtom/recspec/internal/ui"
)

// version is set via ldflags at build time.
// Local dev builds: "dev"
// Release builds: git tag (e.g. "0.1.0")
var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Version bool `short:"v" help:"Show version information"`
	Debug   bool `short:"d" help:"Enable debug logging to recspec-debug.log"`
	JSON    bool `help:"Emit machine-readable JSON reports instead of the interactive UI"`
	Logs    bool `help:"Write a .recspec.log report for each file into the current directory"`

	Preset      string `help:"Preset id to validate against" default:"character-recordings"`
	CustomPreset string `help:"Path to a custom preset YAML file" type:"existingfile"`
	Catalogue   string `help:"Path to a bilingual catalogue YAML file" type:"existingfile"`
	ScriptBases []string `help:"Script base names recognized by the script_match filename rule"`
	SpeakerID   string `help:"Speaker id recognized by the script_match filename rule"`
	Concurrency int    `short:"c" help:"Maximum number of files analyzed in parallel" default:"2"`

	Files []string `arg:"" name:"files" help:"Audio files to validate" type:"existingfile" optional:""`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("recspec"),
		kong.Description("Recording validation for WAV and host-decoded audio"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if len(cliArgs.Files) == 0 {
		cli.PrintError("No input files specified")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	var debugLog *os.File
	if cliArgs.Debug {
		debugLog, _ = os.Create("recspec-debug.log")
		defer debugLog.Close()
	}
	logger := charmlog.New(os.Stderr)
	if debugLog != nil {
		logger = charmlog.New(debugLog)
		logger.SetLevel(charmlog.DebugLevel)
	}

	preset, err := resolvePreset(cliArgs, logger)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	catalogue, err := resolveCatalogue(cliArgs, logger)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	items := make([]batch.Item, len(cliArgs.Files))
	for i, path := range cliArgs.Files {
		items[i] = batch.Item{Name: filepath.Base(path), Source: diskSource{path: path}}
	}

	token, cancelFn := cancel.NewSource()
	opts := batch.Options{
		Concurrency:        cliArgs.Concurrency,
		Preset:             preset,
		Catalogue:          catalogue,
		ScriptBases:        cliArgs.ScriptBases,
		SpeakerID:          cliArgs.SpeakerID,
		CancellationToken:  token,
	}

	if cliArgs.JSON || !isTerminal(os.Stdout) {
		runNonInteractive(items, opts, cliArgs, logger)
		return
	}
	runInteractive(items, opts, cliArgs, cancelFn)
}

func resolvePreset(cliArgs *CLI, logger *charmlog.Logger) (criteria.Preset, error) {
	var custom *criteria.Preset
	if cliArgs.CustomPreset != "" {
		p, err := config.LoadCustomPreset(cliArgs.CustomPreset)
		if err != nil {
			return criteria.Preset{}, fmt.Errorf("loading custom preset: %w", err)
		}
		custom = &p
	}
	registry := criteria.NewRegistry(custom)
	preset, ok := registry.Resolve(cliArgs.Preset)
	if !ok {
		return criteria.Preset{}, fmt.Errorf("unknown preset %q", cliArgs.Preset)
	}
	logger.Debug("resolved preset", "id", preset.ID, "name", preset.Name)
	return preset, nil
}

func resolveCatalogue(cliArgs *CLI, logger *charmlog.Logger) (filename.Catalogue, error) {
	if cliArgs.Catalogue == "" {
		return filename.Catalogue{}, nil
	}
	cat, err := config.LoadCatalogue(cliArgs.Catalogue)
	if err != nil {
		return filename.Catalogue{}, fmt.Errorf("loading catalogue: %w", err)
	}
	logger.Debug("loaded catalogue", "languages", len(cat.Languages))
	return cat, nil
}

// runNonInteractive drives the batch synchronously and prints either JSON
// or plain console reports, for --json runs and non-TTY pipes.
func runNonInteractive(items []batch.Item, opts batch.Options, cliArgs *CLI, logger *charmlog.Logger) {
	reports, counters := batch.Run(items, opts, func(name, message string, progressValue float64) {
		logger.Debug("progress", "file", name, "message", message, "progress", progressValue)
	})

	if cliArgs.JSON {
		if err := json.NewEncoder(os.Stdout).Encode(reports); err != nil {
			cli.PrintError(fmt.Sprintf("encoding JSON: %v", err))
			os.Exit(1)
		}
	} else {
		for _, rep := range reports {
			logging.DisplayReport(os.Stdout, rep)
		}
	}

	if cliArgs.Logs {
		writeReportLogs(reports, logger)
	}

	cli.PrintBatchSummary(len(reports), counters.Pass, counters.Warning, counters.Fail, counters.Error,
		cli.FormatDuration(counters.TotalDuration))

	if counters.Fail > 0 || counters.Error > 0 {
		os.Exit(1)
	}
}

// runInteractive drives the batch in a background goroutine and renders
// progress through the Bubbletea UI.
func runInteractive(items []batch.Item, opts batch.Options, cliArgs *CLI, cancelFn func()) {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	model := ui.NewModel(names, cancelFn)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		var mu sync.Mutex
		started := make(map[int]bool, len(names))
		reports, counters := batch.Run(items, opts, func(name, message string, progressValue float64) {
			idx := indexOf(names, name)
			if idx < 0 {
				return
			}
			mu.Lock()
			firstSeen := !started[idx]
			started[idx] = true
			mu.Unlock()
			if firstSeen {
				p.Send(ui.FileStartMsg{FileIndex: idx, FileName: name})
			}
			p.Send(ui.ProgressMsg{FileIndex: idx, Message: message, Progress: progressValue})
		})

		for i, name := range names {
			if rep := findReport(reports, name); rep != nil {
				mu.Lock()
				firstSeen := !started[i]
				started[i] = true
				mu.Unlock()
				if firstSeen {
					p.Send(ui.FileStartMsg{FileIndex: i, FileName: name})
				}
				p.Send(ui.FileCompleteMsg{FileIndex: i, Report: *rep})
			}
		}

		if cliArgs.Logs {
			writeReportLogs(reports, charmlog.New(os.Stderr))
		}

		p.Send(ui.AllCompleteMsg{Counters: counters})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
}

func writeReportLogs(reports []report.Report, logger *charmlog.Logger) {
	for _, rep := range reports {
		if err := logging.GenerateReport(".", rep); err != nil {
			logger.Warn("failed to write report log", "file", rep.FileName, "err", err)
		}
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func findReport(reports []report.Report, name string) *report.Report {
	for i := range reports {
		if reports[i].FileName == name {
			return &reports[i]
		}
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// diskSource implements audio.InputSource by reading a file off local
// disk. recspec's core never opens files itself (see internal/audio); this
// is the host-side adapter cmd/recspec provides.
type diskSource struct {
	path string
}

func (d diskSource) ReadHeader(maxBytes int) ([]byte, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, maxBytes)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return nil, err
	}
	return buf[:n], nil
}

func (d diskSource) ReadAll() ([]byte, error) {
	return os.ReadFile(d.path)
}
