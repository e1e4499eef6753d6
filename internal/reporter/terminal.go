package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/vedit/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu         sync.Mutex
	out        io.Writer
	errOut     io.Writer
	verbose    bool
	progress   *progressbar.ProgressBar
	maxPercent float32
	lastStage  string
	cyan       *color.Color
	green      *color.Color
	yellow     *color.Color
	red        *color.Color
	magenta    *color.Color
	faint      *color.Color
	success    *color.Color
	bold       *color.Color
}

// NewTerminalReporter creates a reporter writing to stdout and stderr.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return NewTerminalReporterWithWriters(os.Stdout, os.Stderr, verbose)
}

// NewTerminalReporterWithWriters creates a terminal reporter with custom writers.
func NewTerminalReporterWithWriters(out, errOut io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		faint:   color.New(color.Faint),
		success: color.New(color.FgGreen, color.Bold),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
	r.maxPercent = 0
}

func (r *TerminalReporter) section(title string) {
	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, title)
}

// printLabel prints a bold label padded to width followed by a value.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	if value == "" {
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(fmt.Sprintf("%-*s", width, label)), value)
}

func (r *TerminalReporter) OperationStarted(info OperationInfo) {
	r.section(strings.ToUpper(info.Command))
	for _, in := range info.Inputs {
		r.printLabel(8, "Input:", in)
	}
	r.printLabel(8, "Output:", info.Output)
}

func (r *TerminalReporter) MediaInfo(summary MediaSummary) {
	audio := summary.AudioCodec
	if !summary.HasAudio {
		audio = r.faint.Sprint("none")
	}
	r.section("MEDIA")
	const w = 11
	r.printLabel(w, "File:", summary.File)
	r.printLabel(w, "Duration:", summary.Duration)
	r.printLabel(w, "Resolution:", summary.Resolution)
	r.printLabel(w, "Frame rate:", summary.FrameRate)
	r.printLabel(w, "Video:", summary.VideoCodec)
	r.printLabel(w, "Audio:", audio)
}

func (r *TerminalReporter) StageProgress(update StageProgress) {
	r.mu.Lock()
	newStage := r.lastStage != update.Stage
	r.lastStage = update.Stage
	r.mu.Unlock()

	if newStage {
		r.section(strings.ToUpper(update.Stage))
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.magenta.Sprint("›"), update.Message)
}

func (r *TerminalReporter) FitResult(summary FitSummary) {
	if summary.Disabled {
		_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint("Resize:"), r.faint.Sprint("disabled"))
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s -> scale %s, crop %s at (%d,%d)\n",
		r.bold.Sprint("Resize:"), summary.Source, summary.Scaled,
		r.green.Sprint(summary.Target), summary.CropX, summary.CropY)
}

func (r *TerminalReporter) CodecSelection(summary CodecSummary) {
	mark := func(enc string, fallback bool) string {
		if fallback {
			return enc + r.faint.Sprint(" (fallback)")
		}
		return enc
	}
	r.printLabel(7, "Video:", mark(summary.VideoEncoder, summary.VideoFallback))
	r.printLabel(7, "Audio:", mark(summary.AudioEncoder, summary.AudioFallback))
}

func (r *TerminalReporter) EncodingStarted(label string) {
	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = progressbar.NewOptions64(
		100,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.errOut),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      label + " [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) EncodingProgress(progress ProgressSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}

	clamped := max(min(progress.Percent, 100), 0)
	if clamped >= r.maxPercent {
		r.maxPercent = clamped
		_ = r.progress.Set64(int64(clamped))
	}

	r.progress.Describe(fmt.Sprintf("speed %.1fx, fps %.1f, eta %s",
		progress.Speed, progress.FPS, util.FormatDuration(progress.ETA.Seconds())))
}

func (r *TerminalReporter) PartProgress(part PartContext) {
	r.finishProgress()
	_, _ = fmt.Fprintf(r.out, "\n%s %s of %d\n", part.Label, r.bold.Sprint(part.Current), part.Total)
}

func (r *TerminalReporter) ValidationComplete(summary ValidationSummary) {
	r.finishProgress()

	r.section("VALIDATION")
	if summary.Passed {
		_, _ = fmt.Fprintf(r.out, "  %s\n", r.success.Sprint("All checks passed"))
	} else {
		_, _ = fmt.Fprintf(r.out, "  %s\n", r.red.Sprint("Validation failed"))
	}

	maxLen := 0
	for _, step := range summary.Steps {
		maxLen = max(maxLen, len(step.Name))
	}

	for _, step := range summary.Steps {
		status := r.green.Sprint("✓")
		if !step.Passed {
			status = r.red.Sprint("✗")
		}
		_, _ = fmt.Fprintf(r.out, "  - %-*s: %s (%s)\n", maxLen, step.Name, status, step.Details)
	}
}

func (r *TerminalReporter) OutputWritten(summary OutputSummary) {
	r.finishProgress()
	details := util.FormatBytes(summary.Size)
	if summary.Duration != "" {
		details += ", " + summary.Duration
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s (%s)\n", r.bold.Sprint("Saved"), r.green.Sprint(summary.Path), details)
}

func (r *TerminalReporter) Warning(message string) {
	r.finishProgress()
	_, _ = r.yellow.Fprintf(r.out, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()
	_, _ = fmt.Fprintln(r.errOut)
	_, _ = r.red.Fprintf(r.errOut, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(r.errOut, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(r.errOut, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(outcome OperationOutcome) {
	r.finishProgress()
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.success.Sprint("✓"),
		r.bold.Sprintf("%s finished: %d file(s) in %s", outcome.Command, len(outcome.Outputs),
			util.FormatDuration(outcome.Elapsed.Seconds())))
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s\n", r.faint.Sprint(message))
}
