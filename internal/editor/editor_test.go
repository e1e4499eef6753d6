package editor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/five82/vedit/internal/config"
	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/ffprobe"
	"github.com/five82/vedit/internal/logging"
	"github.com/five82/vedit/internal/reporter"
)

// fakeRunner records jobs and writes a placeholder file to each output.
type fakeRunner struct {
	jobs  []ffmpeg.Job
	err   error
	frame image.Image
}

func (r *fakeRunner) Run(ctx context.Context, job ffmpeg.Job, callback ffmpeg.ProgressCallback) error {
	r.jobs = append(r.jobs, job)
	if r.err != nil {
		return r.err
	}
	if callback != nil {
		callback(ffmpeg.Progress{Frame: 10, Percent: 100, Speed: 2})
	}
	if job.Stdout != nil {
		return png.Encode(job.Stdout, r.frame)
	}
	return os.WriteFile(outputOf(job.Args), []byte("media"), 0644)
}

func (r *fakeRunner) lastArgs() []string {
	if len(r.jobs) == 0 {
		return nil
	}
	return r.jobs[len(r.jobs)-1].Args
}

// outputOf returns the output path, which ffmpeg takes as the last
// argument before an optional trailing -y.
func outputOf(args []string) string {
	if n := len(args); n > 0 && args[n-1] == "-y" {
		args = args[:n-1]
	}
	return args[len(args)-1]
}

// fakeProber serves MediaInfo by path.
type fakeProber struct {
	infos map[string]ffprobe.MediaInfo
}

func (p *fakeProber) Probe(ctx context.Context, path string) (*ffprobe.MediaInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelledError()
	}
	info, ok := p.infos[path]
	if !ok {
		return nil, errors.NewPathError(fmt.Sprintf("cannot read %s", path))
	}
	return &info, nil
}

// captureReporter keeps the events the tests assert on.
type captureReporter struct {
	reporter.NullReporter
	warnings    []string
	errors      []reporter.ReporterError
	fits        []reporter.FitSummary
	codecs      []reporter.CodecSummary
	validations []reporter.ValidationSummary
	outputs     []string
	parts       []reporter.PartContext
	progress    int
	completed   []reporter.OperationOutcome
}

func (c *captureReporter) Warning(message string)                 { c.warnings = append(c.warnings, message) }
func (c *captureReporter) Error(err reporter.ReporterError)       { c.errors = append(c.errors, err) }
func (c *captureReporter) FitResult(s reporter.FitSummary)        { c.fits = append(c.fits, s) }
func (c *captureReporter) CodecSelection(s reporter.CodecSummary) { c.codecs = append(c.codecs, s) }
func (c *captureReporter) PartProgress(p reporter.PartContext)    { c.parts = append(c.parts, p) }
func (c *captureReporter) EncodingProgress(reporter.ProgressSnapshot) {
	c.progress++
}
func (c *captureReporter) ValidationComplete(s reporter.ValidationSummary) {
	c.validations = append(c.validations, s)
}
func (c *captureReporter) OutputWritten(s reporter.OutputSummary) {
	c.outputs = append(c.outputs, s.Path)
}
func (c *captureReporter) OperationComplete(o reporter.OperationOutcome) {
	c.completed = append(c.completed, o)
}

type harness struct {
	cfg    *config.Config
	runner *fakeRunner
	prober *fakeProber
	rep    *captureReporter
	dir    string
}

func newHarness(dir string) *harness {
	return &harness{
		cfg:    config.NewConfig(""),
		runner: &fakeRunner{},
		prober: &fakeProber{infos: map[string]ffprobe.MediaInfo{}},
		rep:    &captureReporter{},
		dir:    dir,
	}
}

func (h *harness) editor() *Editor {
	return New(h.cfg, h.runner, h.prober, h.rep, logging.New(io.Discard, false))
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

// touch creates an input file and registers its media information.
func (h *harness) touch(name string, info ffprobe.MediaInfo) string {
	p := h.path(name)
	_ = os.WriteFile(p, []byte("input"), 0644)
	h.prober.infos[p] = info
	return p
}

func (h *harness) expect(name string, info ffprobe.MediaInfo) string {
	p := h.path(name)
	h.prober.infos[p] = info
	return p
}

func argValue(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func hdClip(duration float64) ffprobe.MediaInfo {
	return ffprobe.MediaInfo{
		Duration:   duration,
		Width:      1920,
		Height:     1080,
		FrameRate:  30,
		VideoCodec: "h264",
		AudioCodec: "aac",
		HasVideo:   true,
		HasAudio:   true,
		Size:       1 << 20,
	}
}

func solidFrame(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	return img
}
