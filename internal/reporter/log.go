package reporter

import (
	"strings"

	"github.com/five82/vedit/internal/logging"
)

// LogReporter mirrors events into the run log file.
type LogReporter struct {
	logger *logging.Logger
}

// NewLogReporter creates a reporter backed by logger. A nil logger is allowed.
func NewLogReporter(logger *logging.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

func (r *LogReporter) OperationStarted(info OperationInfo) {
	r.logger.Info("%s: inputs=[%s] output=%s", info.Command, strings.Join(info.Inputs, ", "), info.Output)
}

func (r *LogReporter) MediaInfo(s MediaSummary) {
	r.logger.Info("media %s: %s %s @ %s fps, video=%s audio=%s", s.File, s.Duration, s.Resolution, s.FrameRate, s.VideoCodec, s.AudioCodec)
}

func (r *LogReporter) StageProgress(update StageProgress) {
	r.logger.Info("[%s] %s", update.Stage, update.Message)
}

func (r *LogReporter) FitResult(s FitSummary) {
	if s.Disabled {
		r.logger.Info("resize disabled")
		return
	}
	r.logger.Info("fit %s -> %s: scale %s crop (%d,%d)", s.Source, s.Target, s.Scaled, s.CropX, s.CropY)
}

func (r *LogReporter) CodecSelection(s CodecSummary) {
	r.logger.Info("encoders: video=%s (fallback=%t) audio=%s (fallback=%t)", s.VideoEncoder, s.VideoFallback, s.AudioEncoder, s.AudioFallback)
}

func (r *LogReporter) EncodingStarted(label string) {
	r.logger.Debug("encoding started: %s", label)
}

// EncodingProgress is not logged; ffmpeg emits several lines per second.
func (r *LogReporter) EncodingProgress(ProgressSnapshot) {}

func (r *LogReporter) PartProgress(part PartContext) {
	r.logger.Info("%s %d of %d", part.Label, part.Current, part.Total)
}

func (r *LogReporter) ValidationComplete(s ValidationSummary) {
	for _, step := range s.Steps {
		r.logger.Info("validate %s: %s passed=%t (%s)", s.File, step.Name, step.Passed, step.Details)
	}
}

func (r *LogReporter) OutputWritten(s OutputSummary) {
	r.logger.Info("wrote %s (%d bytes)", s.Path, s.Size)
}

func (r *LogReporter) Warning(message string) {
	r.logger.Warn("%s", message)
}

func (r *LogReporter) Error(err ReporterError) {
	r.logger.Error("%s: %s", err.Title, err.Message)
}

func (r *LogReporter) OperationComplete(o OperationOutcome) {
	r.logger.Info("%s finished in %s: %s", o.Command, o.Elapsed, strings.Join(o.Outputs, ", "))
}

func (r *LogReporter) Verbose(message string) {
	r.logger.Debug("%s", message)
}
