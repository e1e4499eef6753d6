package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs one JSON object per line for machine consumers.
type JSONReporter struct {
	writer             io.Writer
	runID              string
	mu                 sync.Mutex
	lastProgressBucket int
	lastProgressTime   time.Time
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter(runID string) *JSONReporter {
	return NewJSONReporterWithWriter(os.Stdout, runID)
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer, runID string) *JSONReporter {
	return &JSONReporter{
		writer:             w,
		runID:              runID,
		lastProgressBucket: -1,
	}
}

type event map[string]any

func (r *JSONReporter) write(eventType string, e event) {
	e["type"] = eventType
	e["timestamp"] = time.Now().Unix()
	if r.runID != "" {
		e["run_id"] = r.runID
	}

	data, err := json.Marshal(e)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) OperationStarted(info OperationInfo) {
	r.write("operation_started", event{
		"command": info.Command,
		"inputs":  info.Inputs,
		"output":  info.Output,
	})
}

func (r *JSONReporter) MediaInfo(summary MediaSummary) {
	r.write("media_info", event{
		"file":        summary.File,
		"duration":    summary.Duration,
		"resolution":  summary.Resolution,
		"frame_rate":  summary.FrameRate,
		"video_codec": summary.VideoCodec,
		"audio_codec": summary.AudioCodec,
		"has_audio":   summary.HasAudio,
	})
}

func (r *JSONReporter) StageProgress(update StageProgress) {
	r.write("stage_progress", event{
		"stage":   update.Stage,
		"percent": update.Percent,
		"message": update.Message,
	})
}

func (r *JSONReporter) FitResult(summary FitSummary) {
	r.write("fit_result", event{
		"source":   summary.Source,
		"target":   summary.Target,
		"scaled":   summary.Scaled,
		"crop_x":   summary.CropX,
		"crop_y":   summary.CropY,
		"disabled": summary.Disabled,
	})
}

func (r *JSONReporter) CodecSelection(summary CodecSummary) {
	r.write("codec_selection", event{
		"video_encoder":  summary.VideoEncoder,
		"audio_encoder":  summary.AudioEncoder,
		"video_fallback": summary.VideoFallback,
		"audio_fallback": summary.AudioFallback,
	})
}

func (r *JSONReporter) EncodingStarted(label string) {
	r.mu.Lock()
	r.lastProgressBucket = -1
	r.lastProgressTime = time.Time{}
	r.mu.Unlock()

	r.write("encoding_started", event{"label": label})
}

// EncodingProgress emits at most one event per whole percent, plus a
// heartbeat every five seconds and everything from 99% on.
func (r *JSONReporter) EncodingProgress(progress ProgressSnapshot) {
	const minInterval = 5 * time.Second

	bucket := int(progress.Percent)
	now := time.Now()

	r.mu.Lock()
	intervalElapsed := r.lastProgressTime.IsZero() || now.Sub(r.lastProgressTime) >= minInterval
	if bucket <= r.lastProgressBucket && !intervalElapsed && progress.Percent < 99.0 {
		r.mu.Unlock()
		return
	}
	r.lastProgressBucket = max(r.lastProgressBucket, bucket)
	r.lastProgressTime = now
	r.mu.Unlock()

	r.write("encoding_progress", event{
		"frame":       progress.Frame,
		"percent":     progress.Percent,
		"speed":       progress.Speed,
		"fps":         progress.FPS,
		"eta_seconds": int64(progress.ETA.Seconds()),
	})
}

func (r *JSONReporter) PartProgress(part PartContext) {
	r.write("part_progress", event{
		"label":   part.Label,
		"current": part.Current,
		"total":   part.Total,
	})
}

func (r *JSONReporter) ValidationComplete(summary ValidationSummary) {
	steps := make([]event, len(summary.Steps))
	for i, step := range summary.Steps {
		steps[i] = event{
			"step":    step.Name,
			"passed":  step.Passed,
			"details": step.Details,
		}
	}

	r.write("validation_complete", event{
		"file":              summary.File,
		"validation_passed": summary.Passed,
		"validation_steps":  steps,
	})
}

func (r *JSONReporter) OutputWritten(summary OutputSummary) {
	r.write("output_written", event{
		"path":     summary.Path,
		"size":     summary.Size,
		"duration": summary.Duration,
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write("warning", event{"message": message})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write("error", event{
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
	})
}

func (r *JSONReporter) OperationComplete(outcome OperationOutcome) {
	r.write("operation_complete", event{
		"command":         outcome.Command,
		"outputs":         outcome.Outputs,
		"elapsed_seconds": outcome.Elapsed.Seconds(),
	})
}

// Verbose messages are terminal only.
func (r *JSONReporter) Verbose(string) {}
