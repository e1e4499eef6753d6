// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// OperationInfo describes the command about to run.
type OperationInfo struct {
	Command string
	Inputs  []string
	Output  string
}

// MediaSummary describes a probed input.
type MediaSummary struct {
	File       string
	Duration   string
	Resolution string
	FrameRate  string
	VideoCodec string
	AudioCodec string
	HasAudio   bool
}

// FitSummary describes a cover scale and center crop decision.
type FitSummary struct {
	Source   string
	Target   string
	Scaled   string
	CropX    int
	CropY    int
	Disabled bool
}

// CodecSummary describes the encoders chosen for an output.
type CodecSummary struct {
	VideoEncoder  string
	AudioEncoder  string
	VideoFallback bool
	AudioFallback bool
}

// ProgressSnapshot contains ffmpeg progress information.
type ProgressSnapshot struct {
	Frame   uint64
	Percent float32
	Speed   float32
	FPS     float32
	ETA     time.Duration
}

// PartContext locates the current item within a multi-part operation.
type PartContext struct {
	Label   string
	Current int
	Total   int
}

// ValidationSummary contains validation results.
type ValidationSummary struct {
	File   string
	Passed bool
	Steps  []ValidationStep
}

// ValidationStep represents a single validation check.
type ValidationStep struct {
	Name    string
	Passed  bool
	Details string
}

// OutputSummary describes a written file.
type OutputSummary struct {
	Path     string
	Size     uint64
	Duration string
}

// OperationOutcome summarizes a finished command.
type OperationOutcome struct {
	Command string
	Outputs []string
	Elapsed time.Duration
}

// ReporterError contains error information.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

// StageProgress represents a generic stage update.
type StageProgress struct {
	Stage   string
	Percent float32
	Message string
}
