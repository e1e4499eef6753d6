// Package errors provides structured error types for vedit operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents filesystem errors.
	KindIO ErrorKind = iota
	// KindPath represents missing or unusable input and output paths.
	KindPath
	// KindCommand represents external process failures.
	KindCommand
	// KindFFmpeg represents failures reported by ffmpeg itself.
	KindFFmpeg
	// KindFFprobeParse represents unreadable ffprobe output.
	KindFFprobeParse
	// KindVideoInfo represents missing stream information (no video, no audio).
	KindVideoInfo
	// KindConfig represents invalid flags or settings.
	KindConfig
	// KindInvalidDimensions represents non-positive frame or target sizes.
	KindInvalidDimensions
	// KindNoFilesFound represents an input directory without videos.
	KindNoFilesFound
	// KindModel represents detection or segmentation service failures.
	KindModel
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

var kindNames = map[ErrorKind]string{
	KindIO:                "I/O error",
	KindPath:              "Path error",
	KindCommand:           "Command error",
	KindFFmpeg:            "FFmpeg error",
	KindFFprobeParse:      "FFprobe parse error",
	KindVideoInfo:         "Video info error",
	KindConfig:            "Configuration error",
	KindInvalidDimensions: "Invalid dimensions",
	KindNoFilesFound:      "No files found",
	KindModel:             "Model error",
	KindCancelled:         "Operation cancelled",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown error"
}

// CommandErrorKind represents the stage at which a command failed.
type CommandErrorKind int

const (
	// CommandStart means the process could not be started.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the process failed.
	CommandWait
	// CommandFailed means the process exited non-zero.
	CommandFailed
)

// CommandError describes a failed external process.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("%s: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the error type returned by vedit operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is matches any CoreError of the same kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates an I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewPathError creates a path error.
func NewPathError(message string) *CoreError {
	return &CoreError{Kind: KindPath, Message: message}
}

// NewCommandStartError creates an error for a process that failed to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	cmdErr := &CommandError{Command: cmd, Kind: CommandStart, Underlying: err}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandFailedError creates an error for a process that exited non-zero.
// Only the last lines of stderr are kept.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   tailLines(stderr, 5),
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewFFmpegError creates an ffmpeg error.
func NewFFmpegError(message string) *CoreError {
	return &CoreError{Kind: KindFFmpeg, Message: message}
}

// NewFFprobeParseError creates an ffprobe parse error.
func NewFFprobeParseError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindFFprobeParse, Message: message, Underlying: underlying}
}

// NewVideoInfoError creates a stream information error.
func NewVideoInfoError(message string) *CoreError {
	return &CoreError{Kind: KindVideoInfo, Message: message}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message, Underlying: underlying}
}

// NewInvalidDimensionsError creates an invalid dimensions error.
func NewInvalidDimensionsError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindInvalidDimensions, Message: message, Underlying: underlying}
}

// NewNoFilesFoundError creates an error for a directory without videos.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no video files found in %s", dir)}
}

// NewModelError creates a model service error.
func NewModelError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindModel, Message: message, Underlying: underlying}
}

// NewCancelledError creates a cancellation error.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// IsKind reports whether err wraps a CoreError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsCancelled reports whether err is a cancellation.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// WrapExecError converts an exec failure into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
