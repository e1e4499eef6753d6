package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/ffmpeg"
	"github.com/five82/vedit/internal/reporter"
	"github.com/five82/vedit/internal/util"
	"github.com/five82/vedit/internal/validation"
)

// ReplaceAudio writes video with its audio replaced by the audio track of
// audio. A longer track is trimmed to the video duration; a shorter one is
// looped until the video ends.
func (e *Editor) ReplaceAudio(ctx context.Context, video, audio, output string) (string, error) {
	start := time.Now()
	output = orDefault(output, video, "_with_replaced_audio", "")

	e.rep.OperationStarted(reporter.OperationInfo{
		Command: "replace-audio",
		Inputs:  []string{video, audio},
		Output:  output,
	})

	videoInfo, err := e.probe(ctx, video)
	if err != nil {
		return "", err
	}
	if !videoInfo.HasVideo || videoInfo.Duration <= 0 {
		return "", errors.NewVideoInfoError(fmt.Sprintf("%s has no video stream", video))
	}

	audioInfo, err := e.probe(ctx, audio)
	if err != nil {
		return "", err
	}
	if !audioInfo.HasAudio {
		return "", errors.NewVideoInfoError(fmt.Sprintf("%s has no audio stream", audio))
	}

	loop := audioInfo.Duration < videoInfo.Duration
	switch {
	case loop:
		e.rep.StageProgress(reporter.StageProgress{
			Stage:   "audio",
			Message: fmt.Sprintf("Looping %s of audio to fill %s", util.FormatDuration(audioInfo.Duration), util.FormatDuration(videoInfo.Duration)),
		})
	case audioInfo.Duration > videoInfo.Duration:
		e.rep.StageProgress(reporter.StageProgress{
			Stage:   "audio",
			Message: fmt.Sprintf("Trimming audio to %s", util.FormatDuration(videoInfo.Duration)),
		})
	}

	videoEnc, videoFallback := e.videoEncoder(videoInfo.VideoCodec)
	audioEnc, audioFallback := e.audioEncoder(audioInfo.AudioCodec)
	e.rep.CodecSelection(reporter.CodecSummary{
		VideoEncoder:  videoEnc,
		AudioEncoder:  audioEnc,
		VideoFallback: videoFallback,
		AudioFallback: audioFallback,
	})

	if err := e.preflight(output, videoInfo.Size+audioInfo.Size); err != nil {
		return "", err
	}

	args := ffmpeg.ReplaceAudioArgs(ffmpeg.ReplaceAudioParams{
		Video:         video,
		Audio:         audio,
		Output:        output,
		VideoDuration: videoInfo.Duration,
		LoopAudio:     loop,
		VideoEncoder:  videoEnc,
		AudioEncoder:  audioEnc,
	})
	if err := e.run(ctx, "replace audio", ffmpeg.Job{Args: args, Duration: videoInfo.Duration}); err != nil {
		return "", err
	}

	err = e.finish(ctx, output, validation.Expectations{
		Dimensions: ptr(videoInfo.Dimensions()),
		Duration:   &videoInfo.Duration,
		Audio:      ptr(true),
	})
	if err != nil {
		return "", err
	}

	e.complete("replace-audio", start, output)
	return output, nil
}

// ExtractAudio writes the audio of input to output, choosing the encoder
// from the output extension.
func (e *Editor) ExtractAudio(ctx context.Context, input, output string) (string, error) {
	start := time.Now()
	output = orDefault(output, input, "_audio", ".mp3")

	e.rep.OperationStarted(reporter.OperationInfo{
		Command: "extract-audio",
		Inputs:  []string{input},
		Output:  output,
	})

	info, err := e.probe(ctx, input)
	if err != nil {
		return "", err
	}
	if !info.HasAudio {
		return "", errors.NewVideoInfoError(fmt.Sprintf("%s has no audio stream", input))
	}

	encoder := ffmpeg.AudioEncoderForPath(output)
	if encoder == "" {
		e.rep.Verbose("No encoder mapped for the output extension, letting ffmpeg choose")
	}
	e.rep.CodecSelection(reporter.CodecSummary{AudioEncoder: encoder})

	if err := e.preflight(output, info.Size); err != nil {
		return "", err
	}

	args := ffmpeg.ExtractAudioArgs(input, output, encoder)
	if err := e.run(ctx, "extract audio", ffmpeg.Job{Args: args, Duration: info.Duration}); err != nil {
		return "", err
	}

	err = e.finish(ctx, output, validation.Expectations{
		Duration: &info.Duration,
		Audio:    ptr(true),
	})
	if err != nil {
		return "", err
	}

	e.complete("extract-audio", start, output)
	return output, nil
}
