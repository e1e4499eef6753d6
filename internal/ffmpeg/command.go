// Package ffmpeg builds and runs ffmpeg command lines.
package ffmpeg

import (
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/five82/vedit/internal/fitcrop"
	"github.com/five82/vedit/internal/util"
)

// PipeTarget is the ffmpeg name for stdin/stdout.
const PipeTarget = "pipe:"

// SplitParams describes one split part.
type SplitParams struct {
	Input        string
	Output       string
	Start        float64
	Length       float64
	VideoEncoder string
	AudioEncoder string // empty drops audio
}

// SplitArgs re-encodes [Start, Start+Length) of Input.
func SplitArgs(p SplitParams) []string {
	out := ffmpeg.KwArgs{
		"t":   util.FormatSeconds(p.Length),
		"c:v": p.VideoEncoder,
	}
	setAudio(out, p.AudioEncoder)

	return ffmpeg.Input(p.Input, ffmpeg.KwArgs{"ss": util.FormatSeconds(p.Start)}).
		Output(p.Output, out).
		OverWriteOutput().
		GetArgs()
}

// ConvertParams describes a transcode with an optional filter chain.
type ConvertParams struct {
	Input        string
	Output       string
	VideoEncoder string
	AudioEncoder string
	Filters      *VideoFilterChain // nil or empty leaves the frame alone
}

// ConvertArgs transcodes Input, keeping audio.
func ConvertArgs(p ConvertParams) []string {
	out := ffmpeg.KwArgs{"c:v": p.VideoEncoder}
	if p.AudioEncoder != "" {
		out["c:a"] = p.AudioEncoder
	}
	if p.Filters != nil && !p.Filters.IsEmpty() {
		out["vf"] = p.Filters.Build()
	}

	return ffmpeg.Input(p.Input).Output(p.Output, out).OverWriteOutput().GetArgs()
}

// ReplaceAudioParams describes muxing a video with a new audio track.
type ReplaceAudioParams struct {
	Video         string
	Audio         string
	Output        string
	VideoDuration float64
	LoopAudio     bool
	VideoEncoder  string
	AudioEncoder  string
}

// ReplaceAudioArgs maps video from the first input and audio from the
// second. Output is cut at the video duration, so a looped track is
// trimmed as well.
func ReplaceAudioArgs(p ReplaceAudioParams) []string {
	audioIn := ffmpeg.KwArgs{}
	if p.LoopAudio {
		audioIn["stream_loop"] = -1
	}

	video := ffmpeg.Input(p.Video)
	audio := ffmpeg.Input(p.Audio, audioIn)

	return ffmpeg.Output([]*ffmpeg.Stream{video.Video(), audio.Audio()}, p.Output, ffmpeg.KwArgs{
		"c:v": p.VideoEncoder,
		"c:a": p.AudioEncoder,
		"t":   util.FormatSeconds(p.VideoDuration),
	}).OverWriteOutput().GetArgs()
}

// ExtractAudioArgs drops the video stream of Input.
func ExtractAudioArgs(input, output, encoder string) []string {
	out := ffmpeg.KwArgs{"vn": ""}
	if encoder != "" {
		out["c:a"] = encoder
	}
	return ffmpeg.Input(input).Output(output, out).OverWriteOutput().GetArgs()
}

// FrameArgs writes the frame at the given second to stdout as PNG.
func FrameArgs(input string, at float64) []string {
	return ffmpeg.Input(input, ffmpeg.KwArgs{"ss": util.FormatSeconds(at)}).
		Output(PipeTarget, ffmpeg.KwArgs{
			"frames:v": 1,
			"f":        "image2pipe",
			"c:v":      "png",
		}).
		GetArgs()
}

// DecodeRawArgs writes every frame of input to stdout as packed RGB24.
func DecodeRawArgs(input string) []string {
	return ffmpeg.Input(input).
		Output(PipeTarget, ffmpeg.KwArgs{
			"f":       "rawvideo",
			"pix_fmt": "rgb24",
			"an":      "",
		}).
		GetArgs()
}

// EncodeRawArgs reads packed RGB24 frames from stdin and encodes them
// without audio.
func EncodeRawArgs(output string, size fitcrop.Dimensions, fps float64, encoder string) []string {
	return ffmpeg.Input(PipeTarget, ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgb24",
		"s":       fmt.Sprintf("%dx%d", size.Width, size.Height),
		"r":       util.FormatSeconds(fps),
	}).
		Output(output, ffmpeg.KwArgs{
			"c:v":     encoder,
			"pix_fmt": "yuv420p",
			"an":      "",
		}).
		OverWriteOutput().
		GetArgs()
}

// ConcatInput is one combine input and the fit that normalizes it.
type ConcatInput struct {
	Path string
	Fit  fitcrop.Result
}

// ConcatParams describes joining inputs end to end.
type ConcatParams struct {
	Inputs       []ConcatInput
	Target       fitcrop.Dimensions
	WithAudio    bool
	VideoEncoder string
	AudioEncoder string
	Output       string
}

// ConcatArgs builds the combine command. Every input is fitted onto Target
// and fed to the concat filter. A path listed more than once is opened once
// and split, since identical inputs collapse into one graph node.
func ConcatArgs(p ConcatParams) []string {
	sources := concatSources(p.Inputs, p.WithAudio)

	var segments []*ffmpeg.Stream
	for i, in := range p.Inputs {
		video := sources[i].video.
			Filter("scale", ffmpeg.Args{strconv.Itoa(in.Fit.ScaledWidth), strconv.Itoa(in.Fit.ScaledHeight)}).
			Crop(in.Fit.CropX, in.Fit.CropY, p.Target.Width, p.Target.Height).
			Filter("setsar", ffmpeg.Args{"1"}).
			Filter("format", ffmpeg.Args{"yuv420p"})
		segments = append(segments, video)

		if p.WithAudio {
			segments = append(segments, sources[i].audio.Filter("aformat", nil, ffmpeg.KwArgs{
				"sample_rates":    "48000",
				"channel_layouts": "stereo",
			}))
		}
	}

	audioCount := 0
	out := ffmpeg.KwArgs{"c:v": p.VideoEncoder}
	if p.WithAudio {
		audioCount = 1
		out["c:a"] = p.AudioEncoder
	}

	joined := ffmpeg.Concat(segments, ffmpeg.KwArgs{"v": 1, "a": audioCount}).Node
	streams := []*ffmpeg.Stream{joined.Get("0")}
	if p.WithAudio {
		streams = append(streams, joined.Get("1"))
	}

	return ffmpeg.Output(streams, p.Output, out).OverWriteOutput().GetArgs()
}

type concatSource struct {
	video *ffmpeg.Stream
	audio *ffmpeg.Stream
}

// concatSources returns one video and audio stream per input, in order.
func concatSources(inputs []ConcatInput, withAudio bool) []concatSource {
	uses := make(map[string]int)
	for _, in := range inputs {
		uses[in.Path]++
	}

	type opened struct {
		video, audio *ffmpeg.Node
		stream       *ffmpeg.Stream
		next         int
	}
	files := make(map[string]*opened)

	sources := make([]concatSource, len(inputs))
	for i, in := range inputs {
		f, ok := files[in.Path]
		if !ok {
			f = &opened{stream: ffmpeg.Input(in.Path)}
			if uses[in.Path] > 1 {
				f.video = f.stream.Video().Split()
				if withAudio {
					f.audio = f.stream.Audio().ASplit()
				}
			}
			files[in.Path] = f
		}

		if f.video == nil {
			sources[i] = concatSource{video: f.stream.Video(), audio: f.stream.Audio()}
			continue
		}
		label := strconv.Itoa(f.next)
		f.next++
		sources[i].video = f.video.Get(label)
		if f.audio != nil {
			sources[i].audio = f.audio.Get(label)
		}
	}
	return sources
}

func setAudio(kw ffmpeg.KwArgs, encoder string) {
	if encoder == "" {
		kw["an"] = ""
		return
	}
	kw["c:a"] = encoder
}
