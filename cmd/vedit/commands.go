package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/vedit"
	"github.com/five82/vedit/internal/config"
)

func newSplitCmd(g *globalFlags) *cobra.Command {
	var chunk int

	cmd := &cobra.Command{
		Use:   "split <input>",
		Short: "Split a video into 5 or 10 second parts",
		Long: `Split a video into consecutive parts of --chunk-size seconds.

Parts are written next to the input as <name>_part1<ext>, <name>_part2<ext>, ...
The last part holds the remainder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g, vedit.WithChunkSeconds(chunk))
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.editor.Split(cmd.Context(), args[0])
			return s.finish(err)
		},
	}
	cmd.Flags().IntVarP(&chunk, "chunk-size", "c", config.DefaultChunkSeconds, "Part length in seconds (5 or 10)")
	return cmd
}

func newCombineCmd(g *globalFlags) *cobra.Command {
	var codec string

	cmd := &cobra.Command{
		Use:   "combine <output> <inputs...>",
		Short: "Join videos end to end",
		Long: `Join videos end to end into <output>.

Inputs may be files or a single directory, whose videos are joined in
alphabetical order. Every input is scaled and center-cropped to the first
input's frame size. Audio is kept only when every input has an audio stream.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.editor.Combine(cmd.Context(), args[0], args[1:], codec)
			return s.finish(err)
		},
	}
	cmd.Flags().StringVar(&codec, "codec", "", "Video encoder (default: the first input's codec)")
	return cmd
}

func newReplaceAudioCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "replace-audio <video> <audio> [output]",
		Short: "Replace the audio track of a video",
		Long: `Replace the audio track of <video> with <audio>.

Audio longer than the video is trimmed; shorter audio is looped until the
video ends. The default output is <name>_with_replaced_audio<ext>.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.editor.ReplaceAudio(cmd.Context(), args[0], args[1], optionalArg(args, 2))
			return s.finish(err)
		},
	}
}

func newThumbnailCmd(g *globalFlags) *cobra.Command {
	var opts vedit.ThumbnailOptions

	cmd := &cobra.Command{
		Use:   "thumbnail <input> [output]",
		Short: "Save one frame as an image",
		Long: `Save the frame at --at seconds as an image. The format follows the output
extension; the default output is <name>_thumbnail.jpg.

With --width and --height the frame is scaled to cover that size and
center-cropped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.editor.Thumbnail(cmd.Context(), args[0], optionalArg(args, 1), opts)
			return s.finish(err)
		},
	}
	cmd.Flags().Float64Var(&opts.At, "at", 0, "Frame time in seconds")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Thumbnail width")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "Thumbnail height")
	return cmd
}

func newConvertCmd(g *globalFlags) *cobra.Command {
	var (
		videoCodec string
		audioCodec string
		cropWidth  int
		cropHeight int
	)

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Transcode a video, optionally resizing it",
		Long: fmt.Sprintf(`Transcode a video with the given encoders.

When both crop dimensions are non-zero the frame is scaled to cover
that size and center-cropped, without letterbox bars. Set either to 0
to keep the source size. Defaults: %s, %s, %dx%d.`,
			config.DefaultVideoCodec, config.DefaultAudioCodec, config.DefaultCropWidth, config.DefaultCropHeight),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g,
				vedit.WithCodecs(videoCodec, audioCodec),
				vedit.WithCropSize(cropWidth, cropHeight),
			)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.editor.Convert(cmd.Context(), args[0], optionalArg(args, 1))
			return s.finish(err)
		},
	}
	f := cmd.Flags()
	f.StringVar(&videoCodec, "video-codec", config.DefaultVideoCodec, "Video encoder")
	f.StringVar(&audioCodec, "audio-codec", config.DefaultAudioCodec, "Audio encoder")
	f.IntVar(&cropWidth, "crop-width", config.DefaultCropWidth, "Target width (0 disables resizing)")
	f.IntVar(&cropHeight, "crop-height", config.DefaultCropHeight, "Target height (0 disables resizing)")
	return cmd
}

func newExtractAudioCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "extract-audio <input> [output]",
		Short: "Write the audio track of a video to its own file",
		Long: `Write the audio track of a video to its own file. The encoder follows the
output extension; the default output is <name>_audio.mp3.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, g)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.editor.ExtractAudio(cmd.Context(), args[0], optionalArg(args, 1))
			return s.finish(err)
		},
	}
}

func newSegmentCmd(g *globalFlags) *cobra.Command {
	var (
		modelURL   string
		class      int
		background string
		codec      string
	)

	cmd := &cobra.Command{
		Use:   "segment <input> <output>",
		Short: "Replace everything but detected people with a solid background (experimental)",
		Long: fmt.Sprintf(`Run a detection model and a segmentation model over every frame and paint
every pixel outside the detected objects with the background colour.

The models are reached over HTTP at --model-url or $%s. Frames without
detections become fully background. Audio is not carried over.`, config.EnvModelURL),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bg, err := config.ParseBackground(background)
			if err != nil {
				return err
			}

			opts := []vedit.Option{
				vedit.WithTargetClass(class),
				vedit.WithBackground(bg),
				vedit.WithSegmentCodec(codec),
			}
			// The flag only overrides the environment when given.
			if cmd.Flags().Changed("model-url") {
				opts = append(opts, vedit.WithModelURL(modelURL))
			}

			s, err := newSession(cmd, g, opts...)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = s.editor.Segment(cmd.Context(), args[0], args[1])
			return s.finish(err)
		},
	}
	f := cmd.Flags()
	f.StringVar(&modelURL, "model-url", "", "Model service base URL")
	f.IntVar(&class, "class", config.DefaultTargetClass, "Detection class to keep (0 = person)")
	f.StringVar(&background, "background", "0,255,0", "Background colour as R,G,B")
	f.StringVar(&codec, "codec", config.DefaultSegmentCodec, "Video encoder for the output")
	return cmd
}

func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
