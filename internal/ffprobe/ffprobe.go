// Package ffprobe extracts media information using ffprobe.
package ffprobe

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/five82/vedit/internal/errors"
	"github.com/five82/vedit/internal/fitcrop"
)

// DefaultTimeout bounds a single ffprobe call when ctx has no deadline.
const DefaultTimeout = 30 * time.Second

// MediaInfo is the subset of ffprobe output vedit works with.
type MediaInfo struct {
	Duration   float64
	Width      int
	Height     int
	FrameRate  float64
	VideoCodec string
	AudioCodec string
	HasVideo   bool
	HasAudio   bool
	Size       uint64
	// Rotation is the display rotation in degrees, normalized to 0, 90, 180
	// or 270. Width and Height are the coded size.
	Rotation int
}

// Dimensions returns the size of a decoded frame. ffmpeg applies the display
// rotation while decoding, so quarter turns swap the coded sides.
func (m *MediaInfo) Dimensions() fitcrop.Dimensions {
	if m.Rotation == 90 || m.Rotation == 270 {
		return fitcrop.Dimensions{Width: m.Height, Height: m.Width}
	}
	return fitcrop.Dimensions{Width: m.Width, Height: m.Height}
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Duration     string `json:"duration"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	SideDataList []struct {
		Rotation *float64 `json:"rotation"`
	} `json:"side_data_list"`
	Tags struct {
		Rotate string `json:"rotate"`
	} `json:"tags"`
}

// rotation returns the stream's display rotation. The display matrix side
// data wins over the legacy rotate tag.
func (s ffprobeStream) rotation() int {
	for _, sd := range s.SideDataList {
		if sd.Rotation != nil {
			return normalizeRotation(int(math.Round(*sd.Rotation)))
		}
	}
	if r, err := strconv.Atoi(strings.TrimSpace(s.Tags.Rotate)); err == nil {
		return normalizeRotation(r)
	}
	return 0
}

func normalizeRotation(deg int) int {
	return ((deg % 360) + 360) % 360
}

// Prober runs ffprobe through ffmpeg-go.
type Prober struct {
	Timeout time.Duration
}

// NewProber creates a prober with the default timeout.
func NewProber() *Prober {
	return &Prober{Timeout: DefaultTimeout}
}

// Probe returns media information for path.
func (p *Prober) Probe(ctx context.Context, path string) (*MediaInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewPathError(fmt.Sprintf("cannot read %s: %v", path, err))
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelledError()
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	out, err := ffmpeg.ProbeWithTimeout(path, timeout, ffmpeg.KwArgs{"v": "quiet"})
	if err != nil {
		return nil, errors.WrapExecError("ffprobe", err, "")
	}

	info, err := parseProbeOutput([]byte(out))
	if err != nil {
		return nil, err
	}
	if !info.HasVideo && !info.HasAudio {
		return nil, errors.NewVideoInfoError(fmt.Sprintf("no audio or video streams in %s", path))
	}
	return info, nil
}

// parseProbeOutput converts ffprobe JSON into MediaInfo.
func parseProbeOutput(data []byte) (*MediaInfo, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.NewFFprobeParseError("invalid ffprobe JSON", err)
	}

	info := &MediaInfo{}
	if probe.Format.Duration != "" {
		d, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, errors.NewFFprobeParseError(fmt.Sprintf("bad duration %q", probe.Format.Duration), err)
		}
		info.Duration = d
	}
	if probe.Format.Size != "" {
		if s, err := strconv.ParseUint(probe.Format.Size, 10, 64); err == nil {
			info.Size = s
		}
	}

	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if info.HasVideo {
				continue
			}
			info.HasVideo = true
			info.VideoCodec = stream.CodecName
			info.Width = stream.Width
			info.Height = stream.Height
			info.Rotation = stream.rotation()
			info.FrameRate = parseFrameRate(stream.RFrameRate)
			if info.FrameRate == 0 {
				info.FrameRate = parseFrameRate(stream.AvgFrameRate)
			}
			if info.Duration == 0 && stream.Duration != "" {
				if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
					info.Duration = d
				}
			}
		case "audio":
			if info.HasAudio {
				continue
			}
			info.HasAudio = true
			info.AudioCodec = stream.CodecName
			if info.Duration == 0 && stream.Duration != "" {
				if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
					info.Duration = d
				}
			}
		}
	}

	return info, nil
}

// parseFrameRate parses "num/den" or a plain number. Returns 0 when unknown.
func parseFrameRate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
