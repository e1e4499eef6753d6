package ffmpeg

import (
	"path/filepath"
	"strings"
)

// Fallback encoders for streams whose codec has no known encoder.
const (
	FallbackVideoEncoder = "libx264"
	FallbackAudioEncoder = "aac"
)

var videoEncoders = map[string]string{
	"h264":   "libx264",
	"hevc":   "libx265",
	"vp9":    "libvpx-vp9",
	"vp8":    "libvpx",
	"av1":    "libsvtav1",
	"mpeg4":  "mpeg4",
	"prores": "prores_ks",
}

var audioEncoders = map[string]string{
	"aac":    "aac",
	"mp3":    "libmp3lame",
	"opus":   "libopus",
	"vorbis": "libvorbis",
	"flac":   "flac",
}

var audioExtEncoders = map[string]string{
	".mp3":  "libmp3lame",
	".wav":  "pcm_s16le",
	".m4a":  "aac",
	".aac":  "aac",
	".flac": "flac",
	".ogg":  "libvorbis",
	".opus": "libopus",
}

// VideoEncoder maps a probed video codec name to an encoder. The second
// result is false when the fallback was used.
func VideoEncoder(codec string) (string, bool) {
	if enc, ok := videoEncoders[strings.ToLower(codec)]; ok {
		return enc, true
	}
	return FallbackVideoEncoder, false
}

// AudioEncoder maps a probed audio codec name to an encoder. The second
// result is false when the fallback was used.
func AudioEncoder(codec string) (string, bool) {
	if enc, ok := audioEncoders[strings.ToLower(codec)]; ok {
		return enc, true
	}
	return FallbackAudioEncoder, false
}

// AudioEncoderForPath picks an encoder from the output extension. Empty means
// ffmpeg chooses from the container.
func AudioEncoderForPath(path string) string {
	return audioExtEncoders[strings.ToLower(filepath.Ext(path))]
}
