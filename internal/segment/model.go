package segment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/five82/vedit/internal/errors"
)

// Detector finds objects in a frame.
type Detector interface {
	Detect(ctx context.Context, frame image.Image) ([]Box, error)
}

// Segmenter returns one foreground mask per prompt box, sized to the frame.
type Segmenter interface {
	Segment(ctx context.Context, frame image.Image, boxes []Box) ([]*Mask, error)
}

// ModelClient talks to a model service exposing POST /detect and
// POST /segment. Frames and masks travel as base64 PNG inside JSON.
type ModelClient struct {
	baseURL string
	client  *http.Client
}

// NewModelClient creates a client for the service at baseURL.
func NewModelClient(baseURL string, timeout time.Duration) *ModelClient {
	return &ModelClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	Image string `json:"image"`
}

type detectResponse struct {
	Boxes []Box `json:"boxes"`
}

type segmentRequest struct {
	Image string       `json:"image"`
	Boxes [][4]float64 `json:"boxes"`
}

type segmentResponse struct {
	Masks []string `json:"masks"`
}

// Detect returns every box the detection model finds in frame.
func (c *ModelClient) Detect(ctx context.Context, frame image.Image) ([]Box, error) {
	encoded, err := encodePNG(frame)
	if err != nil {
		return nil, err
	}

	var resp detectResponse
	if err := c.post(ctx, "/detect", detectRequest{Image: encoded}, &resp); err != nil {
		return nil, err
	}
	return resp.Boxes, nil
}

// Segment prompts the segmentation model with boxes.
func (c *ModelClient) Segment(ctx context.Context, frame image.Image, boxes []Box) ([]*Mask, error) {
	encoded, err := encodePNG(frame)
	if err != nil {
		return nil, err
	}

	req := segmentRequest{Image: encoded, Boxes: make([][4]float64, len(boxes))}
	for i, b := range boxes {
		req.Boxes[i] = [4]float64{b.X1, b.Y1, b.X2, b.Y2}
	}

	var resp segmentResponse
	if err := c.post(ctx, "/segment", req, &resp); err != nil {
		return nil, err
	}

	size := frame.Bounds().Size()
	masks := make([]*Mask, 0, len(resp.Masks))
	for i, m := range resp.Masks {
		img, err := decodePNG(m)
		if err != nil {
			return nil, errors.NewModelError(fmt.Sprintf("mask %d is not a PNG", i), err)
		}
		masks = append(masks, MaskFromImage(img, size.X, size.Y))
	}
	return masks, nil
}

func (c *ModelClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.NewModelError("cannot encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.NewModelError(fmt.Sprintf("invalid model URL %q", c.baseURL), err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.NewCancelledError()
		}
		return errors.NewModelError(fmt.Sprintf("POST %s failed", path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewModelError(fmt.Sprintf("POST %s: %s: %s", path, resp.Status, strings.TrimSpace(string(msg))), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewModelError(fmt.Sprintf("invalid response from %s", path), err)
	}
	return nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", errors.NewModelError("cannot encode frame", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func decodePNG(s string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(data))
}
