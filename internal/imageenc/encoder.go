// Package imageenc turns uploaded or captured images into the base64 payload sent to a
// vision model.
package imageenc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// MIMETypeJPEG is the MIME type of every image produced by Encode.
const MIMETypeJPEG = "image/jpeg"

var (
	ErrUnreadableImage  = errors.New("image could not be read")
	ErrUnsupportedImage = errors.New("unsupported image type, expected JPG or PNG")
)

var supportedTypes = []string{"image/jpeg", "image/png"}

// Image is a transport-safe image payload.
type Image struct {
	Data     string `json:"imageData"`
	MIMEType string `json:"mimeType"`
}

// Encoder downsizes and re-encodes images before they are sent upstream.
// A zero MaxWidth disables resizing.
type Encoder struct {
	MaxWidth int
	Quality  int
}

func NewEncoder(maxWidth, quality int) *Encoder {
	if quality <= 0 || quality > 100 {
		quality = 70
	}
	return &Encoder{MaxWidth: maxWidth, Quality: quality}
}

// Encode reads a JPG or PNG, scales it down to MaxWidth keeping the aspect ratio and
// returns it as base64 JPEG.
func (e *Encoder) Encode(r io.Reader) (Image, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if len(raw) == 0 {
		return Image{}, fmt.Errorf("%w: empty input", ErrUnreadableImage)
	}
	if _, err := checkSupported(raw); err != nil {
		return Image{}, err
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	if e.MaxWidth > 0 && img.Bounds().Dx() > e.MaxWidth {
		img = imaging.Resize(img, e.MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(e.Quality)); err != nil {
		return Image{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return Image{
		Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
		MIMEType: MIMETypeJPEG,
	}, nil
}

// FromBase64 accepts an image that the client already encoded. A data URL prefix
// ("data:image/png;base64,") is stripped. The payload is passed through unchanged and
// labelled with the type sniffed from its bytes, whatever the client declared.
func (e *Encoder) FromBase64(data, _ string) (Image, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "data:") {
		_, payload, ok := strings.Cut(data, ",")
		if !ok {
			return Image{}, fmt.Errorf("%w: malformed data URL", ErrUnreadableImage)
		}
		data = payload
	}
	if data == "" {
		return Image{}, fmt.Errorf("%w: empty input", ErrUnreadableImage)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Image{}, fmt.Errorf("%w: invalid base64: %v", ErrUnreadableImage, err)
	}
	detected, err := checkSupported(raw)
	if err != nil {
		return Image{}, err
	}
	return Image{Data: data, MIMEType: detected}, nil
}

// checkSupported returns the sniffed MIME type when it is one we accept.
func checkSupported(raw []byte) (string, error) {
	detected := mimetype.Detect(raw)
	for _, t := range supportedTypes {
		if detected.Is(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: got %s", ErrUnsupportedImage, detected.String())
}
