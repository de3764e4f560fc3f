package utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// MaxImagePixels bounds decoded images, an upload limited in bytes can still declare huge dimensions
const MaxImagePixels = 50_000_000

var (
	ErrEmptyRegion   = errors.New("region outside of the image")
	ErrImageTooLarge = errors.New("image dimensions too large")
)

func Float32ArrayToByteArray(fa []float32) []byte {
	buf := bytes.Buffer{}
	_ = binary.Write(&buf, binary.LittleEndian, fa)
	return buf.Bytes()
}

func ByteArrayToFloat32Array(b []byte) (result []float32) {
	for i := 0; i+3 < len(b); i += 4 {
		ui32 := uint32(b[i+0]) +
			uint32(b[i+1])<<8 +
			uint32(b[i+2])<<16 +
			uint32(b[i+3])<<24
		result = append(result, math.Float32frombits(ui32))
	}
	return
}

// DecodeImage decodes JPEG, PNG, GIF or WEBP data and returns the format name as well.
// Images over MaxImagePixels are rejected before decoding
func DecodeImage(data []byte) (image.Image, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, format, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	return image.Decode(bytes.NewReader(data))
}

func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CropFace cuts rect out of img and fits it into a size x size square (aspect ratio kept)
func CropFace(img image.Image, rect image.Rectangle, size uint) (image.Image, error) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return nil, ErrEmptyRegion
	}
	var region image.Image
	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		region = sub.SubImage(rect)
	} else {
		rgba := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, rect.Min, draw.Src)
		region = rgba
	}
	if size == 0 {
		return region, nil
	}
	return resize.Thumbnail(size, size, region, resize.Lanczos3), nil
}
