package utils

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"testing"
)

func TestFloat32ArrayToByteArray(t *testing.T) {
	fa := []float32{0.1, -0.2, 0.3, 1e-7}
	b := Float32ArrayToByteArray(fa)
	if len(b) != 4*len(fa) {
		t.Fatalf("got %d bytes, want %d", len(b), 4*len(fa))
	}
	if got := ByteArrayToFloat32Array(b); !reflect.DeepEqual(got, fa) {
		t.Errorf("ByteArrayToFloat32Array() = %v, want %v", got, fa)
	}
	// Trailing partial values are ignored
	if got := ByteArrayToFloat32Array(b[:5]); len(got) != 1 {
		t.Errorf("partial input decoded into %d values", len(got))
	}
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestCropFace(t *testing.T) {
	img := testImage(400, 300)
	tests := []struct {
		name    string
		rect    image.Rectangle
		size    uint
		wantErr bool
		wantX   int
		wantY   int
	}{
		{"square face fitted", image.Rect(100, 100, 200, 200), 50, false, 50, 50},
		{"wide face keeps aspect", image.Rect(0, 0, 200, 100), 100, false, 100, 50},
		{"clipped to bounds", image.Rect(350, 250, 450, 350), 0, false, 50, 50},
		{"no resize", image.Rect(10, 10, 30, 40), 0, false, 20, 30},
		{"outside", image.Rect(500, 500, 600, 600), 50, true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CropFace(img, tt.rect, tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CropFace() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Bounds().Dx() != tt.wantX || got.Bounds().Dy() != tt.wantY {
				t.Errorf("CropFace() size = %v, want %dx%d", got.Bounds().Size(), tt.wantX, tt.wantY)
			}
		})
	}
}

func TestDecodeAndEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(64, 32)); err != nil {
		t.Fatal(err)
	}
	img, format, err := DecodeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeImage() error: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	data, err := EncodeJPEG(img, 90)
	if err != nil {
		t.Fatalf("EncodeJPEG() error: %v", err)
	}
	_, format, err = DecodeImage(data)
	if err != nil || format != "jpeg" {
		t.Errorf("re-decoded format = %q, err = %v", format, err)
	}
	if _, _, err := DecodeImage([]byte("not an image")); err == nil {
		t.Error("DecodeImage() should fail on garbage")
	}
	// GIF header declaring 30000x30000, rejected before allocating the pixels
	huge := []byte{'G', 'I', 'F', '8', '9', 'a', 0x30, 0x75, 0x30, 0x75, 0, 0, 0}
	if _, _, err := DecodeImage(huge); !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("DecodeImage(huge) error = %v, want ErrImageTooLarge", err)
	}
}
