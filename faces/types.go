package faces

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/Kagami/go-face"
)

// DescriptorSize is the number of values in a face descriptor
const DescriptorSize = 128

// Backend selects the face detector
type Backend string

const (
	BackendHOG Backend = "hog"
	BackendCNN Backend = "cnn" // Convolutional Neural Network, slower and more accurate at different angles
)

var (
	ErrBadImage     = errors.New("cannot decode image")
	ErrUnknownValue = errors.New("unknown value")
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendHOG, BackendCNN:
		return b, nil
	case "":
		return BackendHOG, nil
	}
	return "", fmt.Errorf("detector backend %q: %w", s, ErrUnknownValue)
}

// Face is a detected face region
type Face struct {
	Rectangle  image.Rectangle
	Descriptor face.Descriptor
	Crop       image.Image // Face region fitted into the target size
}

func (f *Face) Width() int {
	return f.Rectangle.Dx()
}

// Detection is the outcome of Detector.Detect
type Detection struct {
	Faces []Face
	JPEG  []byte // The image as the recognizer read it, for further processing (OCR)
}

// Sample is a labelled descriptor of the gallery
type Sample struct {
	FaceID     uint64
	Label      string
	Descriptor face.Descriptor
}

// Match is the gallery sample closest to a query
type Match struct {
	Sample
	Distance float64
}

// Verification is the outcome of a 1:1 comparison
type Verification struct {
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
	Metric    Metric  `json:"metric"`
}
