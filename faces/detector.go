package faces

import (
	"attendance/utils"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Kagami/go-face"
)

const jpegQuality = 95

// Recognizer is implemented by *face.Recognizer
type Recognizer interface {
	Recognize(imgData []byte) ([]face.Face, error)
	RecognizeCNN(imgData []byte) ([]face.Face, error)
	Close()
}

// Detector finds faces and computes their descriptors
type Detector struct {
	recognizer Recognizer
	targetSize uint
	mutex      sync.Mutex
}

// NewDetector loads the dlib models from modelsDir
func NewDetector(modelsDir string, targetSize uint) (*Detector, error) {
	start := time.Now()
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("loading face models from %s: %w", modelsDir, err)
	}
	log.Printf("Face models loaded in %v", time.Since(start))
	return NewDetectorWith(rec, targetSize), nil
}

func NewDetectorWith(rec Recognizer, targetSize uint) *Detector {
	return &Detector{recognizer: rec, targetSize: targetSize}
}

// Classifier returns the recognizer's sample classifier, nil if it has none
func (d *Detector) Classifier() Classifier {
	if c, ok := d.recognizer.(Classifier); ok {
		return c
	}
	return nil
}

func (d *Detector) Close() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.recognizer.Close()
}

// Detect returns all faces found in imgData (JPEG, PNG, GIF or WEBP).
// The recognizer only reads JPEG, other formats are converted first
func (d *Detector) Detect(imgData []byte, backend Backend) (Detection, error) {
	img, format, err := utils.DecodeImage(imgData)
	if err != nil {
		return Detection{}, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	if format != "jpeg" {
		if imgData, err = utils.EncodeJPEG(img, jpegQuality); err != nil {
			return Detection{}, fmt.Errorf("converting %s to jpeg: %w", format, err)
		}
	}

	start := time.Now()
	d.mutex.Lock()
	var found []face.Face
	if backend == BackendCNN {
		found, err = d.recognizer.RecognizeCNN(imgData)
	} else {
		found, err = d.recognizer.Recognize(imgData)
	}
	d.mutex.Unlock()
	if err != nil {
		return Detection{}, fmt.Errorf("face detection (%s): %w", backend, err)
	}
	log.Printf("Detected %d face(s) with %s in %v", len(found), backend, time.Since(start))

	result := make([]Face, 0, len(found))
	for _, f := range found {
		crop, err := utils.CropFace(img, f.Rectangle, d.targetSize)
		if err != nil {
			log.Printf("Skipping face at %v: %v", f.Rectangle, err)
			continue
		}
		result = append(result, Face{
			Rectangle:  f.Rectangle,
			Descriptor: f.Descriptor,
			Crop:       crop,
		})
	}
	return Detection{Faces: result, JPEG: imgData}, nil
}
