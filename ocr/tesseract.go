package ocr

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is an Engine backed by a single tesseract client. Calls are serialized
type Tesseract struct {
	client *gosseract.Client
	mutex  sync.Mutex
}

func NewTesseract(languages ...string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			client.Close()
			return nil, fmt.Errorf("tesseract language %v: %w", languages, err)
		}
	}
	log.Printf("Tesseract %s ready, languages: %v", gosseract.Version(), languages)
	return &Tesseract{client: client}, nil
}

func (t *Tesseract) Lines(img []byte) ([]Line, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	start := time.Now()
	if err := t.client.SetImageFromBytes(img); err != nil {
		return nil, err
	}
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(boxes))
	for _, b := range boxes {
		lines = append(lines, Line{
			Text:       b.Word,
			Box:        b.Box,
			Confidence: b.Confidence,
		})
	}
	log.Printf("Recognized %d text line(s) in %v", len(lines), time.Since(start))
	return lines, nil
}

func (t *Tesseract) Close() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.client.Close()
}
