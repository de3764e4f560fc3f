package ocr

import (
	"fmt"
	"image"
	"regexp"
	"strings"
)

// Line is one line of recognized text
type Line struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}

// Engine recognizes text lines in an image
type Engine interface {
	Lines(img []byte) ([]Line, error)
	Close() error
}

// Extractor finds the ID card number among the recognized lines
type Extractor struct {
	Engine  Engine
	pattern *regexp.Regexp
}

// NewExtractor compiles pattern. Lines have to start with it to match
func NewExtractor(engine Engine, pattern string) (*Extractor, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid IC pattern %q: %w", pattern, err)
	}
	return &Extractor{Engine: engine, pattern: re}, nil
}

// Match returns the first line starting with the pattern
func (e *Extractor) Match(lines []Line) (string, bool) {
	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if e.pattern.MatchString(text) {
			return text, true
		}
	}
	return "", false
}

// FindIC recognizes the text of img and returns the ID number line
func (e *Extractor) FindIC(img []byte) (string, bool, error) {
	lines, err := e.Engine.Lines(img)
	if err != nil {
		return "", false, fmt.Errorf("text recognition: %w", err)
	}
	ic, found := e.Match(lines)
	return ic, found, nil
}
