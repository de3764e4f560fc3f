package ocr

import (
	"errors"
	"testing"
)

type fakeEngine struct {
	lines []Line
	err   error
}

func (f *fakeEngine) Lines(img []byte) ([]Line, error) {
	return f.lines, f.err
}

func (f *fakeEngine) Close() error {
	return nil
}

func lines(texts ...string) (result []Line) {
	for _, t := range texts {
		result = append(result, Line{Text: t})
	}
	return
}

func TestExtractor_FindIC(t *testing.T) {
	tests := []struct {
		name      string
		lines     []Line
		want      string
		wantFound bool
	}{
		{"no lines", nil, "", false},
		{"no match", lines("MyKad", "WARGANEGARA", "ALI BIN ABU"), "", false},
		{"match", lines("MyKad", "900101-14-5678", "ALI BIN ABU"), "900101-14-5678", true},
		{"trimmed", lines("  900101-14-5678 \n"), "900101-14-5678", true},
		{"first match wins", lines("880202-10-1111", "900101-14-5678"), "880202-10-1111", true},
		{"anchored at line start", lines("No. 900101-14-5678"), "", false},
		{"whole line returned", lines("900101-14-5678 MALAYSIA"), "900101-14-5678 MALAYSIA", true},
		{"wrong grouping", lines("9001011-4-5678"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExtractor(&fakeEngine{lines: tt.lines}, `\d{6}-\d{2}-\d{4}`)
			if err != nil {
				t.Fatal(err)
			}
			got, found, err := e.FindIC([]byte("img"))
			if err != nil {
				t.Fatalf("FindIC() error: %v", err)
			}
			if got != tt.want || found != tt.wantFound {
				t.Errorf("FindIC() = %q, %v, want %q, %v", got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestExtractor_Errors(t *testing.T) {
	if _, err := NewExtractor(&fakeEngine{}, `(\d`); err == nil {
		t.Error("NewExtractor() should reject an invalid pattern")
	}
	e, _ := NewExtractor(&fakeEngine{err: errors.New("tesseract crashed")}, `\d+`)
	if _, _, err := e.FindIC(nil); err == nil {
		t.Error("FindIC() should return the engine error")
	}
}
