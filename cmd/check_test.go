package cmd

import (
	"attendance/attendance"
	"attendance/db"
	"attendance/faces"
	"attendance/models"
	"attendance/storage"
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"path/filepath"
	"testing"
)

type fakeDetector struct {
	faces []faces.Face
	err   error
}

func (f *fakeDetector) Detect(img []byte, backend faces.Backend) (faces.Detection, error) {
	return faces.Detection{Faces: f.faces, JPEG: img}, f.err
}

type fakeReader struct{}

func (fakeReader) FindIC(img []byte) (string, bool, error) {
	return "900101-14-5678", true, nil
}

func Test_writeCheck(t *testing.T) {
	db.Init("", filepath.Join(t.TempDir(), "test.db"))
	models.Init()
	face := faces.Face{Rectangle: image.Rect(0, 0, 100, 100), Crop: image.NewRGBA(image.Rect(0, 0, 8, 8))}
	detector := &fakeDetector{faces: []faces.Face{face, face}}
	svc := &attendance.Service{
		Detector: detector,
		Reader:   fakeReader{},
		Gallery:  faces.NewGallery(faces.MetricEuclidean, 0),
		Storage:  storage.NewDiskStorage(&storage.Bucket{Name: "test", Path: t.TempDir()}),
		Backend:  faces.BackendHOG,
		Metric:   faces.MetricEuclidean,
	}

	tests := []struct {
		name   string
		check  checkFunc
		asJSON bool
		want   string
	}{
		{"verify", (*attendance.Service).Verify, false, "IC: 900101-14-5678\n"},
		{"identify", (*attendance.Service).Identify, false, attendance.Unknown + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			if err := writeCheck(out, svc, []byte("img"), tt.check, tt.asJSON); err != nil {
				t.Fatal(err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}

	out := &bytes.Buffer{}
	if err := writeCheck(out, svc, []byte("img"), (*attendance.Service).Verify, true); err != nil {
		t.Fatal(err)
	}
	result := attendance.Result{}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if !result.Verified || result.ICNumber != "900101-14-5678" || result.FaceCount != 2 || result.Kind != models.KindVerify {
		t.Errorf("JSON result = %+v", result)
	}

	detector.err = faces.ErrBadImage
	out.Reset()
	if err := writeCheck(out, svc, []byte("img"), (*attendance.Service).Verify, false); !errors.Is(err, faces.ErrBadImage) {
		t.Errorf("writeCheck() error = %v, want ErrBadImage", err)
	}
	if out.Len() != 0 {
		t.Errorf("output on error = %q", out.String())
	}
}
