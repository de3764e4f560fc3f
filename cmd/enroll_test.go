package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_listImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ali.1.jpg", "ali.2.JPEG", "mei.png", "notes.txt", "raw.cr2"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0755); err != nil {
		t.Fatal(err)
	}
	got, err := listImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ali.1.jpg", "ali.2.JPEG", "mei.png"}
	if len(got) != len(want) {
		t.Fatalf("listImages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != filepath.Join(dir, want[i]) {
			t.Errorf("listImages()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if _, err := listImages(filepath.Join(dir, "missing")); err == nil {
		t.Error("listImages() of a missing directory should fail")
	}
}
