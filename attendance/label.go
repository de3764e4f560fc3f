package attendance

import (
	"path/filepath"
	"strings"
)

// LabelOf returns the file name up to the first dot, e.g. "photos/ali.1.jpg" -> "ali".
// Several photos of the same person can be enrolled as name.1.jpg, name.2.jpg...
func LabelOf(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return base
}
