package attendance

import "testing"

func TestLabelOf(t *testing.T) {
	tests := map[string]string{
		"ali.jpg":          "ali",
		"ali.1.jpg":        "ali",
		"dir/mei.png":      "mei",
		`C:\photos\ah.jpg`: "ah",
		"noext":            "noext",
	}
	for in, want := range tests {
		if got := LabelOf(in); got != want {
			t.Errorf("LabelOf(%q) = %q, want %q", in, got, want)
		}
	}
}
