package attendance

import "fmt"

// Response texts
const (
	NotEnoughFaces = "Not enough face detected"
	DifferentUser  = "Different user holding IC"
	ICNotDetected  = "IC not detected"
	Unknown        = "Unknown"
	NoFace         = "No face detected"
)

func icFound(ic string) string {
	return "IC: " + ic
}

func userWithIC(name, ic string) string {
	if ic == "" {
		return fmt.Sprintf("User: %s, %s", name, ICNotDetected)
	}
	return fmt.Sprintf("User: %s, IC: %s", name, ic)
}

func enrolled(name string) string {
	return fmt.Sprintf("Image of %s uploaded successfully", name)
}

// Result is the outcome of a request. Message is what gets returned to the caller
type Result struct {
	Kind      string  `json:"kind,omitempty"`
	Name      string  `json:"name,omitempty"`
	ICNumber  string  `json:"ic_number,omitempty"`
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	FaceCount int     `json:"faces"`
	Message   string  `json:"results"`
}
