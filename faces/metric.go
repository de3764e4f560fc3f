package faces

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/Kagami/go-face"
	"gopkg.in/yaml.v3"
)

type Metric string

const (
	MetricCosine      Metric = "cosine"
	MetricEuclidean   Metric = "euclidean"
	MetricEuclideanL2 Metric = "euclidean_l2"
)

//go:embed thresholds.yaml
var thresholdsYAML []byte

var thresholds = struct {
	Metrics map[Metric]float64 `yaml:"metrics"`
}{}

func init() {
	if err := yaml.Unmarshal(thresholdsYAML, &thresholds); err != nil {
		panic("failed to unmarshal embedded thresholds.yaml: " + err.Error())
	}
}

func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := thresholds.Metrics[m]; !ok {
		return "", fmt.Errorf("metric %q: %w", s, ErrUnknownValue)
	}
	return m, nil
}

// DefaultThreshold returns the threshold of the metric, 0 if the metric is unknown
func (m Metric) DefaultThreshold() float64 {
	return thresholds.Metrics[m]
}

// Distance between two descriptors. Lower means more similar
func (m Metric) Distance(a, b face.Descriptor) float64 {
	switch m {
	case MetricCosine:
		return cosineDistance(a, b)
	case MetricEuclideanL2:
		return math.Sqrt(face.SquaredEuclideanDistance(l2Normalize(a), l2Normalize(b)))
	}
	return math.Sqrt(face.SquaredEuclideanDistance(a, b))
}

// cosineDistance returns a value between 0 (identical) and 2 (opposite)
func cosineDistance(a, b face.Descriptor) float64 {
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2.0
	}
	similarity := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
	// Clamp to [-1, 1] to handle floating point errors
	similarity = math.Max(-1, math.Min(1, similarity))
	return 1 - similarity
}

func l2Normalize(d face.Descriptor) (result face.Descriptor) {
	var norm float64
	for _, v := range d {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return d
	}
	norm = math.Sqrt(norm)
	for i, v := range d {
		result[i] = float32(float64(v) / norm)
	}
	return
}

// Verify compares two descriptors. A threshold <= 0 means the metric's default
func Verify(a, b face.Descriptor, metric Metric, threshold float64) Verification {
	if threshold <= 0 {
		threshold = metric.DefaultThreshold()
	}
	distance := metric.Distance(a, b)
	return Verification{
		Verified:  distance <= threshold,
		Distance:  distance,
		Threshold: threshold,
		Metric:    metric,
	}
}
