package faces

import (
	"sync"

	"github.com/Kagami/go-face"
)

// Gallery is the in-memory index of enrolled faces used for 1:N lookup
type Gallery struct {
	Metric    Metric
	Threshold float64

	samples []Sample
	index   index
	lock    sync.RWMutex
}

// NewGallery creates an empty gallery searched through a HNSW graph.
// A threshold <= 0 means the metric's default
func NewGallery(metric Metric, threshold float64) *Gallery {
	return NewGalleryWith(metric, threshold, nil)
}

// NewGalleryWith uses the dlib classifier for the euclidean metric when it is not nil
func NewGalleryWith(metric Metric, threshold float64, classifier Classifier) *Gallery {
	if threshold <= 0 {
		threshold = metric.DefaultThreshold()
	}
	g := &Gallery{Metric: metric, Threshold: threshold}
	if classifier != nil && metric == MetricEuclidean {
		g.index = &classifierIndex{classifier: classifier}
	} else {
		g.index = newHNSWIndex(metric)
	}
	return g
}

// Set replaces all the samples
func (g *Gallery) Set(samples []Sample) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.samples = append([]Sample(nil), samples...)
	g.index.set(g.samples)
}

func (g *Gallery) Add(sample Sample) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.samples = append(g.samples, sample)
	g.index.add(g.samples)
}

// Remove drops all samples of label and returns how many were removed
func (g *Gallery) Remove(label string) int {
	g.lock.Lock()
	defer g.lock.Unlock()
	kept := make([]Sample, 0, len(g.samples))
	for _, s := range g.samples {
		if s.Label != label {
			kept = append(kept, s)
		}
	}
	removed := len(g.samples) - len(kept)
	if removed > 0 {
		g.samples = kept
		g.index.set(g.samples)
	}
	return removed
}

func (g *Gallery) Len() int {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return len(g.samples)
}

// Find returns the nearest sample within the threshold.
// Distances of the index candidates are recomputed with the gallery's metric
func (g *Gallery) Find(descriptor face.Descriptor) (match Match, found bool) {
	g.lock.RLock()
	defer g.lock.RUnlock()
	for _, pos := range g.index.candidates(descriptor, g.Threshold) {
		if pos < 0 || pos >= len(g.samples) {
			continue
		}
		s := g.samples[pos]
		distance := g.Metric.Distance(descriptor, s.Descriptor)
		if distance > g.Threshold {
			continue
		}
		if !found || distance < match.Distance {
			match = Match{Sample: s, Distance: distance}
			found = true
		}
	}
	return
}
