package faces

import (
	"github.com/Kagami/go-face"
	"github.com/coder/hnsw"
)

// HNSW parameters for 128-dim descriptors
const (
	hnswMaxNeighbors = 16
	hnswEfSearch     = 100
	hnswCandidates   = 8
)

// Classifier is implemented by *face.Recognizer (dlib's own sample index)
type Classifier interface {
	SetSamples(samples []face.Descriptor, cats []int32)
	ClassifyThreshold(testSample face.Descriptor, tolerance float32) int
}

// index returns the positions of the samples that may be the nearest to a query.
// Callers hold the gallery lock
type index interface {
	set(samples []Sample)
	add(samples []Sample) // The new sample is the last one
	candidates(descriptor face.Descriptor, threshold float64) []int
}

// classifierIndex uses the recognizer's samples, categories are sample positions
type classifierIndex struct {
	classifier Classifier
}

func (c *classifierIndex) set(samples []Sample) {
	descriptors := make([]face.Descriptor, 0, len(samples))
	cats := make([]int32, 0, len(samples))
	for i, s := range samples {
		descriptors = append(descriptors, s.Descriptor)
		cats = append(cats, int32(i))
	}
	c.classifier.SetSamples(descriptors, cats)
}

// add resets all the samples, the recognizer has no incremental API
func (c *classifierIndex) add(samples []Sample) {
	c.set(samples)
}

func (c *classifierIndex) candidates(descriptor face.Descriptor, threshold float64) []int {
	cat := c.classifier.ClassifyThreshold(descriptor, float32(threshold))
	if cat < 0 {
		return nil
	}
	return []int{cat}
}

// hnswIndex is an approximate nearest neighbour graph, keyed by sample position
type hnswIndex struct {
	metric Metric
	graph  *hnsw.Graph[int]
}

func newHNSWIndex(metric Metric) *hnswIndex {
	return &hnswIndex{metric: metric}
}

func (h *hnswIndex) vector(d face.Descriptor) []float32 {
	if h.metric == MetricEuclideanL2 {
		d = l2Normalize(d)
	}
	v := make([]float32, DescriptorSize)
	copy(v, d[:])
	return v
}

func (h *hnswIndex) set(samples []Sample) {
	if len(samples) == 0 {
		h.graph = nil
		return
	}
	g := hnsw.NewGraph[int]()
	g.M = hnswMaxNeighbors
	g.Ml = 1.0 / float64(hnswMaxNeighbors)
	g.EfSearch = hnswEfSearch
	g.Distance = hnsw.EuclideanDistance
	if h.metric == MetricCosine {
		g.Distance = hnsw.CosineDistance
	}
	for i, s := range samples {
		g.Add(hnsw.MakeNode(i, h.vector(s.Descriptor)))
	}
	h.graph = g
}

func (h *hnswIndex) add(samples []Sample) {
	if h.graph == nil {
		h.set(samples)
		return
	}
	pos := len(samples) - 1
	h.graph.Add(hnsw.MakeNode(pos, h.vector(samples[pos].Descriptor)))
}

func (h *hnswIndex) candidates(descriptor face.Descriptor, threshold float64) []int {
	if h.graph == nil {
		return nil
	}
	nodes := h.graph.Search(h.vector(descriptor), hnswCandidates)
	result := make([]int, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, n.Key)
	}
	return result
}
