package faces

import "sort"

// byWidth returns the indexes of faces, widest first. Equal widths keep the detection order
func byWidth(faces []Face) []int {
	idx := make([]int, len(faces))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return faces[idx[i]].Width() > faces[idx[j]].Width()
	})
	return idx
}

// Widest returns the face with the widest bounding box, the one closest to the camera
func Widest(faces []Face) (Face, bool) {
	if len(faces) == 0 {
		return Face{}, false
	}
	return faces[byWidth(faces)[0]], true
}

// PickPair assumes the widest face is the person and the second widest is the photo on their ID card.
// Nothing validates these roles: a third face of similar size changes the pair.
func PickPair(faces []Face) (user, card Face, ok bool) {
	if len(faces) < 2 {
		return
	}
	idx := byWidth(faces)
	return faces[idx[0]], faces[idx[1]], true
}
