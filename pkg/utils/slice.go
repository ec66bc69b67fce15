package utils

func SliceContains[T comparable](slice []T, v T) bool {
	for i := range slice {
		if slice[i] == v {
			return true
		}
	}
	return false
}

// SliceOverlap reports whether the two slices share at least one element.
func SliceOverlap[T comparable](a, b []T) bool {
	for i := range a {
		if SliceContains(b, a[i]) {
			return true
		}
	}
	return false
}

func MustSliceConvert[S, D any](src []S, convert func(S) D) []D {
	dst := make([]D, 0, len(src))
	for i := range src {
		dst = append(dst, convert(src[i]))
	}
	return dst
}
