package executor

import "github.com/searchlab/wikisearch/internal/index"

// The three set operations assume both inputs are ascending and
// duplicate-free, which the builder guarantees for every posting list.
// Each result preserves that invariant.

// Intersect returns the ordered intersection of a and b.
func Intersect(a, b index.PostingList) index.PostingList {
	var out index.PostingList
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Union returns the ordered union of a and b.
func Union(a, b index.PostingList) index.PostingList {
	out := make(index.PostingList, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// Difference returns the ordered elements of a that are not in b.
func Difference(a, b index.PostingList) index.PostingList {
	var out index.PostingList
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return out
}
