package export

import "iter"

// Deletable is implemented by every snapshot entity.
type Deletable interface {
	IsDeleted() bool
}

// Live yields the records that are not deleted, in their original order.
func Live[T Deletable](records []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, r := range records {
			if r.IsDeleted() {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}
