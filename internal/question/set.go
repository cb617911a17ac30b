package question

// Set holds distinct questions keyed by Hash and resolved by Equal, so it
// works for answer types Go maps cannot key on (slices, maps, funcs).
type Set[T any] struct {
	buckets map[uint64][]Question[T]
	order   []Question[T]
}

func NewSet[T any](items ...Question[T]) *Set[T] {
	s := &Set[T]{buckets: make(map[uint64][]Question[T])}
	for _, q := range items {
		s.Add(q)
	}
	return s
}

// Add inserts q unless an equal question is present. It reports whether q was added.
func (s *Set[T]) Add(q Question[T]) bool {
	h := q.Hash()
	for _, existing := range s.buckets[h] {
		if existing.Equal(q) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], q)
	s.order = append(s.order, q)
	return true
}

func (s *Set[T]) Contains(q Question[T]) bool {
	for _, existing := range s.buckets[q.Hash()] {
		if existing.Equal(q) {
			return true
		}
	}
	return false
}

// Remove deletes the question equal to q and reports whether one was found.
func (s *Set[T]) Remove(q Question[T]) bool {
	h := q.Hash()
	bucket := s.buckets[h]
	for i, existing := range bucket {
		if !existing.Equal(q) {
			continue
		}
		bucket = append(bucket[:i], bucket[i+1:]...)
		if len(bucket) == 0 {
			delete(s.buckets, h)
		} else {
			s.buckets[h] = bucket
		}
		for j, item := range s.order {
			if item.Equal(q) {
				s.order = append(s.order[:j], s.order[j+1:]...)
				break
			}
		}
		return true
	}
	return false
}

func (s *Set[T]) Len() int { return len(s.order) }

// Items returns the questions in insertion order.
func (s *Set[T]) Items() []Question[T] {
	out := make([]Question[T], len(s.order))
	copy(out, s.order)
	return out
}
