package random

// WeightedList selects among entries in proportion to their weights.
// Entries with a weight <= 0 are never picked.
type WeightedList[T any] struct {
	entries []weightedEntry[T]
	total   int
}

type weightedEntry[T any] struct {
	value  T
	weight int
}

// NewWeightedList creates an empty list.
func NewWeightedList[T any]() *WeightedList[T] {
	return &WeightedList[T]{}
}

// Add appends an entry.
func (w *WeightedList[T]) Add(value T, weight int) {
	if weight < 0 {
		weight = 0
	}
	w.entries = append(w.entries, weightedEntry[T]{value: value, weight: weight})
	w.total += weight
}

// Len returns the number of entries, including zero weight ones.
func (w *WeightedList[T]) Len() int {
	return len(w.entries)
}

// TotalWeight returns the sum of all weights.
func (w *WeightedList[T]) TotalWeight() int {
	return w.total
}

// Pick returns a weighted random entry. ok is false when the total weight is zero.
func (w *WeightedList[T]) Pick(r *Random) (value T, ok bool) {
	if w.total <= 0 {
		return value, false
	}
	roll := r.Intn(w.total)
	for _, e := range w.entries {
		if roll < e.weight {
			return e.value, true
		}
		roll -= e.weight
	}
	// unreachable while total matches the entries
	panic("random: weighted list total out of sync")
}

// Each calls fn for every entry in insertion order.
func (w *WeightedList[T]) Each(fn func(value T, weight int)) {
	for _, e := range w.entries {
		fn(e.value, e.weight)
	}
}
