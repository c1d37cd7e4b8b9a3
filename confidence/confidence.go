// Package confidence implements Confidence<T> and ConfidenceStack<T>:
// an insertion-ordered multiset keyed by a subject, with aggregated
// integer scores and derived percentages.
package confidence

import (
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Confidence is one subject's percentage share of a stack's total
// score.
type Confidence[T any] struct {
	Subject T
	Value   float64 // 0..100
}

// Stack is an ordered multiset: Push adds (or accumulates) an integer
// score for a subject; Enumerate lists subjects by descending score,
// ties broken by insertion order. Not safe for concurrent use —
// intended for single-owner construction, per spec §4.7.
type Stack[T comparable] struct {
	order  *linkedhashmap.Map // T -> insertion index, preserves insertion order
	scores map[T]int
	next   int
}

// NewStack returns an empty Stack.
func NewStack[T comparable]() *Stack[T] {
	return &Stack[T]{
		order:  linkedhashmap.New(),
		scores: make(map[T]int),
	}
}

// Push inserts subject with delta if absent, or adds delta to its
// existing score otherwise. delta defaults to 1 when omitted. This is
// the corrected semantics noted in spec §9 — the source's double-count
// on first insert is not reproduced here.
func (s *Stack[T]) Push(subject T, delta ...int) {
	d := 1
	if len(delta) > 0 {
		d = delta[0]
	}
	if _, exists := s.scores[subject]; !exists {
		s.order.Put(subject, s.next)
		s.next++
		s.scores[subject] = d
		return
	}
	s.scores[subject] += d
}

// Pop removes and returns the highest-scored entry. ok is false when
// the stack is empty.
func (s *Stack[T]) Pop() (Confidence[T], bool) {
	entries := s.Enumerate()
	if len(entries) == 0 {
		return Confidence[T]{}, false
	}
	top := entries[0]
	s.order.Remove(top.Subject)
	delete(s.scores, top.Subject)
	return top, true
}

// Len reports the number of distinct subjects currently tracked.
func (s *Stack[T]) Len() int {
	return len(s.scores)
}

// TotalScore sums every subject's raw score.
func (s *Stack[T]) TotalScore() int {
	total := 0
	for _, v := range s.scores {
		total += v
	}
	return total
}

// Enumerate lists every subject ordered by descending score with
// insertion order as a stable tiebreak, each carrying its percentage
// share of the total (0 when the stack is empty).
func (s *Stack[T]) Enumerate() []Confidence[T] {
	type entry struct {
		subject T
		index   int
		score   int
	}

	keys := s.order.Keys()
	entries := make([]entry, 0, len(keys))
	for _, k := range keys {
		subject := k.(T)
		idx, _ := s.order.Get(subject)
		entries = append(entries, entry{subject: subject, index: idx.(int), score: s.scores[subject]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].index < entries[j].index
	})

	total := s.TotalScore()
	out := make([]Confidence[T], 0, len(entries))
	for _, e := range entries {
		value := 0.0
		if total > 0 {
			value = 100 * float64(e.score) / float64(total)
		}
		out = append(out, Confidence[T]{Subject: e.subject, Value: value})
	}
	return out
}
