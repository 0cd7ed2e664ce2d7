// Package ints implements a growable set of small non-negative integers.
package ints

import "math/bits"

const chunkShift = 6
const chunkSize = 1 << chunkShift

// Set is a bit set. Zero value is an empty set ready to use.
type Set struct {
	chunks []uint64
}

func NewSet(items ...int) *Set {
	result := &Set{}
	result.Add(items...)
	return result
}

func (s *Set) grow(item int) {
	need := (item >> chunkShift) + 1
	if need > len(s.chunks) {
		chunks := make([]uint64, need)
		copy(chunks, s.chunks)
		s.chunks = chunks
	}
}

// Add adds items to the set. Negative items are not allowed.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			panic("ints.Set: negative item")
		}
		s.grow(item)
		s.chunks[item>>chunkShift] |= 1 << (uint(item) & (chunkSize - 1))
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 || item>>chunkShift >= len(s.chunks) {
		return false
	}
	return s.chunks[item>>chunkShift]&(1<<(uint(item)&(chunkSize-1))) != 0
}

func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount64(chunk)
	}
	return result
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

// Merge adds all items of t to s and reports whether s has grown.
func (s *Set) Merge(t *Set) bool {
	if t == nil {
		return false
	}
	if len(t.chunks) > len(s.chunks) {
		s.grow((len(t.chunks) << chunkShift) - 1)
	}
	grown := false
	for i, chunk := range t.chunks {
		merged := s.chunks[i] | chunk
		if merged != s.chunks[i] {
			s.chunks[i] = merged
			grown = true
		}
	}
	return grown
}

func (s *Set) Copy() *Set {
	chunks := make([]uint64, len(s.chunks))
	copy(chunks, s.chunks)
	return &Set{chunks}
}

// ToSlice returns set items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros64(chunk)
			result = append(result, i<<chunkShift+bit)
			chunk &= chunk - 1
		}
	}
	return result
}
