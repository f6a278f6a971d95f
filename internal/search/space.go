// Package search enumerates complete keystreams over the free residues,
// scores every decryption, and keeps the exact top N.
package search

import (
	"fmt"

	"k4sweep/internal/cipher"
	"k4sweep/internal/constrain"
)

// Space is the addressable enumeration of keystream fills. Candidate i is
// the base-len(letters) digit expansion of i assigned to the free residues
// in ascending residue order, first residue most significant. This keeps
// the order deterministic and lets workers partition by index range.
type Space struct {
	base    []int // locked shifts, -1 at free residues
	free    []int
	letters []int // allowed shift values for free residues
	size    int64
}

// NewSpace builds the enumeration for resolved constraints. letters is the
// fill alphabet ("A".."Z" by default); a smaller set shrinks the space to
// len(letters)^k.
func NewSpace(c *constrain.Constraints, letters string) (*Space, error) {
	if letters == "" {
		letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	}
	shifts := make([]int, 0, len(letters))
	seen := make(map[byte]bool)
	for i := 0; i < len(letters); i++ {
		b := letters[i]
		if b < 'A' || b > 'Z' {
			return nil, fmt.Errorf("fill alphabet contains non-letter %q", b)
		}
		if seen[b] {
			return nil, fmt.Errorf("fill alphabet repeats %q", b)
		}
		seen[b] = true
		shifts = append(shifts, cipher.Shift(b))
	}

	base := make([]int, c.Period)
	for i := range base {
		base[i] = -1
	}
	for r, k := range c.Locked {
		base[r] = k
	}

	size := int64(1)
	for range c.Free {
		size *= int64(len(shifts))
	}

	return &Space{base: base, free: append([]int(nil), c.Free...), letters: shifts, size: size}, nil
}

// Size returns the total number of candidates, len(letters)^k.
func (s *Space) Size() int64 { return s.size }

// Free returns the free residues in enumeration order.
func (s *Space) Free() []int { return s.free }

// At decodes candidate index idx into a complete keystream and the fill it
// assigned to each free residue.
func (s *Space) At(idx int64) ([]int, map[int]int) {
	ks := append([]int(nil), s.base...)
	fill := make(map[int]int, len(s.free))
	n := int64(len(s.letters))
	for j := len(s.free) - 1; j >= 0; j-- {
		r := s.free[j]
		k := s.letters[idx%n]
		idx /= n
		ks[r] = k
		fill[r] = k
	}
	return ks, fill
}
