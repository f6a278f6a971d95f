package cipher

import "fmt"

// Permutation is an invertible reordering of text positions. Forward maps
// output index i to source index fwd[i], so Apply(text)[i] = text[fwd[i]].
type Permutation struct {
	fwd []int
	inv []int
}

// NewPermutation builds a permutation from an order list. Entries pointing
// past n are dropped first, matching route generators that pad to a full
// grid; the surviving list must then be a bijection on [0,n).
func NewPermutation(order []int, n int) (*Permutation, error) {
	fwd := make([]int, 0, n)
	for _, idx := range order {
		if idx < n {
			fwd = append(fwd, idx)
		}
	}
	if len(fwd) != n {
		return nil, fmt.Errorf("permutation covers %d of %d positions", len(fwd), n)
	}
	inv := make([]int, n)
	for i := range inv {
		inv[i] = -1
	}
	for i, src := range fwd {
		if src < 0 {
			return nil, fmt.Errorf("permutation entry %d is negative", i)
		}
		if inv[src] != -1 {
			return nil, fmt.Errorf("permutation maps position %d twice", src)
		}
		inv[src] = i
	}
	return &Permutation{fwd: fwd, inv: inv}, nil
}

// IdentityPermutation returns the identity on [0,n).
func IdentityPermutation(n int) *Permutation {
	fwd := make([]int, n)
	inv := make([]int, n)
	for i := range fwd {
		fwd[i] = i
		inv[i] = i
	}
	return &Permutation{fwd: fwd, inv: inv}
}

// Len returns the number of positions the permutation covers.
func (p *Permutation) Len() int { return len(p.fwd) }

// Apply reorders text so that output position i holds text[fwd[i]].
func (p *Permutation) Apply(text string) (string, error) {
	if len(text) != len(p.fwd) {
		return "", fmt.Errorf("text length %d does not match permutation length %d", len(text), len(p.fwd))
	}
	out := make([]byte, len(text))
	for i, src := range p.fwd {
		out[i] = text[src]
	}
	return string(out), nil
}

// Inverse returns the permutation that undoes p.
func (p *Permutation) Inverse() *Permutation {
	return &Permutation{fwd: p.inv, inv: p.fwd}
}
