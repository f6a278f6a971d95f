package search

import (
	"fmt"
	"sort"
	"strings"

	"k4sweep/internal/cipher"
)

// FillString renders the free-residue assignment as "r3=E, r10=T, r24=Q",
// residues ascending. Empty when the model had no free residues.
func (c Candidate) FillString() string {
	residues := make([]int, 0, len(c.Fill))
	for r := range c.Fill {
		residues = append(residues, r)
	}
	sort.Ints(residues)
	parts := make([]string, len(residues))
	for i, r := range residues {
		parts[i] = fmt.Sprintf("r%d=%c", r, cipher.Letter(c.Fill[r]))
	}
	return strings.Join(parts, ", ")
}
