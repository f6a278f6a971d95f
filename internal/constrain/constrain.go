// Package constrain derives per-residue keystream constraints from the
// plaintext islands and the zero-shift anchors.
package constrain

import (
	"fmt"
	"sort"

	"k4sweep/internal/cipher"
)

// Params selects the cipher model for one derivation.
type Params struct {
	Period         int
	Phase          int
	Islands        []cipher.Island
	Anchors        []int // 1-based positions forced to shift 0
	EnforceAnchors bool
	FreeCeiling    int // max free residues before the search is refused; 0 = no limit
}

// Constraints is the resolved residue map for one (period, phase) model.
type Constraints struct {
	Period int
	Phase  int
	Locked map[int]int // residue -> required shift
	Free   []int       // residues left unconstrained, ascending
}

// ConflictError reports a residue forced to two different shifts.
// The model is infeasible for that configuration; callers must skip it.
type ConflictError struct {
	Residue int
	Have    int    // shift already locked
	Want    int    // contradictory shift
	Source  string // which constraint source found the contradiction
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("residue %d locked to shift %d (%c) but %s requires %d (%c)",
		e.Residue, e.Have, cipher.Letter(e.Have), e.Source, e.Want, cipher.Letter(e.Want))
}

// GeometryError reports a period/island/anchor combination that does not fit
// the 97-letter ciphertext at all.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string { return "invalid model geometry: " + e.Reason }

// SpaceError reports a free-residue count above the configured ceiling.
// The enumeration would be 26^Free candidates; the caller decides whether
// to proceed with a raised ceiling.
type SpaceError struct {
	Free    int
	Ceiling int
}

func (e *SpaceError) Error() string {
	return fmt.Sprintf("%d free residues exceed ceiling %d (26^%d candidates)", e.Free, e.Ceiling, e.Free)
}

// Derive computes the locked/free residue split for the given model.
// Island letters lock residue shifts via k = c - p (mod 26); anchors lock
// their residues to shift 0. Any disagreement is a ConflictError.
func Derive(text string, p Params) (*Constraints, error) {
	if err := cipher.Validate(text); err != nil {
		return nil, err
	}
	if err := checkGeometry(p); err != nil {
		return nil, err
	}

	locked := make(map[int]int)
	for _, is := range p.Islands {
		for off := 0; off < len(is.Text); off++ {
			pos := is.Start + off
			want := cipher.KeyFor(text[pos-1], is.Text[off])
			r := cipher.Residue(pos, p.Period, p.Phase)
			if have, ok := locked[r]; ok && have != want {
				return nil, &ConflictError{
					Residue: r, Have: have, Want: want,
					Source: fmt.Sprintf("island %s position %d", is.Text, pos),
				}
			}
			locked[r] = want
		}
	}

	if p.EnforceAnchors {
		for _, pos := range p.Anchors {
			r := cipher.Residue(pos, p.Period, p.Phase)
			if have, ok := locked[r]; ok && have != 0 {
				return nil, &ConflictError{
					Residue: r, Have: have, Want: 0,
					Source: fmt.Sprintf("anchor position %d", pos),
				}
			}
			locked[r] = 0
		}
	}

	var free []int
	for r := 0; r < p.Period; r++ {
		if _, ok := locked[r]; !ok {
			free = append(free, r)
		}
	}
	sort.Ints(free)

	if p.FreeCeiling > 0 && len(free) > p.FreeCeiling {
		return nil, &SpaceError{Free: len(free), Ceiling: p.FreeCeiling}
	}

	return &Constraints{Period: p.Period, Phase: p.Phase, Locked: locked, Free: free}, nil
}

func checkGeometry(p Params) error {
	if p.Period < 2 {
		return &GeometryError{Reason: fmt.Sprintf("period %d is below 2", p.Period)}
	}
	for _, is := range p.Islands {
		if is.Start < 1 || is.End() > cipher.Length {
			return &GeometryError{Reason: fmt.Sprintf("island %s spans %d-%d outside 1-%d",
				is.Text, is.Start, is.End(), cipher.Length)}
		}
	}
	for i, a := range p.Islands {
		for _, b := range p.Islands[i+1:] {
			if a.Start <= b.End() && b.Start <= a.End() {
				return &GeometryError{Reason: fmt.Sprintf("islands %s and %s overlap", a.Text, b.Text)}
			}
		}
	}
	for _, pos := range p.Anchors {
		if pos < 1 || pos > cipher.Length {
			return &GeometryError{Reason: fmt.Sprintf("anchor position %d outside 1-%d", pos, cipher.Length)}
		}
	}
	return nil
}
