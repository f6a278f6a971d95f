// Package route generates reversible transposition routes and reruns the
// keystream analysis on the rerouted ciphertext. Routes are expressed as
// index permutations so they compose with the decryptor and are testable
// for invertibility.
package route

import (
	"fmt"
	"sort"

	"k4sweep/internal/cipher"
)

// Route is one transposition hypothesis.
type Route struct {
	Kind   string // "columnar" or "keyed_columnar"
	Params string // human-readable parameters, e.g. "7x14" or "key=KRYPTOS, grid=7x14"
	Order  []int  // output position i reads source position Order[i]
}

// Permutation builds the invertible permutation for a 97-letter text.
// Grid routes may address a padded grid; entries past the text are dropped.
func (r Route) Permutation() (*cipher.Permutation, error) {
	p, err := cipher.NewPermutation(r.Order, cipher.Length)
	if err != nil {
		return nil, fmt.Errorf("route %s (%s): %w", r.Kind, r.Params, err)
	}
	return p, nil
}

// Columnar writes the text into a height-by-width grid row by row and
// reads it out column by column.
func Columnar(width, height int) Route {
	var order []int
	for c := 0; c < width; c++ {
		for r := 0; r < height; r++ {
			order = append(order, r*width+c)
		}
	}
	return Route{Kind: "columnar", Params: fmt.Sprintf("%dx%d", width, height), Order: order}
}

// KeyOrder returns the column reading order for a keyword: columns are
// visited by ascending alphabetical rank of their key letter, earlier
// columns first on repeats. "ZEBRAS" yields [4 2 1 3 5 0]: the A column
// first, the Z column last.
func KeyOrder(keyword string) []int {
	unique := map[byte]bool{}
	for i := 0; i < len(keyword); i++ {
		unique[keyword[i]] = true
	}
	letters := make([]byte, 0, len(unique))
	for b := range unique {
		letters = append(letters, b)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	rank := map[byte]int{}
	for i, b := range letters {
		rank[b] = i
	}

	numeric := make([]int, len(keyword))
	for i := 0; i < len(keyword); i++ {
		numeric[i] = rank[keyword[i]]
	}

	order := make([]int, 0, len(keyword))
	for range keyword {
		minVal, minIdx := len(keyword)+1, -1
		for j, v := range numeric {
			if v < minVal {
				minVal, minIdx = v, j
			}
		}
		order = append(order, minIdx)
		numeric[minIdx] = len(keyword) + 1
	}
	return order
}

// KeyedColumnar reads the grid's columns in keyword order. The keyword
// length must equal the grid width.
func KeyedColumnar(width, height int, keyword string) (Route, error) {
	if len(keyword) != width {
		return Route{}, fmt.Errorf("keyword %q has length %d, grid width is %d", keyword, len(keyword), width)
	}
	var order []int
	for _, c := range KeyOrder(keyword) {
		for r := 0; r < height; r++ {
			order = append(order, r*width+c)
		}
	}
	return Route{
		Kind:   "keyed_columnar",
		Params: fmt.Sprintf("key=%s, grid=%dx%d", keyword, width, height),
		Order:  order,
	}, nil
}

// GridSizes returns every (width, height) factor pair of the given totals,
// deduplicated and sorted, excluding degenerate single-row/column grids.
func GridSizes(totals ...int) [][2]int {
	seen := map[[2]int]bool{}
	var out [][2]int
	for _, n := range totals {
		for w := 2; w <= n/2; w++ {
			if n%w != 0 {
				continue
			}
			h := n / w
			if h < 2 {
				continue
			}
			pair := [2]int{w, h}
			if !seen[pair] {
				seen[pair] = true
				out = append(out, pair)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// DefaultKeywords are the keyed-columnar keywords worth trying first,
// drawn from the sculpture's own vocabulary.
var DefaultKeywords = []string{"KRYPTOS", "PALIMPSEST", "BERLIN", "CLOCK", "NORTHEAST", "EAST", "SECRET"}
