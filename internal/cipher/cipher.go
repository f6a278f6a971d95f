// Package cipher holds the K4 ciphertext, the confirmed plaintext islands,
// the zero-shift anchors, and the pure decrypt/encrypt primitives.
//
// All position references are 1-based to match the community literature;
// code converts to 0-based indexes at the boundary.
package cipher

import "fmt"

// Length is the fixed K4 ciphertext length.
const Length = 97

// K4 is the standard 97-character ciphertext from the fourth Kryptos panel.
const K4 = "OBKRUOXOGHULBSOLIFBBWFLRVQQPRNGKSSOTWTQSJQSSEKZZWATJKLUDIAWINFBNYP" +
	"VTTMZFPKWGDKZXTJCDIGKUHUAUEKCAR"

// Island is a plaintext fragment known to occur at a fixed 1-based position.
type Island struct {
	Start int    // 1-based absolute position of the first letter
	Text  string // literal plaintext, uppercase A-Z
}

// End returns the 1-based position of the island's last letter.
func (is Island) End() int { return is.Start + len(is.Text) - 1 }

// Islands are the four confirmed plaintext fragments, per public clues.
var Islands = []Island{
	{Start: 22, Text: "EAST"},
	{Start: 26, Text: "NORTHEAST"},
	{Start: 64, Text: "BERLIN"},
	{Start: 70, Text: "CLOCK"},
}

// Anchors are the 1-based positions forced to zero shift (keystream letter A).
var Anchors = []int{33, 74}

// ShapeError reports a ciphertext that is not 97 uppercase letters.
type ShapeError struct {
	Length int
	Pos    int  // 1-based position of the offending byte, 0 if length is wrong
	Byte   byte // offending byte when Pos > 0
}

func (e *ShapeError) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("ciphertext has non-alphabetic byte %q at position %d", e.Byte, e.Pos)
	}
	return fmt.Sprintf("ciphertext length is %d, want %d", e.Length, Length)
}

// Validate checks that text is exactly 97 uppercase A-Z letters.
func Validate(text string) error {
	if len(text) != Length {
		return &ShapeError{Length: len(text)}
	}
	for i := 0; i < len(text); i++ {
		if text[i] < 'A' || text[i] > 'Z' {
			return &ShapeError{Length: len(text), Pos: i + 1, Byte: text[i]}
		}
	}
	return nil
}

// Shift returns the 0-25 shift value of an uppercase letter (A=0).
func Shift(b byte) int { return int(b - 'A') }

// Letter returns the uppercase letter for a 0-25 shift value.
func Letter(s int) byte { return byte('A' + ((s%26)+26)%26) }

// KeyFor returns the keystream shift k such that p = c - k (mod 26).
func KeyFor(c, p byte) int { return ((Shift(c) - Shift(p)) % 26 + 26) % 26 }

// Residue maps a 1-based position to its keystream residue class for the
// given period and phase offset.
func Residue(pos, period, phase int) int {
	r := (pos - 1 + phase) % period
	if r < 0 {
		r += period
	}
	return r
}

// Decrypt applies a repeating keystream of per-residue shifts to text.
// If route is non-nil it is applied first, undoing a transposition layer.
// The keystream length is the period; phase rotates residue indexing.
func Decrypt(text string, keystream []int, phase int, route *Permutation) (string, error) {
	if err := Validate(text); err != nil {
		return "", err
	}
	if len(keystream) == 0 {
		return "", fmt.Errorf("empty keystream")
	}
	if route != nil {
		var err error
		text, err = route.Apply(text)
		if err != nil {
			return "", err
		}
	}
	out := make([]byte, len(text))
	period := len(keystream)
	for i := 0; i < len(text); i++ {
		k := keystream[Residue(i+1, period, phase)]
		out[i] = Letter(Shift(text[i]) - k)
	}
	return string(out), nil
}

// Encrypt is the inverse of Decrypt: it adds the keystream shifts back and,
// if route is non-nil, reapplies the transposition by undoing the route.
func Encrypt(plain string, keystream []int, phase int, route *Permutation) (string, error) {
	if err := Validate(plain); err != nil {
		return "", err
	}
	if len(keystream) == 0 {
		return "", fmt.Errorf("empty keystream")
	}
	out := make([]byte, len(plain))
	period := len(keystream)
	for i := 0; i < len(plain); i++ {
		k := keystream[Residue(i+1, period, phase)]
		out[i] = Letter(Shift(plain[i]) + k)
	}
	if route != nil {
		return route.Inverse().Apply(string(out))
	}
	return string(out), nil
}

// CheckIslands reports whether every island's literal text appears at its
// fixed absolute position in plain.
func CheckIslands(plain string, islands []Island) bool {
	for _, is := range islands {
		lo := is.Start - 1
		hi := lo + len(is.Text)
		if lo < 0 || hi > len(plain) || plain[lo:hi] != is.Text {
			return false
		}
	}
	return true
}

// KeystreamString renders a shift sequence as keystream letters.
func KeystreamString(keystream []int) string {
	out := make([]byte, len(keystream))
	for i, k := range keystream {
		out[i] = Letter(k)
	}
	return string(out)
}
