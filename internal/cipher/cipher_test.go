package cipher

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_K4(t *testing.T) {
	if err := Validate(K4); err != nil {
		t.Fatalf("Validate(K4): %v", err)
	}
}

func TestValidate_Shape(t *testing.T) {
	var shapeErr *ShapeError

	err := Validate(K4[:96])
	if !errors.As(err, &shapeErr) {
		t.Fatalf("want ShapeError for short text, got %v", err)
	}
	if shapeErr.Length != 96 {
		t.Errorf("Length = %d, want 96", shapeErr.Length)
	}

	bad := K4[:50] + "!" + K4[51:]
	err = Validate(bad)
	if !errors.As(err, &shapeErr) {
		t.Fatalf("want ShapeError for non-letter, got %v", err)
	}
	if shapeErr.Pos != 51 || shapeErr.Byte != '!' {
		t.Errorf("Pos=%d Byte=%q, want 51 %q", shapeErr.Pos, shapeErr.Byte, '!')
	}
}

func TestKeyFor(t *testing.T) {
	// p = c - k (mod 26), so k = c - p.
	cases := []struct {
		c, p byte
		want int
	}{
		{'A', 'A', 0},
		{'B', 'A', 1},
		{'A', 'B', 25},
		{'S', 'S', 0},
		{'N', 'B', 12},
	}
	for _, tc := range cases {
		if got := KeyFor(tc.c, tc.p); got != tc.want {
			t.Errorf("KeyFor(%c,%c) = %d, want %d", tc.c, tc.p, got, tc.want)
		}
	}
}

func TestResidue_PhaseWrap(t *testing.T) {
	if got := Residue(1, 27, 0); got != 0 {
		t.Errorf("Residue(1,27,0) = %d, want 0", got)
	}
	if got := Residue(28, 27, 0); got != 0 {
		t.Errorf("Residue(28,27,0) = %d, want 0", got)
	}
	if got := Residue(1, 27, -1); got != 26 {
		t.Errorf("Residue(1,27,-1) = %d, want 26", got)
	}
	if got := Residue(1, 27, 28); got != 1 {
		t.Errorf("Residue(1,27,28) = %d, want 1", got)
	}
}

func TestDecrypt_ZeroKeystreamIsIdentity(t *testing.T) {
	ks := make([]int, 27)
	plain, err := Decrypt(K4, ks, 0, nil)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if plain != K4 {
		t.Errorf("zero keystream changed the text")
	}
}

func TestDecryptEncrypt_RoundTrip(t *testing.T) {
	ks := make([]int, 27)
	for i := range ks {
		ks[i] = (i * 7) % 26
	}
	for _, phase := range []int{0, 1, -1, 14} {
		plain, err := Decrypt(K4, ks, phase, nil)
		if err != nil {
			t.Fatalf("Decrypt(phase=%d): %v", phase, err)
		}
		back, err := Encrypt(plain, ks, phase, nil)
		if err != nil {
			t.Fatalf("Encrypt(phase=%d): %v", phase, err)
		}
		if back != K4 {
			t.Errorf("round trip at phase %d did not reproduce the ciphertext", phase)
		}
	}
}

func TestDecryptEncrypt_RoundTripWithRoute(t *testing.T) {
	order := make([]int, Length)
	for i := range order {
		order[i] = (i*5 + 3) % Length // 5 and 97 are coprime, so this is a bijection
	}
	route, err := NewPermutation(order, Length)
	if err != nil {
		t.Fatalf("NewPermutation: %v", err)
	}
	ks := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4, 6, 2, 6, 4, 3, 3, 8}

	plain, err := Decrypt(K4, ks, 0, route)
	if err != nil {
		t.Fatalf("Decrypt with route: %v", err)
	}
	back, err := Encrypt(plain, ks, 0, route)
	if err != nil {
		t.Fatalf("Encrypt with route: %v", err)
	}
	if back != K4 {
		t.Errorf("routed round trip did not reproduce the ciphertext")
	}
}

func TestCheckIslands(t *testing.T) {
	plain := strings.Repeat("X", Length)
	b := []byte(plain)
	for _, is := range Islands {
		copy(b[is.Start-1:], is.Text)
	}
	good := string(b)

	if !CheckIslands(good, Islands) {
		t.Errorf("intact islands reported broken")
	}

	b[Islands[3].Start-1] = 'Q' // break CLOCK
	if CheckIslands(string(b), Islands) {
		t.Errorf("broken island reported intact")
	}
}

func TestKeystreamString(t *testing.T) {
	if got := KeystreamString([]int{0, 1, 25}); got != "ABZ" {
		t.Errorf("KeystreamString = %q, want ABZ", got)
	}
}
