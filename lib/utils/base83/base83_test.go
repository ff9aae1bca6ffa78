package base83

import (
	"testing"
)

func pow83(n int) int {
	x := 1
	for ; n > 0; n-- {
		x *= Base
	}
	return x
}

func TestAlphabet(t *testing.T) {
	if Base != 83 {
		t.Fatalf("alphabet size expected 83 got %d", Base)
	}
	seen := make(map[byte]bool)
	for i := 0; i < len(Alphabet); i++ {
		if seen[Alphabet[i]] {
			t.Errorf("duplicate digit %q", Alphabet[i])
		}
		seen[Alphabet[i]] = true
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 1; n <= 9; n++ {
		max := pow83(n)
		step := max/997 + 1
		for v := 0; v < max; v += step {
			s := EncodeInt(v, n)
			if len(s) != n {
				t.Fatalf("EncodeInt(%d, %d) length expected %d got %d", v, n, n, len(s))
			}
			got, err := DecodeInt(s)
			if err != nil {
				t.Fatalf("DecodeInt(%q) err: %v", s, err)
			}
			if got != v {
				t.Errorf("n=%d exp %d got %d (%q)", n, v, got, s)
			}
		}
		// boundary
		s := EncodeInt(max-1, n)
		got, err := DecodeInt(s)
		if err != nil || got != max-1 {
			t.Errorf("n=%d boundary exp %d got %d err %v", n, max-1, got, err)
		}
	}
}

func TestKnownValues(t *testing.T) {
	cases := []struct {
		v, n int
		s    string
	}{
		{0, 1, "0"},
		{82, 1, "~"},
		{83, 2, "10"},
		{3429, 2, "fQ"},
		{0, 4, "0000"},
	}
	for _, c := range cases {
		if got := EncodeInt(c.v, c.n); got != c.s {
			t.Errorf("EncodeInt(%d, %d) exp %q got %q", c.v, c.n, c.s, got)
		}
	}
}

func TestInvalidDigit(t *testing.T) {
	for _, s := range []string{"`", "ab`", "\x00", "é", " 0"} {
		if _, err := DecodeInt(s); err != ErrInvalidDigit {
			t.Errorf("DecodeInt(%q) expected ErrInvalidDigit got %v", s, err)
		}
	}
	if v, err := DecodeInt(""); err != nil || v != 0 {
		t.Errorf("DecodeInt(\"\") expected 0, nil got %d, %v", v, err)
	}
}

func BenchmarkAppendInt(b *testing.B) {
	var buf [4]byte
	for i := 0; i < b.N; i++ {
		_ = AppendInt(buf[:0], i&0xFFFFFF, 4)
	}
}
