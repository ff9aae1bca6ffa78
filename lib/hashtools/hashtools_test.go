package hashtools

import (
	"io"
	"strings"
	"testing"
)

type zeroreader struct {
	n int64
}

var zbuf [65536]byte

func (r *zeroreader) Read(b []byte) (n int, e error) {
	if r.n == 0 {
		return 0, io.EOF
	}
	if int64(len(b)) > r.n {
		b = b[:r.n]
	}
	n = copy(b, zbuf[:])
	r.n -= int64(n)
	return
}

const sizeSmol = 16 << 10

func TestHashTypes(t *testing.T) {
	seen := make(map[string]HashType)
	for ht := SHA2_224; ht <= BLAKE3_224; ht++ {
		h := NewHasher(ht)
		a, err := h.Sum(&zeroreader{sizeSmol})
		if err != nil {
			t.Fatalf("%v Sum err: %v", ht, err)
		}
		b, err := h.Sum(&zeroreader{sizeSmol})
		if err != nil {
			t.Fatalf("%v Sum err: %v", ht, err)
		}
		if a != b {
			t.Errorf("%v not deterministic: %q vs %q", ht, a, b)
		}
		if !strings.HasPrefix(a, ht.String()+"-") {
			t.Errorf("%v missing prefix: %q", ht, a)
		}
		// 28 bytes in unpadded base32
		if exp := len(ht.String()) + 1 + 45; len(a) != exp {
			t.Errorf("%v length exp %d got %d", ht, exp, len(a))
		}
		if prev, ok := seen[a]; ok {
			t.Errorf("%v collides with %v", ht, prev)
		}
		seen[a] = ht

		c, _ := h.Sum(strings.NewReader("x"))
		if c == a {
			t.Errorf("%v different inputs same hash", ht)
		}
	}
}

func TestParseHashType(t *testing.T) {
	for ht := SHA2_224; ht <= BLAKE3_224; ht++ {
		got, err := ParseHashType(ht.String())
		if err != nil || got != ht {
			t.Errorf("ParseHashType(%q) exp %v got %v err %v", ht.String(), ht, got, err)
		}
	}
	if got, err := ParseHashType("auto"); err != nil || got != AutoHashType() {
		t.Errorf("auto exp %v got %v err %v", AutoHashType(), got, err)
	}
	if _, err := ParseHashType("md5"); err == nil {
		t.Errorf("expected error")
	}
}

func BenchmarkHashAuto(b *testing.B) {
	h := NewHasher(0)
	for i := 0; i < b.N; i++ {
		_, _ = h.Sum(&zeroreader{sizeSmol})
	}
}
