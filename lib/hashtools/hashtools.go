package hashtools

// content hashes used to recognize already processed files

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"hash"
	"io"
	"strings"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sys/cpu"
)

const HashLength = 28

type HashType byte

const (
	_ HashType = iota // 0 means auto

	SHA2_224    // wins if SHA2 instructions are available
	BLAKE2b_224 // fastest on most 64bit CPUs without dedicated crypto instructions
	BLAKE3_224  // fastest with AVX2 or on 32bit arm

	hashTypeMax = iota - 1
)

var hashNames = [hashTypeMax]string{"sha224", "b2b224", "b3224"}

func (t HashType) String() string {
	if t >= 1 && t <= hashTypeMax {
		return hashNames[t-1]
	}
	return fmt.Sprintf("HashType(%d)", byte(t))
}

// ParseHashType accepts "auto" (or empty) and names returned by String.
func ParseHashType(s string) (HashType, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return AutoHashType(), nil
	case "sha224", "sha2":
		return SHA2_224, nil
	case "b2b224", "blake2b":
		return BLAKE2b_224, nil
	case "b3224", "blake3":
		return BLAKE3_224, nil
	}
	return 0, fmt.Errorf("unknown hash type %q", s)
}

// AutoHashType picks hash likely fastest on this CPU.
func AutoHashType() HashType {
	// only ARM64 is guaranteed gain; golang sha256 on x86_64 may lack SHA-NI
	if cpu.ARM64.HasSHA2 {
		return SHA2_224
	}
	if cpu.X86.HasAVX2 {
		return BLAKE3_224
	}
	return BLAKE2b_224
}

var newHasher = [hashTypeMax]func() hash.Hash{
	sha256.New224,
	func() hash.Hash { x, _ := blake2b.New(HashLength, nil); return x },
	func() hash.Hash { return blake3.New() },
}

// like normal base32 just lowercase and without padding
var lowerBase32 = base32.
	NewEncoding("abcdefghijklmnopqrstuvwxyz234567").
	WithPadding(base32.NoPadding)

type hashCtx struct {
	h       hash.Hash
	copyBuf [32 * 1024]byte
	sumBuf  [32]byte
}

type Hasher struct {
	t    HashType
	pool sync.Pool
}

func NewHasher(t HashType) *Hasher {
	if t < 1 || t > hashTypeMax {
		t = AutoHashType()
	}
	return &Hasher{t: t}
}

func (hs *Hasher) Type() HashType { return hs.t }

func (hs *Hasher) getCtx() *hashCtx {
	c, _ := hs.pool.Get().(*hashCtx)
	if c != nil {
		c.h.Reset()
		return c
	}
	return &hashCtx{h: newHasher[hs.t-1]()}
}

// Sum returns textual hash of r contents in form "<type>-<base32 digest>".
// Digests of different types never compare equal.
func (hs *Hasher) Sum(r io.Reader) (string, error) {
	c := hs.getCtx()
	defer hs.pool.Put(c)

	if _, err := io.CopyBuffer(c.h, r, c.copyBuf[:]); err != nil {
		return "", err
	}
	// blake3 default output is 32 bytes; truncate to common length
	sum := c.h.Sum(c.sumBuf[:0])[:HashLength]
	return hs.t.String() + "-" + lowerBase32.EncodeToString(sum), nil
}
