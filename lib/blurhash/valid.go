package blurhash

import (
	"blurhash/lib/utils/base83"
)

// header parses size flag and checks length implied by it.
func header(hash string) (numX, numY int, err error) {
	if len(hash) < 6 {
		return 0, 0, ErrInvalidHash
	}
	sizeFlag, err := base83.DecodeInt(hash[:1])
	// flags 81 and 82 would mean 10 rows
	if err != nil || sizeFlag >= MaxComponents*MaxComponents {
		return 0, 0, ErrInvalidHash
	}
	numY = sizeFlag/9 + 1
	numX = sizeFlag%9 + 1
	if len(hash) != EncodedLen(numX, numY) {
		return 0, 0, ErrInvalidHash
	}
	return numX, numY, nil
}

// Components returns component counts hash was encoded with.
func Components(hash string) (xComponents, yComponents int, err error) {
	return header(hash)
}

// IsValid reports whether hash is well formed:
// length matches size flag and all characters are base83 digits.
// Size flags 81 and 82 decode to 10 rows and are not valid,
// even though hashes of matching length are otherwise well formed.
func IsValid(hash string) bool {
	if _, _, err := header(hash); err != nil {
		return false
	}
	for i := 1; i < len(hash); i++ {
		if !base83.IsDigit(hash[i]) {
			return false
		}
	}
	return true
}
