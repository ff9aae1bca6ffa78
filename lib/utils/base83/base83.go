package base83

// positional base83 integer codec used by blurhash strings

import "errors"

// Alphabet lists digits in ascending order of value.
const Alphabet = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"#$%*+,-.:;=?@[]^_{|}~"

const Base = len(Alphabet)

var ErrInvalidDigit = errors.New("base83: invalid digit")

// reverse lookup; 0xFF marks bytes outside of alphabet
var digitValue [256]byte

func init() {
	for i := range digitValue {
		digitValue[i] = 0xFF
	}
	for i := 0; i < len(Alphabet); i++ {
		digitValue[Alphabet[i]] = byte(i)
	}
}

// IsDigit reports whether c belongs to Alphabet.
func IsDigit(c byte) bool {
	return digitValue[c] != 0xFF
}

// AppendInt appends exactly length digits of value to dst, most significant first.
// Caller must ensure 0 <= value < 83^length; higher digits are silently dropped.
func AppendInt(dst []byte, value, length int) []byte {
	divisor := 1
	for i := 1; i < length; i++ {
		divisor *= Base
	}
	for ; length > 0; length-- {
		dst = append(dst, Alphabet[(value/divisor)%Base])
		divisor /= Base
	}
	return dst
}

// EncodeInt is like AppendInt but returns string.
func EncodeInt(value, length int) string {
	var b [16]byte
	return string(AppendInt(b[:0], value, length))
}

// DecodeInt parses whole s as base83 number.
// Results are always non-negative; failure is reported only through error.
func DecodeInt(s string) (v int, err error) {
	for i := 0; i < len(s); i++ {
		d := digitValue[s[i]]
		if d == 0xFF {
			return 0, ErrInvalidDigit
		}
		v = v*Base + int(d)
	}
	return v, nil
}
