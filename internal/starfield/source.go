package starfield

import "strconv"

const (
	// dropBytes is the number of keystream bytes discarded after keying.
	dropBytes = 256

	startDenom   = 1 << 48
	significance = 1 << 52
	overflow     = 1 << 53
)

// Source is a per-cell pseudo-random stream.
//
// It reproduces the ARC4 construction of seedrandom.js byte for byte: the
// seed string is mixed into a key, ARC4 is keyed with it, the first 256
// bytes are dropped, and each Float64 assembles a 52-bit fraction from
// 6 or more keystream bytes. Changing any of this changes every star in
// every universe, so the byte sequence is part of the contract.
type Source struct {
	s    [256]byte
	i, j uint8
}

// NewSource returns the stream for a packed cell key. The key is keyed by
// its signed 32-bit decimal form, the way the browser explorer did it.
func NewSource(key uint32) *Source {
	return newStringSource(strconv.FormatInt(int64(int32(key)), 10))
}

func newStringSource(seed string) *Source {
	key := mixKey(seed)
	src := &Source{}
	for i := range src.s {
		src.s[i] = byte(i)
	}
	var j uint8
	for i := 0; i < len(src.s); i++ {
		t := src.s[i]
		j += key[i%len(key)] + t
		src.s[i] = src.s[j]
		src.s[j] = t
	}
	for n := 0; n < dropBytes; n++ {
		src.next()
	}
	return src
}

// mixKey folds a seed string into at most 256 key bytes. Seeds are ASCII.
func mixKey(seed string) []byte {
	key := make([]byte, 0, min(len(seed), 256))
	smear := 0
	for j := 0; j < len(seed); j++ {
		idx := j & 0xff
		if idx < len(key) {
			smear ^= int(key[idx]) * 19
		}
		v := byte((smear + int(seed[j])) & 0xff)
		if idx < len(key) {
			key[idx] = v
		} else {
			key = append(key, v)
		}
	}
	if len(key) == 0 {
		key = append(key, 0)
	}
	return key
}

func (s *Source) next() byte {
	s.i++
	t := s.s[s.i]
	s.j += t
	s.s[s.i] = s.s[s.j]
	s.s[s.j] = t
	return s.s[s.s[s.i]+t]
}

// Float64 returns the next uniform sample in [0, 1).
func (s *Source) Float64() float64 {
	var n uint64
	for k := 0; k < 6; k++ {
		n = n<<8 | uint64(s.next())
	}
	d := float64(startDenom)
	var x uint64
	for n < significance {
		n = (n + x) << 8
		d *= 256
		x = uint64(s.next())
	}
	for n >= overflow {
		n >>= 1
		d /= 2
		x >>= 1
	}
	return float64(n+x) / d
}
