// Package hmac1 implements HMAC-SHA1 (RFC 2104) over the from-scratch
// sha1 package, including a precomputed inner/outer midstate so the
// PBKDF2 hot loop can avoid re-hashing the key on every iteration.
package hmac1

import "github.com/lcalzada-xor/wpacrack/internal/core/crypto/sha1"

const blockSize = sha1.BlockSize

// Sum computes HMAC-SHA1(key, msg).
func Sum(key, msg []byte) [sha1.Size]byte {
	mid := NewMidstate(key)
	return mid.Sum(msg)
}

// Midstate holds the two SHA-1 states obtained after hashing
// (key XOR ipad) and (key XOR opad), so that repeated HMAC
// invocations under the same key (as PBKDF2 performs thousands of
// times) only pay the cost of hashing the per-call message, not the
// key padding, each time.
type Midstate struct {
	inner sha1.Hasher
	outer sha1.Hasher
}

// NewMidstate derives the padded-key state for key.
func NewMidstate(key []byte) *Midstate {
	var block [blockSize]byte
	if len(key) > blockSize {
		digest := sha1.Sum1(key)
		copy(block[:], digest[:])
	} else {
		copy(block[:], key)
	}

	var ipad, opad [blockSize]byte
	for i := 0; i < blockSize; i++ {
		ipad[i] = block[i] ^ 0x36
		opad[i] = block[i] ^ 0x5C
	}

	m := &Midstate{}
	m.inner = *sha1.New()
	m.inner.Write(ipad[:])
	m.outer = *sha1.New()
	m.outer.Write(opad[:])
	return m
}

// Sum computes HMAC-SHA1 for msg under the key this Midstate was
// derived from, without mutating the Midstate (it may be reused for
// any number of subsequent calls).
func (m *Midstate) Sum(msg []byte) [sha1.Size]byte {
	inner := m.inner
	inner.Write(msg)
	innerDigest := inner.Sum(nil)

	outer := m.outer
	outer.Write(innerDigest)
	var out [sha1.Size]byte
	copy(out[:], outer.Sum(nil))
	return out
}
