// Package pbkdf2 implements PBKDF2-HMAC-SHA1 (RFC 2898) and its WPA2
// instantiation: deriving the 256-bit Pairwise Master Key from a
// passphrase and an SSID salt over 4096 iterations.
package pbkdf2

import (
	"encoding/binary"

	"github.com/lcalzada-xor/wpacrack/internal/core/crypto/hmac1"
	"github.com/lcalzada-xor/wpacrack/internal/core/crypto/sha1"
)

const hLen = sha1.Size

// PMKLength is the WPA2 Pairwise Master Key length in bytes.
const PMKLength = 32

// IterationsWPA2 is the iteration count mandated for WPA2-Personal
// PMK derivation.
const IterationsWPA2 = 4096

// Key derives dkLen bytes of keying material from passphrase P and
// salt S using c iterations of HMAC-SHA1, per RFC 2898 §5.2.
func Key(p, s []byte, c, dkLen int) []byte {
	mid := hmac1.NewMidstate(p)

	numBlocks := (dkLen + hLen - 1) / hLen
	dk := make([]byte, 0, numBlocks*hLen)

	for i := 1; i <= numBlocks; i++ {
		dk = append(dk, f(mid, s, c, i)...)
	}

	return dk[:dkLen]
}

// f computes T_i = U_1 XOR U_2 XOR ... XOR U_c for block index i.
func f(mid *hmac1.Midstate, salt []byte, c, i int) []byte {
	var intBuf [4]byte
	binary.BigEndian.PutUint32(intBuf[:], uint32(i))

	seed := make([]byte, 0, len(salt)+4)
	seed = append(seed, salt...)
	seed = append(seed, intBuf[:]...)

	u := mid.Sum(seed)
	t := u

	for j := 1; j < c; j++ {
		u = mid.Sum(u[:])
		for k := range t {
			t[k] ^= u[k]
		}
	}

	out := make([]byte, hLen)
	copy(out, t[:])
	return out
}

// WPA2PMK derives the 32-byte Pairwise Master Key for a passphrase
// and network SSID, per the spec's WPA2 instantiation: c=4096,
// dkLen=32, salt=SSID bytes. The passphrase is accepted at any
// length >= 0; rejecting out-of-range passphrases (0 or >63 bytes) is
// the dictionary-attack driver's responsibility, not this function's.
func WPA2PMK(passphrase, ssid []byte) [PMKLength]byte {
	dk := Key(passphrase, ssid, IterationsWPA2, PMKLength)
	var pmk [PMKLength]byte
	copy(pmk[:], dk)
	return pmk
}
