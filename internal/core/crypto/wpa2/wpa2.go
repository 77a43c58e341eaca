// Package wpa2 implements the WPA2-specific half of the recovery
// pipeline: PRF-512 (Pairwise Transient Key expansion) and EAPOL-Key
// MIC computation/verification, built entirely on the from-scratch
// sha1/hmac1 primitives.
package wpa2

import (
	"github.com/lcalzada-xor/wpacrack/internal/core/crypto/hmac1"
	"github.com/lcalzada-xor/wpacrack/internal/core/domain"
)

// pairwiseKeyExpansionLabel is the ASCII label mixed into PRF-512's
// input, per IEEE 802.11i.
var pairwiseKeyExpansionLabel = []byte("Pairwise key expansion")

// KCKLen is the length in bytes of the Key Confirmation Key, the
// first 16 bytes of the 64-byte PTK.
const KCKLen = 16

// ptkLen is the total PRF-512 output length in bytes (4 HMAC-SHA1
// blocks of 20 bytes each, truncated to 64).
const ptkLen = 64

// minBytes returns the lexicographically smaller of a and b (equal
// length byte strings). Equal inputs return a.
func minBytes(a, b []byte) []byte {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return a
			}
			return b
		}
	}
	return a
}

// maxBytes returns the lexicographically larger of a and b (equal
// length byte strings). Equal inputs return a.
func maxBytes(a, b []byte) []byte {
	for i := range a {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return a
			}
			return b
		}
	}
	return a
}

// PRF512 expands pmk into the 64-byte Pairwise Transient Key given
// the AP/station MAC addresses and nonces, per IEEE 802.11i §8.5.1.2.
// data = MIN(macAP,macSTA) || MAX(macAP,macSTA) || MIN(nonceAP,nonceSTA) || MAX(nonceAP,nonceSTA).
func PRF512(pmk []byte, macAP, macSTA, nonceAP, nonceSTA []byte) [ptkLen]byte {
	data := make([]byte, 0, 2*len(macAP)+2*len(nonceAP))
	data = append(data, minBytes(macAP, macSTA)...)
	data = append(data, maxBytes(macAP, macSTA)...)
	data = append(data, minBytes(nonceAP, nonceSTA)...)
	data = append(data, maxBytes(nonceAP, nonceSTA)...)

	mid := hmac1.NewMidstate(pmk)

	input := make([]byte, 0, len(pairwiseKeyExpansionLabel)+1+len(data)+1)
	input = append(input, pairwiseKeyExpansionLabel...)
	input = append(input, 0x00)
	input = append(input, data...)
	input = append(input, 0x00) // placeholder for the counter byte i

	var out [ptkLen]byte
	written := 0
	for i := 0; written < ptkLen; i++ {
		input[len(input)-1] = byte(i)
		digest := mid.Sum(input)
		n := copy(out[written:], digest[:])
		written += n
	}
	return out
}

// KCK derives only the Key Confirmation Key (the first 16 bytes of
// the PTK), which is all MIC verification needs.
func KCK(pmk []byte, macAP, macSTA, nonceAP, nonceSTA []byte) [KCKLen]byte {
	ptk := PRF512(pmk, macAP, macSTA, nonceAP, nonceSTA)
	var kck [KCKLen]byte
	copy(kck[:], ptk[:KCKLen])
	return kck
}

// ComputeMIC computes the EAPOL-Key MIC for keyver 2 (HMAC-SHA1-128):
// the first 16 bytes of HMAC-SHA1(kck, eapol), where eapol is the
// captured frame bytes with its own MIC field zeroed. keyver 1
// (HMAC-MD5) and keyver 3 (AES-CMAC) are not implemented; callers
// must check KeyVer before calling this function (Verify does so).
func ComputeMIC(kck []byte, eapol []byte) [domain.MICLen]byte {
	digest := hmac1.Sum(kck, eapol)
	var mic [domain.MICLen]byte
	copy(mic[:], digest[:domain.MICLen])
	return mic
}

// constantTimeEqual compares two equal-length 16-byte MICs using an
// OR-accumulated byte-wise comparison. Inputs here are not
// attacker-chosen (per spec.md §4.4.3: the candidate search space is
// the threat model, not this comparison), so this exists for
// consistency with the rest of the hand-rolled pipeline rather than
// as a hardening measure.
func constantTimeEqual(a, b [domain.MICLen]byte) bool {
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// Verify checks whether pmk is the Pairwise Master Key that produced
// record's recorded MIC. It returns domain.ErrUnsupportedKeyver for
// any keyver other than 2 (domain.KeyVerWPA2), per spec.md §9 Open
// Question 2: this core must never silently compute a MIC for a
// keyver it does not support.
//
// Verify checks only the single EAPOL buffer carried by record; it
// does not attempt alternate message-pair permutations even though
// record.MessagePair is available (spec.md §9 Open Question 1).
func Verify(record *domain.HandshakeRecord, pmk [32]byte) (bool, error) {
	if record.KeyVer != domain.KeyVerWPA2 {
		return false, domain.ErrUnsupportedKeyver
	}

	kck := KCK(pmk[:], record.MACAP[:], record.MACSTA[:], record.NonceAP[:], record.NonceSTA[:])
	computed := ComputeMIC(kck[:], record.EAPOL)
	return constantTimeEqual(computed, record.KeyMIC), nil
}
