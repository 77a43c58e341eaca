package domain

import "fmt"

// KeyVer selects the EAPOL-Key MIC algorithm, per IEEE 802.11i.
type KeyVer uint8

const (
	// KeyVerWPA selects HMAC-MD5 (WPA/TKIP). Not implemented by this
	// core: Verify returns ErrUnsupportedKeyver.
	KeyVerWPA KeyVer = 1
	// KeyVerWPA2 selects HMAC-SHA1-128 (WPA2/AES-CCMP). The only
	// keyver this core computes a MIC for.
	KeyVerWPA2 KeyVer = 2
	// KeyVerWPA2CMAC selects AES-CMAC (802.11w / some WPA2 variants).
	// Not implemented by this core: Verify returns
	// ErrUnsupportedKeyver.
	KeyVerWPA2CMAC KeyVer = 3
)

const (
	// MaxESSIDLen is the maximum SSID length in bytes.
	MaxESSIDLen = 32
	// MaxEAPOLLen is the maximum size of a captured EAPOL-Key frame
	// this record format can carry.
	MaxEAPOLLen = 256
	// MICLen is the length in bytes of the EAPOL-Key MIC field.
	MICLen = 16
	// MACLen is the length in bytes of an 802.11 MAC address.
	MACLen = 6
	// NonceLen is the length in bytes of ANonce/SNonce.
	NonceLen = 32

	// RecordSize is the fixed wire size of a HandshakeRecord, per the
	// hccapx v4-compatible layout.
	RecordSize = 393
)

// HandshakeRecord is the normalized, in-memory form of one captured
// four-way-handshake MIC observation, as produced by an external
// pcap-to-hccapx decoder (internal/adapters/capture or the
// internal/adapters/hccapx file reader) and consumed by the
// dictionary-attack driver. It is read-only once constructed and may
// be shared immutably across worker goroutines.
type HandshakeRecord struct {
	Signature   uint32
	Version     uint32
	MessagePair uint8
	ESSID       []byte // length == essid_len, never padded in memory
	KeyVer      KeyVer
	KeyMIC      [MICLen]byte
	MACAP       [MACLen]byte
	NonceAP     [NonceLen]byte
	MACSTA      [MACLen]byte
	NonceSTA    [NonceLen]byte
	EAPOL       []byte // length == eapol_len, MIC field zeroed
}

// Validate checks the invariants spec.md §3 requires of a handshake
// record before it is handed to the cracking driver. It does not
// check KeyVer support; that is Verify's responsibility so the driver
// can distinguish ErrMalformedRecord from ErrUnsupportedKeyver.
func (r *HandshakeRecord) Validate() error {
	if len(r.ESSID) > MaxESSIDLen {
		return fmt.Errorf("%w: essid length %d exceeds %d", ErrMalformedRecord, len(r.ESSID), MaxESSIDLen)
	}
	if len(r.EAPOL) > MaxEAPOLLen {
		return fmt.Errorf("%w: eapol length %d exceeds %d", ErrMalformedRecord, len(r.EAPOL), MaxEAPOLLen)
	}
	if r.MACAP == r.MACSTA {
		return fmt.Errorf("%w: AP and station MAC addresses are identical", ErrMalformedRecord)
	}
	return nil
}

// ESSIDString returns the record's SSID as a string, for display and
// matching the -essid filter only; cryptographic use always
// goes through the raw ESSID bytes.
func (r *HandshakeRecord) ESSIDString() string {
	return string(r.ESSID)
}
