// Package hccapx decodes and encodes the fixed 393-byte hccapx v4
// handshake-record format into domain.HandshakeRecord values. A file
// may hold zero or more concatenated records; ReadAll iterates every
// one, per spec.md §6.
package hccapx

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lcalzada-xor/wpacrack/internal/core/domain"
)

// Signature is the magic identifier expected in a well-formed hccapx
// record's first 4 bytes ("HCPX", little-endian as 0x58504348).
const Signature = 0x58504348

// recordSize is the fixed wire size of one record.
const recordSize = domain.RecordSize

// offsets into the 393-byte little-endian record, per spec.md §3.
const (
	offSignature   = 0
	offVersion     = 4
	offMessagePair = 8
	offESSIDLen    = 9
	offESSID       = 10
	offKeyver      = 42
	offKeyMIC      = 43
	offMACAP       = 59
	offNonceAP     = 65
	offMACSTA      = 97
	offNonceSTA    = 103
	offEAPOLLen    = 135
	offEAPOL       = 137
)

// Decode parses exactly one recordSize-byte record.
func Decode(buf []byte) (*domain.HandshakeRecord, error) {
	if len(buf) != recordSize {
		return nil, fmt.Errorf("%w: record is %d bytes, want %d", domain.ErrMalformedRecord, len(buf), recordSize)
	}

	essidLen := int(buf[offESSIDLen])
	if essidLen > domain.MaxESSIDLen {
		return nil, fmt.Errorf("%w: essid_len %d exceeds %d", domain.ErrMalformedRecord, essidLen, domain.MaxESSIDLen)
	}

	eapolLen := int(binary.LittleEndian.Uint16(buf[offEAPOLLen : offEAPOLLen+2]))
	if eapolLen > domain.MaxEAPOLLen {
		return nil, fmt.Errorf("%w: eapol_len %d exceeds %d", domain.ErrMalformedRecord, eapolLen, domain.MaxEAPOLLen)
	}

	r := &domain.HandshakeRecord{
		Signature:   binary.LittleEndian.Uint32(buf[offSignature : offSignature+4]),
		Version:     binary.LittleEndian.Uint32(buf[offVersion : offVersion+4]),
		MessagePair: buf[offMessagePair],
		ESSID:       append([]byte(nil), buf[offESSID:offESSID+essidLen]...),
		KeyVer:      domain.KeyVer(buf[offKeyver]),
		EAPOL:       append([]byte(nil), buf[offEAPOL:offEAPOL+eapolLen]...),
	}
	copy(r.KeyMIC[:], buf[offKeyMIC:offKeyMIC+domain.MICLen])
	copy(r.MACAP[:], buf[offMACAP:offMACAP+domain.MACLen])
	copy(r.NonceAP[:], buf[offNonceAP:offNonceAP+domain.NonceLen])
	copy(r.MACSTA[:], buf[offMACSTA:offMACSTA+domain.MACLen])
	copy(r.NonceSTA[:], buf[offNonceSTA:offNonceSTA+domain.NonceLen])

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Encode serializes r back into a recordSize-byte hccapx record. Used
// for round-trip tests and by cmd/cap2hccapx to write the handshakes
// internal/adapters/capture recovers from a .cap file.
func Encode(r *domain.HandshakeRecord) ([]byte, error) {
	if len(r.ESSID) > domain.MaxESSIDLen {
		return nil, fmt.Errorf("%w: essid length %d exceeds %d", domain.ErrMalformedRecord, len(r.ESSID), domain.MaxESSIDLen)
	}
	if len(r.EAPOL) > domain.MaxEAPOLLen {
		return nil, fmt.Errorf("%w: eapol length %d exceeds %d", domain.ErrMalformedRecord, len(r.EAPOL), domain.MaxEAPOLLen)
	}

	buf := make([]byte, recordSize)
	signature := r.Signature
	if signature == 0 {
		signature = Signature
	}
	binary.LittleEndian.PutUint32(buf[offSignature:offSignature+4], signature)
	binary.LittleEndian.PutUint32(buf[offVersion:offVersion+4], r.Version)
	buf[offMessagePair] = r.MessagePair
	buf[offESSIDLen] = byte(len(r.ESSID))
	copy(buf[offESSID:offESSID+domain.MaxESSIDLen], r.ESSID)
	buf[offKeyver] = byte(r.KeyVer)
	copy(buf[offKeyMIC:offKeyMIC+domain.MICLen], r.KeyMIC[:])
	copy(buf[offMACAP:offMACAP+domain.MACLen], r.MACAP[:])
	copy(buf[offNonceAP:offNonceAP+domain.NonceLen], r.NonceAP[:])
	copy(buf[offMACSTA:offMACSTA+domain.MACLen], r.MACSTA[:])
	copy(buf[offNonceSTA:offNonceSTA+domain.NonceLen], r.NonceSTA[:])
	binary.LittleEndian.PutUint16(buf[offEAPOLLen:offEAPOLLen+2], uint16(len(r.EAPOL)))
	copy(buf[offEAPOL:offEAPOL+domain.MaxEAPOLLen], r.EAPOL)

	return buf, nil
}

// ReadAll reads every recordSize-byte record from r, skipping (not
// failing on) individually malformed records per spec.md §7. It
// returns domain.ErrNoHandshake if the stream yields zero valid
// records.
func ReadAll(r io.Reader) ([]*domain.HandshakeRecord, error) {
	var records []*domain.HandshakeRecord
	buf := make([]byte, recordSize)

	for {
		n, err := io.ReadFull(r, buf)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: trailing %d bytes do not form a complete record", domain.ErrMalformedRecord, n)
		}
		if err != nil {
			return nil, err
		}

		record, decodeErr := Decode(buf)
		if decodeErr != nil {
			// Malformed individual record: skip and continue per
			// spec.md §7's policy ("Skip record; if no valid records
			// remain, NoHandshake").
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, domain.ErrNoHandshake
	}
	return records, nil
}
