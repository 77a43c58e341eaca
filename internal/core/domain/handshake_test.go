package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandshakeRecord_ValidateRejectsOversizedESSID(t *testing.T) {
	r := &HandshakeRecord{ESSID: make([]byte, MaxESSIDLen+1)}
	err := r.Validate()
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestHandshakeRecord_ValidateRejectsOversizedEAPOL(t *testing.T) {
	r := &HandshakeRecord{EAPOL: make([]byte, MaxEAPOLLen+1)}
	err := r.Validate()
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestHandshakeRecord_ValidateRejectsIdenticalMACs(t *testing.T) {
	mac := [MACLen]byte{1, 2, 3, 4, 5, 6}
	r := &HandshakeRecord{MACAP: mac, MACSTA: mac}
	err := r.Validate()
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestHandshakeRecord_ValidateAcceptsWellFormedRecord(t *testing.T) {
	r := &HandshakeRecord{
		ESSID:  []byte("IEEE"),
		EAPOL:  make([]byte, 99),
		MACAP:  [MACLen]byte{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA},
		MACSTA: [MACLen]byte{0xBB, 0xBB, 0xBB, 0xBB, 0xBB, 0xBB},
	}
	assert.NoError(t, r.Validate())
	assert.Equal(t, "IEEE", r.ESSIDString())
}
