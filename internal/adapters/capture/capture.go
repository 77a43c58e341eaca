// Package capture is the concrete form of the external pcap-decoder
// collaborator spec.md §1 treats as out of the core's scope: it walks
// an offline .cap file with gopacket and reassembles complete
// four-way-handshake EAPOL pairs into domain.HandshakeRecord values,
// standing in for the original project's separate cap2hccapx tool
// (see _examples/original_source/cap2hccapx).
//
// It reuses the teacher's live-capture handshake-tracking approach
// (internal/adapters/sniffer/handshake) but as a one-shot walk over a
// finite file instead of a long-running session tracker.
package capture

import (
	"fmt"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/sniffer/handshake"
	"github.com/lcalzada-xor/wpacrack/internal/adapters/sniffer/ie"
	"github.com/lcalzada-xor/wpacrack/internal/core/domain"
)

// pair accumulates the two EAPOL messages (M1 for ANonce, M2 for
// SNonce/MIC/raw frame bytes) needed to verify a handshake offline.
// The original source's wpa2.c as well as common aircrack-ng tooling
// verify against M2, since it is the first message the station signs
// with the KCK it derived from the candidate PSK.
type pair struct {
	bssid, station string
	essid          string
	anonce         []byte
	snonce         []byte
	mic            [domain.MICLen]byte
	eapolRaw       []byte
	keyver         domain.KeyVer
	haveM1, haveM2 bool
}

// WalkFile opens path as a pcap capture and returns every complete
// four-way-handshake pair it can reconstruct, in first-seen order. It
// never returns a partial pair (M1 without M2 or vice versa): a
// station that only ever sent one side of the handshake within the
// capture yields nothing.
func WalkFile(path string) ([]*domain.HandshakeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgs, err)
	}
	defer f.Close()

	reader, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid pcap file: %v", domain.ErrInvalidArgs, err)
	}

	bssidToEssid := make(map[string]string)
	pairs := make(map[string]*pair)
	var order []string

	packetSource := gopacket.NewPacketSource(reader, reader.LinkType())
	for packet := range packetSource.Packets() {
		processPacket(packet, bssidToEssid, pairs, &order)
	}

	var records []*domain.HandshakeRecord
	for _, key := range order {
		p := pairs[key]
		if !p.haveM1 || !p.haveM2 {
			continue
		}
		records = append(records, toRecord(p))
	}

	if len(records) == 0 {
		return nil, domain.ErrNoHandshake
	}
	return records, nil
}

func processPacket(packet gopacket.Packet, bssidToEssid map[string]string, pairs map[string]*pair, order *[]string) {
	dot11Layer := packet.Layer(layers.LayerTypeDot11)
	if dot11Layer == nil {
		return
	}
	dot11, ok := dot11Layer.(*layers.Dot11)
	if !ok {
		return
	}

	if dot11.Type == layers.Dot11TypeMgmtBeacon {
		if beacon := packet.Layer(layers.LayerTypeDot11MgmtBeacon); beacon != nil {
			essid := ie.ParseSSID(beacon.LayerPayload())
			if essid != "" && essid != "<HIDDEN>" {
				bssidToEssid[dot11.Address3.String()] = essid
			}
		}
		return
	}

	if packet.Layer(layers.LayerTypeEAPOL) == nil {
		return
	}

	bssid, station, ok := addressesFromDot11(dot11)
	if !ok {
		return
	}

	frame, err := handshake.ParseEAPOLKey(packet)
	if err != nil {
		return
	}

	key := bssid + "_" + station
	p, exists := pairs[key]
	if !exists {
		p = &pair{bssid: bssid, station: station, essid: bssidToEssid[bssid]}
		pairs[key] = p
		*order = append(*order, key)
	}
	if p.essid == "" {
		p.essid = bssidToEssid[bssid]
	}

	switch frame.DetermineMessageNumber() {
	case 1:
		p.anonce = append([]byte(nil), frame.Nonce...)
		p.haveM1 = true
	case 2:
		p.snonce = append([]byte(nil), frame.Nonce...)
		copy(p.mic[:], frame.MIC)
		p.eapolRaw = rawEAPOLWithZeroedMIC(packet)
		p.keyver = domain.KeyVer(frame.Version)
		p.haveM2 = true
	}
}

// addressesFromDot11 resolves (BSSID, station MAC) from an 802.11
// data frame's ToDS/FromDS flags, matching the teacher's
// handleEAPOL address resolution.
func addressesFromDot11(dot11 *layers.Dot11) (bssid, station string, ok bool) {
	toDS := dot11.Flags.ToDS()
	fromDS := dot11.Flags.FromDS()

	switch {
	case !toDS && !fromDS:
		bssid = dot11.Address3.String()
		if dot11.Address2.String() == bssid {
			station = dot11.Address1.String()
		} else {
			station = dot11.Address2.String()
		}
	case !toDS && fromDS:
		bssid = dot11.Address2.String()
		station = dot11.Address1.String()
	case toDS && !fromDS:
		bssid = dot11.Address1.String()
		station = dot11.Address2.String()
	default:
		return "", "", false
	}
	return bssid, station, true
}

// rawEAPOLWithZeroedMIC returns the full on-wire EAPOL frame (4-byte
// header + key payload) with its 16-byte MIC field zeroed, as
// spec.md §3 requires for the stored "eapol" field.
func rawEAPOLWithZeroedMIC(packet gopacket.Packet) []byte {
	eapolLayer := packet.Layer(layers.LayerTypeEAPOL)
	raw := append([]byte(nil), eapolLayer.LayerContents()...)
	raw = append(raw, eapolLayer.LayerPayload()...)

	const micOffsetInPayload = 77
	headerLen := len(eapolLayer.LayerContents())
	micStart := headerLen + micOffsetInPayload
	micEnd := micStart + domain.MICLen
	if micEnd <= len(raw) {
		for i := micStart; i < micEnd; i++ {
			raw[i] = 0
		}
	}
	return raw
}

func toRecord(p *pair) *domain.HandshakeRecord {
	r := &domain.HandshakeRecord{
		Version:     4,
		MessagePair: 0, // M1/M2, per spec.md §9 Open Question 1: not varied or retried
		ESSID:       []byte(p.essid),
		KeyVer:      p.keyver,
		KeyMIC:      p.mic,
		EAPOL:       p.eapolRaw,
	}
	if len(r.EAPOL) > domain.MaxEAPOLLen {
		r.EAPOL = r.EAPOL[:domain.MaxEAPOLLen]
	}
	parseMAC(p.bssid, &r.MACAP)
	parseMAC(p.station, &r.MACSTA)
	copy(r.NonceAP[:], p.anonce)
	copy(r.NonceSTA[:], p.snonce)
	return r
}

func parseMAC(s string, out *[domain.MACLen]byte) {
	var b [domain.MACLen]byte
	n, _ := fmt.Sscanf(s, "%02x:%02x:%02x:%02x:%02x:%02x", &b[0], &b[1], &b[2], &b[3], &b[4], &b[5])
	if n == domain.MACLen {
		*out = b
	}
}
