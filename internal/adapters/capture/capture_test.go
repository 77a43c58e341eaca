package capture

import (
	"encoding/binary"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/lcalzada-xor/wpacrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBeacon mirrors the teacher's createManualBeacon helper.
func buildBeacon(bssid, ssid string) gopacket.Packet {
	bssidMac, _ := net.ParseMAC(bssid)
	dot11 := &layers.Dot11{
		Type:     layers.Dot11TypeMgmtBeacon,
		Address1: layers.EthernetBroadcast,
		Address2: bssidMac,
		Address3: bssidMac,
	}

	fixed := make([]byte, 12)
	fixed[8] = 0x64

	ssidBytes := []byte(ssid)
	ie := []byte{0, uint8(len(ssidBytes))}
	ie = append(ie, ssidBytes...)
	fullPayload := append(fixed, ie...)

	buf := gopacket.NewSerializeBuffer()
	gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, dot11, gopacket.Payload(fullPayload))
	pkt := gopacket.NewPacket(buf.Bytes(), layers.LayerTypeDot11, gopacket.Default)
	pkt.Metadata().CaptureInfo.CaptureLength = len(buf.Bytes())
	pkt.Metadata().CaptureInfo.Length = len(buf.Bytes())
	pkt.Metadata().CaptureInfo.Timestamp = time.Now()
	return pkt
}

// buildEAPOL mirrors the teacher's makeEAPOL helper.
func buildEAPOL(msgNum int, src, dst, bssid string, nonce []byte) gopacket.Packet {
	srcMac, _ := net.ParseMAC(src)
	dstMac, _ := net.ParseMAC(dst)
	bssidMac, _ := net.ParseMAC(bssid)

	dot11 := &layers.Dot11{
		Type:     layers.Dot11TypeData,
		Address1: dstMac,
		Address2: srcMac,
		Address3: bssidMac,
	}
	llc := &layers.LLC{DSAP: 0xaa, SSAP: 0xaa, Control: 0x03}
	snap := &layers.SNAP{OrganizationalCode: []byte{0, 0, 0}, Type: layers.EthernetTypeEAPOL}
	eapol := &layers.EAPOL{Version: 1, Type: layers.EAPOLTypeKey, Length: 95}

	payload := make([]byte, 99)
	payload[0] = 2 // RSN descriptor

	const versionWPA2 = 2
	var keyInfo uint16
	switch msgNum {
	case 1:
		keyInfo = versionWPA2 | 0x0008 | 0x0080 // Pairwise|Ack
	case 2:
		keyInfo = versionWPA2 | 0x0008 | 0x0100 // Pairwise|MIC
		binary.BigEndian.PutUint16(payload[93:95], 4)
	}
	binary.BigEndian.PutUint16(payload[1:3], keyInfo)
	binary.BigEndian.PutUint64(payload[5:13], 1)
	if len(nonce) == 32 {
		copy(payload[13:45], nonce)
	}
	if msgNum == 2 {
		for i := 77; i < 93; i++ {
			payload[i] = 0x77
		}
	}

	buf := gopacket.NewSerializeBuffer()
	gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, dot11, llc, snap, eapol, gopacket.Payload(payload))
	pkt := gopacket.NewPacket(buf.Bytes(), layers.LayerTypeDot11, gopacket.Default)
	pkt.Metadata().CaptureInfo.CaptureLength = len(buf.Bytes())
	pkt.Metadata().CaptureInfo.Length = len(buf.Bytes())
	pkt.Metadata().CaptureInfo.Timestamp = time.Now()
	return pkt
}

func TestProcessPacket_PairsM1AndM2(t *testing.T) {
	bssid := "00:11:22:33:44:00"
	sta := "aa:aa:aa:aa:aa:00"
	anonce := make([]byte, 32)
	anonce[0] = 0xAA
	snonce := make([]byte, 32)
	snonce[0] = 0xBB

	bssidToEssid := map[string]string{bssid: "TestNet"}
	pairs := make(map[string]*pair)
	var order []string

	processPacket(buildEAPOL(1, bssid, sta, bssid, anonce), bssidToEssid, pairs, &order)
	processPacket(buildEAPOL(2, sta, bssid, bssid, snonce), bssidToEssid, pairs, &order)

	require.Len(t, order, 1)
	p := pairs[order[0]]
	require.NotNil(t, p)
	assert.True(t, p.haveM1)
	assert.True(t, p.haveM2)
	assert.Equal(t, anonce, p.anonce)
	assert.Equal(t, snonce, p.snonce)
	assert.Equal(t, "TestNet", p.essid)
	assert.Equal(t, domain.KeyVer(2), p.keyver)
}

func TestProcessPacket_BeaconRecordsESSID(t *testing.T) {
	bssid := "00:11:22:33:44:11"
	bssidToEssid := make(map[string]string)
	pairs := make(map[string]*pair)
	var order []string

	processPacket(buildBeacon(bssid, "MyNetwork"), bssidToEssid, pairs, &order)
	assert.Equal(t, "MyNetwork", bssidToEssid[bssid])
	assert.Len(t, order, 0)
}

func TestRawEAPOLWithZeroedMIC_ZerosMICField(t *testing.T) {
	sta := "aa:aa:aa:aa:aa:01"
	bssid := "00:11:22:33:44:01"
	pkt := buildEAPOL(2, sta, bssid, bssid, make([]byte, 32))

	raw := rawEAPOLWithZeroedMIC(pkt)
	headerLen := len(pkt.Layer(layers.LayerTypeEAPOL).LayerContents())
	for i := 0; i < domain.MICLen; i++ {
		assert.Equal(t, byte(0), raw[headerLen+77+i])
	}
}

func TestAddressesFromDot11_ToDSFromDSCombinations(t *testing.T) {
	ap, _ := net.ParseMAC("00:11:22:33:44:55")
	sta, _ := net.ParseMAC("aa:bb:cc:dd:ee:ff")

	notDS := &layers.Dot11{Address1: sta, Address2: ap, Address3: ap}
	bssid, station, ok := addressesFromDot11(notDS)
	require.True(t, ok)
	assert.Equal(t, ap.String(), bssid)
	assert.Equal(t, sta.String(), station)

	fromAP := &layers.Dot11{Flags: layers.Dot11Flags(0x02), Address1: sta, Address2: ap, Address3: ap}
	bssid, station, ok = addressesFromDot11(fromAP)
	require.True(t, ok)
	assert.Equal(t, ap.String(), bssid)
	assert.Equal(t, sta.String(), station)

	toAP := &layers.Dot11{Flags: layers.Dot11Flags(0x01), Address1: ap, Address2: sta, Address3: ap}
	bssid, station, ok = addressesFromDot11(toAP)
	require.True(t, ok)
	assert.Equal(t, ap.String(), bssid)
	assert.Equal(t, sta.String(), station)

	wds := &layers.Dot11{Flags: layers.Dot11Flags(0x03), Address1: ap, Address2: sta, Address3: ap}
	_, _, ok = addressesFromDot11(wds)
	assert.False(t, ok)
}

func TestWalkFile_ReconstructsCompleteHandshake(t *testing.T) {
	bssid := "00:11:22:33:44:22"
	sta := "aa:aa:aa:aa:aa:22"
	anonce := make([]byte, 32)
	anonce[0] = 0x11
	snonce := make([]byte, 32)
	snonce[0] = 0x22

	dir := t.TempDir()
	path := filepath.Join(dir, "capture.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeIEEE802_11))

	for _, pkt := range []gopacket.Packet{
		buildBeacon(bssid, "WalkNet"),
		buildEAPOL(1, bssid, sta, bssid, anonce),
		buildEAPOL(2, sta, bssid, bssid, snonce),
	} {
		require.NoError(t, w.WritePacket(pkt.Metadata().CaptureInfo, pkt.Data()))
	}
	require.NoError(t, f.Close())

	records, err := WalkFile(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "WalkNet", r.ESSIDString())
	assert.Equal(t, domain.KeyVer(2), r.KeyVer)
	assert.Equal(t, anonce, r.NonceAP[:])
	assert.Equal(t, snonce, r.NonceSTA[:])
}

func TestWalkFile_NoHandshakeReturnsErrNoHandshake(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(65536, layers.LinkTypeIEEE802_11))
	require.NoError(t, w.WritePacket(buildBeacon("00:00:00:00:00:01", "Lonely").Metadata().CaptureInfo, buildBeacon("00:00:00:00:00:01", "Lonely").Data()))
	require.NoError(t, f.Close())

	_, err = WalkFile(path)
	assert.ErrorIs(t, err, domain.ErrNoHandshake)
}

func TestWalkFile_RejectsNonPcapFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.pcap")
	require.NoError(t, os.WriteFile(path, []byte("not a pcap file"), 0o644))

	_, err := WalkFile(path)
	assert.ErrorIs(t, err, domain.ErrInvalidArgs)
}
