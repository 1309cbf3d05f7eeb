// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lzo

package xz

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildStream assembles a minimal single-block XZ stream wrapping payload,
// with an optional CRC32 check field computed over decoded.
func buildStream(t *testing.T, payload []byte, decoded []byte, withCheck bool) []byte {
	t.Helper()

	checkType := CheckNone
	var checkField []byte
	if withCheck {
		checkType = CheckCRC32
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], crc32.ChecksumIEEE(decoded))
		checkField = b[:]
	}

	var stream []byte
	stream = append(stream, streamMagic[:]...)
	flags := []byte{0, byte(checkType)}
	stream = append(stream, flags...)
	var flagsCRC [4]byte
	binary.LittleEndian.PutUint32(flagsCRC[:], crc32.ChecksumIEEE(flags))
	stream = append(stream, flagsCRC[:]...)
	require.Len(t, stream, 12)

	// Block header: size field byte, block flags (no filter count/reserved
	// bits, meaning exactly one filter), padded to a multiple of 4, CRC32.
	blockHeaderBody := []byte{0, 0} // placeholder size byte + flags=0
	for len(blockHeaderBody)%4 != 0 {
		blockHeaderBody = append(blockHeaderBody, 0)
	}
	blockHeaderBody[0] = byte((len(blockHeaderBody)+4)/4 - 1) // size includes the CRC32
	var blockHdrCRC [4]byte
	binary.LittleEndian.PutUint32(blockHdrCRC[:], crc32.ChecksumIEEE(blockHeaderBody))
	blockStart := len(stream)
	stream = append(stream, blockHeaderBody...)
	stream = append(stream, blockHdrCRC[:]...)

	stream = append(stream, payload...)
	stream = append(stream, checkField...)

	blockTotalSize := len(stream) - blockStart

	// Index block: indicator 0, one record (count=1), unpadded record
	// fields kept at zero for this test fixture, padded to a multiple of 4,
	// trailing CRC32.
	indexBody := []byte{0, 1, 0, 0}
	for len(indexBody)%4 != 0 {
		indexBody = append(indexBody, 0)
	}
	var indexCRC [4]byte
	binary.LittleEndian.PutUint32(indexCRC[:], crc32.ChecksumIEEE(indexBody))
	indexStart := len(stream)
	stream = append(stream, indexBody...)
	stream = append(stream, indexCRC[:]...)

	indexSizeBytes := len(stream) - indexStart
	backwardSizeRaw := indexSizeBytes/4 - 1

	footerBody := make([]byte, 6)
	binary.LittleEndian.PutUint32(footerBody[0:4], uint32(backwardSizeRaw))
	footerBody[4], footerBody[5] = flags[0], flags[1]
	var footerCRC [4]byte
	binary.LittleEndian.PutUint32(footerCRC[:], crc32.ChecksumIEEE(footerBody))
	stream = append(stream, footerCRC[:]...)
	stream = append(stream, footerBody...)
	stream = append(stream, footerMagic[:]...)

	require.True(t, blockTotalSize > 0)
	return stream
}

func TestStripRoundTrip(t *testing.T) {
	decoded := []byte("hello lzma2 world, repeated repeated repeated")
	payload := []byte{0x01, 0x00, byte(len(decoded) - 1)}
	payload = append(payload, decoded...)

	stream := buildStream(t, payload, decoded, true)

	out, checkField, info, err := Strip(stream, nil)
	require.NoError(t, err)
	require.Equal(t, CheckCRC32, info.CheckType)
	require.Equal(t, 1, info.BlockCount)
	require.Equal(t, payload, out)

	require.NoError(t, VerifyCRC32(out, len(out), checkField, decoded))
}

func TestStripNoCheck(t *testing.T) {
	decoded := []byte("no check stream")
	payload := append([]byte{0x01, 0x00, byte(len(decoded) - 1)}, decoded...)

	stream := buildStream(t, payload, decoded, false)

	out, checkField, info, err := Strip(stream, nil)
	require.NoError(t, err)
	require.Equal(t, CheckNone, info.CheckType)
	require.Empty(t, checkField)
	require.Equal(t, payload, out)
}

func TestStripRequireCheckTypeRejectsNone(t *testing.T) {
	decoded := []byte("x")
	payload := append([]byte{0x01, 0x00, 0}, decoded...)
	stream := buildStream(t, payload, decoded, false)

	_, _, _, err := Strip(stream, &Options{RequireCheckType: true})
	require.ErrorIs(t, err, ErrCheckTypeRequired)
}

func TestStripBadMagic(t *testing.T) {
	stream := make([]byte, 32)
	_, _, _, err := Strip(stream, nil)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestStripCorruptedHeaderCRC(t *testing.T) {
	decoded := []byte("abc")
	payload := append([]byte{0x01, 0x00, byte(len(decoded) - 1)}, decoded...)
	stream := buildStream(t, payload, decoded, true)
	stream[9] ^= 0xff // flips stream flags CRC32, caught by IsXZStream

	_, _, _, err := Strip(stream, nil)
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestStripCorruptedIndexCRC(t *testing.T) {
	decoded := []byte("abc")
	payload := append([]byte{0x01, 0x00, byte(len(decoded) - 1)}, decoded...)
	stream := buildStream(t, payload, decoded, true)

	indexStart := len(stream) - 12 - 8 // index body+CRC is 8 bytes in this fixture
	stream[indexStart] ^= 0xff

	_, _, _, err := Strip(stream, nil)
	require.Error(t, err)
}

func TestStripTruncated(t *testing.T) {
	decoded := []byte("abc")
	payload := append([]byte{0x01, 0x00, byte(len(decoded) - 1)}, decoded...)
	stream := buildStream(t, payload, decoded, true)

	_, _, _, err := Strip(stream[:20], nil)
	require.Error(t, err)
}

func TestIsXZStream(t *testing.T) {
	decoded := []byte("abc")
	payload := append([]byte{0x01, 0x00, byte(len(decoded) - 1)}, decoded...)
	stream := buildStream(t, payload, decoded, true)

	require.True(t, IsXZStream(stream))
	require.False(t, IsXZStream([]byte("not an xz stream")))
	require.False(t, IsXZStream(nil))
}

func TestVerifyCRC32RejectsNonZeroPadding(t *testing.T) {
	decoded := []byte("abc")
	var checkField [4]byte
	binary.LittleEndian.PutUint32(checkField[:], crc32.ChecksumIEEE(decoded))

	payload := []byte{0x00, 0x01, 0x02} // garbage, not zero padding
	err := VerifyCRC32(payload, 1, checkField[:], decoded)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestVerifyCRC32Mismatch(t *testing.T) {
	decoded := []byte("abc")
	var checkField [4]byte
	binary.LittleEndian.PutUint32(checkField[:], crc32.ChecksumIEEE([]byte("xyz")))

	err := VerifyCRC32(decoded, len(decoded), checkField[:], decoded)
	require.ErrorIs(t, err, ErrCheckMismatch)
}
