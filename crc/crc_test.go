package crc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum8KnownVectors(t *testing.T) {
	assert.Equal(t, byte(0xa2), Checksum8([]byte{0x55, 0x0f, 0x04}))
	assert.Equal(t, byte(0x75), Checksum8([]byte{0x55, 0x1b, 0x04}))
}

func TestChecksum8AppendVerify(t *testing.T) {
	buf := AppendChecksum8([]byte{0x55, 0x0f, 0x04})
	assert.Equal(t, []byte{0x55, 0x0f, 0x04, 0xa2}, buf)
	assert.True(t, VerifyChecksum8(buf))

	assert.False(t, VerifyChecksum8(nil))
}

func TestChecksum16Empty(t *testing.T) {
	assert.Equal(t, Init16, Checksum16(nil, Init16))
	assert.False(t, VerifyChecksum16(nil, Init16))
	assert.False(t, VerifyChecksum16([]byte{0x00}, Init16))
}

func TestChecksum16KnownVectors(t *testing.T) {
	assert.Equal(t, uint16(0x2065), Checksum16([]byte{
		0x55, 0x1b, 0x04, 0xa2, 0x09, 0x04, 0x00, 0x00, 0x40, 0x04, 0x4c, 0x00, 0x00,
	}, Init16))
	assert.Equal(t, uint16(0x3fee), Checksum16([]byte{0x40, 0x04, 0x4c, 0x00, 0x00}, Init16))
	assert.Equal(t, uint16(0xf5a9), Checksum16([]byte{0x40}, Init16))
}

func TestChecksum16RoundTrip(t *testing.T) {
	buf := AppendChecksum16([]byte{0x55, 0x1b, 0x04, 0xa2}, Init16)
	assert.True(t, VerifyChecksum16(buf, Init16))
	assert.Len(t, buf, 6)
}

func TestChecksum16DetectsAnySingleFlip(t *testing.T) {
	buf := AppendChecksum16([]byte{0x55, 0x0f, 0x04, 0xa2, 0x09, 0x04, 0x12, 0x34}, Init16)

	// Flipping any byte, trailer included, must fail verification.
	for i := range buf {
		corrupted := make([]byte, len(buf))
		copy(corrupted, buf)
		corrupted[i] ^= 0x01
		assert.Falsef(t, VerifyChecksum16(corrupted, Init16), "flip at %d went undetected", i)
	}
}
