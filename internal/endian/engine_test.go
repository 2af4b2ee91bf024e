package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngines(t *testing.T) {
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, Little().AppendUint32(nil, 0x01020304))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, Big().AppendUint32(nil, 0x01020304))
	assert.Equal(t, uint16(0x0102), Big().Uint16([]byte{0x01, 0x02}))
}

func TestNative(t *testing.T) {
	n := Native()
	assert.True(t, n == Engine(binary.LittleEndian) || n == Engine(binary.BigEndian))
	assert.Equal(t, n == Little(), IsNativeLittleEndian())

	// Native encoding matches the in-memory layout of a uint16
	b := n.AppendUint16(nil, 0x0100)
	if IsNativeLittleEndian() {
		assert.Equal(t, []byte{0x00, 0x01}, b)
	} else {
		assert.Equal(t, []byte{0x01, 0x00}, b)
	}
}
