// Package crc implements the two checksum layers of the RoboMaster S1
// command protocol: an incremental CRC8 written mid-buffer at a
// template-defined offset, and a table-driven CRC16 appended to the end
// of every finished command buffer.
package crc

// Init8 is the CRC8 seed used by the command protocol.
const Init8 byte = 0x77

// poly8 is the reflected Dallas/Maxim polynomial.
const poly8 byte = 0x8C

// Checksum8 computes the CRC8 over data.
//
// The command builder calls this over the bytes it has emitted so far,
// so a command header carries a checksum over itself before the rest of
// the payload exists.
func Checksum8(data []byte) byte {
	crc := Init8
	for _, b := range data {
		crc ^= b
		for bit := 0; bit < 8; bit++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ poly8
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// AppendChecksum8 appends the CRC8 of buf to buf.
func AppendChecksum8(buf []byte) []byte {
	return append(buf, Checksum8(buf))
}

// VerifyChecksum8 reports whether the last byte of data is the CRC8 of
// everything before it. It is false for empty input.
func VerifyChecksum8(data []byte) bool {
	if len(data) < 1 {
		return false
	}
	return Checksum8(data[:len(data)-1]) == data[len(data)-1]
}
