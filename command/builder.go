package command

import (
	"math"

	"github.com/IkuoShige/robomaster-s1-go/crc"
)

// Builder assembles finished command buffers from the template table,
// live parameters and the session's sequence counters. It is stateless
// apart from a lazily tagged template cache; the counters it reads stay
// owned by the caller.
type Builder struct {
	templates [TemplateCount]*template
}

// NewBuilder returns a builder over the canonical command table.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) template(id int) (*template, error) {
	if id < 0 || id >= len(rawCommands) {
		return nil, CommandNotFound{ID: id}
	}
	if b.templates[id] == nil {
		tpl, err := newTemplate(id, rawCommands[id], paramOffsets(id))
		if err != nil {
			return nil, err
		}
		b.templates[id] = tpl
	}
	return b.templates[id], nil
}

// build walks the template fields in order and substitutes the running
// CRC8, the counter bytes and any parameter fields, then appends the
// CRC16 trailer over everything assembled.
func (b *Builder) build(id int, counter uint16, param func(f field) byte) ([]byte, error) {
	tpl, err := b.template(id)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, tpl.length)
	for _, f := range tpl.fields {
		switch f.kind {
		case fieldChecksum8:
			buf = crc.AppendChecksum8(buf)
		case fieldCounterLow:
			buf = append(buf, byte(counter))
		case fieldCounterHigh:
			buf = append(buf, byte(counter>>8))
		case fieldParam:
			buf = append(buf, param(f))
		default:
			buf = append(buf, f.literal)
		}
	}
	return crc.AppendChecksum16(buf, crc.Init16), nil
}

func literalParam(f field) byte {
	return f.literal
}

// packSpeed converts a normalized axis value into the protocol's 11-bit
// unsigned fixed-point field, clamped to its range.
func packSpeed(v float64) uint16 {
	n := int(math.Round(256.0*v + 1024.0))
	if n < 0 {
		n = 0
	}
	if n > 2047 {
		n = 2047
	}
	return uint16(n)
}

// packRate converts a normalized gimbal rate into the protocol's signed
// 16-bit field.
func packRate(r float64) uint16 {
	return uint16(int16(math.Round(-1024.0 * r)))
}

// Twist builds the chassis movement command from the joy counter.
//
// The three axis values share byte boundaries; the layout below is
// reverse-engineered and must not be rearranged, or the wrong physical
// axis moves.
func (b *Builder) Twist(p MovementParams, counters *Counters) ([]byte, error) {
	linearX := packSpeed(p.VX)
	linearY := packSpeed(p.VY)
	angularZ := packSpeed(p.VZ)

	return b.build(CmdTwist, counters.Joy, func(f field) byte {
		switch f.tag {
		case tagChassisYLow:
			return byte(linearY)
		case tagChassisXShift:
			return byte(linearX<<3) | byte(linearY>>8)&0x07
		case tagChassisXHigh:
			return f.literal&0xC0 | byte(linearX>>5)&0x3F
		case tagChassisZShift:
			return byte(angularZ<<4) | 0x08
		case tagChassisZMid:
			return byte(angularZ >> 4)
		case tagChassisZFlag:
			return 0x02 | byte(angularZ<<2)
		case tagChassisZHigh:
			return byte(angularZ >> 6)
		case tagChassisPad, tagAxisPad:
			return 0x00
		case tagAxisFlagA, tagAxisFlagB:
			return 0x04
		case tagAxisEnable:
			// 4: x-y axes, 8: yaw
			return 0x0C
		}
		return f.literal
	})
}

// Gimbal builds the gimbal rate command from the gimbal counter. Each
// rate goes out as round(-1024*r), little-endian.
func (b *Builder) Gimbal(p GimbalParams, counters *Counters) ([]byte, error) {
	angularY := packRate(p.RY)
	angularZ := packRate(p.RZ)

	return b.build(CmdGimbal, counters.Gimbal, func(f field) byte {
		switch f.tag {
		case tagPitchLow:
			return byte(angularY)
		case tagPitchHigh:
			return byte(angularY >> 8)
		case tagYawLow:
			return byte(angularZ)
		case tagYawHigh:
			return byte(angularZ >> 8)
		}
		return f.literal
	})
}

// Led builds the LED color command from the led counter.
func (b *Builder) Led(color LedColor, counters *Counters) ([]byte, error) {
	return b.build(CmdLedColor, counters.Led, func(f field) byte {
		switch f.tag {
		case tagRed:
			return color.Red
		case tagGreen:
			return color.Green
		case tagBlue:
			return color.Blue
		}
		return f.literal
	})
}

// LedOn builds the fixed "LED on" command from the led counter.
func (b *Builder) LedOn(counters *Counters) ([]byte, error) {
	return b.build(CmdLedOn, counters.Led, literalParam)
}

// Touch builds the two-part keepalive. It is not template-driven: the
// first part carries the joy counter, and the CRC16 trailer on the
// second part covers the concatenation of both.
func (b *Builder) Touch(counters *Counters) [][]byte {
	first := []byte{0x55, 0x0f, 0x04, 0xa2, 0x09, 0x04, byte(counters.Joy), byte(counters.Joy >> 8)}
	second := []byte{0x40, 0x04, 0x4c, 0x00, 0x00}

	combined := make([]byte, 0, len(first)+len(second))
	combined = append(combined, first...)
	combined = append(combined, second...)
	sum := crc.Checksum16(combined, crc.Init16)

	second = append(second, byte(sum), byte(sum>>8))
	return [][]byte{first, second}
}

// BootSequence builds the initialization handshake: the boot enable
// block with zeroed counters, then LED on, as one buffer.
func (b *Builder) BootSequence() ([]byte, error) {
	var zero Counters

	var boot []byte
	for id := bootFirst; id <= bootLast; id++ {
		cmd, err := b.build(id, 0, literalParam)
		if err != nil {
			return nil, err
		}
		boot = append(boot, cmd...)
	}

	ledOn, err := b.LedOn(&zero)
	if err != nil {
		return nil, err
	}
	return append(boot, ledOn...), nil
}
