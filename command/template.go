package command

import "golang.org/x/exp/slices"

// Command identifiers, in vendor capture order. The table holds 38
// commands; ids 26..34 form the boot enable block sent once at
// initialization.
const (
	CmdTwist    = 0
	CmdGimbal   = 1
	CmdLedColor = 2
	CmdLedOn    = 35

	bootFirst = 26
	bootLast  = 34
)

// Offsets shared by every command in the table.
const (
	offChecksum8  = 3
	offCounterLow = 6
	offCounterHigh = 7

	// trailerLen is the CRC16 trailer reserved at the end of every
	// template; it is never part of the substitution walk.
	trailerLen = 2
)

// fieldKind tags the role of one template byte.
type fieldKind uint8

const (
	fieldLiteral fieldKind = iota
	// fieldChecksum8 emits the running CRC8 over the bytes already
	// assembled, so the header checks itself before the payload exists.
	fieldChecksum8
	fieldCounterLow
	fieldCounterHigh
	fieldParam
)

// paramTag names a command-specific parameter byte. The chassis tags
// describe a reverse-engineered bit layout and must stay offset-exact;
// see the builder for the shift/mask constants.
type paramTag uint8

const (
	tagNone paramTag = iota

	// Twist: three 11-bit fixed-point axis values packed across shared
	// byte boundaries, plus the axis enable flags.
	tagChassisYLow
	tagChassisXShift
	tagChassisXHigh
	tagChassisZShift
	tagChassisZMid
	tagChassisPad
	tagChassisZFlag
	tagChassisZHigh
	tagAxisFlagA
	tagAxisEnable
	tagAxisPad
	tagAxisFlagB

	// Gimbal: two signed 16-bit rates, little-endian per axis.
	tagPitchLow
	tagPitchHigh
	tagYawLow
	tagYawHigh

	// LED: color bytes written verbatim.
	tagRed
	tagGreen
	tagBlue
)

// field is one tagged byte of a template. Literal keeps the template
// byte even for parameter fields: the chassis high field merges its
// value into the template's top bits.
type field struct {
	kind    fieldKind
	literal byte
	tag     paramTag
}

// template is the immutable skeleton of one command: tagged fields for
// every offset before the CRC16 trailer, plus the declared total length.
type template struct {
	fields []field
	length int
}

// newTemplate tags a raw table row. The declared length byte at offset 1
// must match the row; anything inconsistent is an InvalidCommandLength.
func newTemplate(id int, raw []byte, params map[int]paramTag) (*template, error) {
	if len(raw) < offCounterHigh+1+trailerLen || int(raw[1]) != len(raw) {
		return nil, InvalidCommandLength{ID: id}
	}

	length := len(raw)
	fields := make([]field, length-trailerLen)
	for off := range fields {
		f := field{kind: fieldLiteral, literal: raw[off]}
		switch {
		case off == offChecksum8:
			f.kind = fieldChecksum8
		case off == offCounterLow:
			f.kind = fieldCounterLow
		case off == offCounterHigh:
			f.kind = fieldCounterHigh
		default:
			if tag, ok := params[off]; ok {
				f.kind = fieldParam
				f.tag = tag
			}
		}
		fields[off] = f
	}

	return &template{fields: fields, length: length}, nil
}

// paramOffsets returns the parameter layout of a command, nil for
// commands that carry no parameters.
func paramOffsets(id int) map[int]paramTag {
	switch id {
	case CmdTwist:
		return map[int]paramTag{
			11: tagChassisYLow,
			12: tagChassisXShift,
			13: tagChassisXHigh,
			16: tagChassisZShift,
			17: tagChassisZMid,
			18: tagChassisPad,
			19: tagChassisZFlag,
			20: tagChassisZHigh,
			21: tagAxisFlagA,
			22: tagAxisEnable,
			23: tagAxisPad,
			24: tagAxisFlagB,
		}
	case CmdGimbal:
		return map[int]paramTag{
			13: tagPitchLow,
			14: tagPitchHigh,
			15: tagYawLow,
			16: tagYawHigh,
		}
	case CmdLedColor:
		return map[int]paramTag{
			14: tagRed,
			15: tagGreen,
			16: tagBlue,
		}
	default:
		return nil
	}
}

// TemplateCount is the number of commands in the table.
const TemplateCount = 38

// TemplateBytes returns a copy of the raw template of a command, for
// inspection and tests. The table itself is never handed out.
func TemplateBytes(id int) ([]byte, error) {
	if id < 0 || id >= len(rawCommands) {
		return nil, CommandNotFound{ID: id}
	}
	return slices.Clone(rawCommands[id]), nil
}

// rawCommands is the canonical byte template of every command, indexed
// by command identifier. Byte 0 is the frame marker, byte 1 the declared
// total length, byte 3 the CRC8 slot, bytes 6-7 the counter field and
// the last two bytes the CRC16 trailer. The rows are a compatibility
// surface for an undocumented vendor protocol: treat the bytes as
// opaque constants.
var rawCommands = [TemplateCount][]byte{
	{0x55, 0x1b, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x40, 0x00, 0x3f, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x13, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x00, 0x04, 0x69, 0x08, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x18, 0x04, 0x00, 0x09, 0x18, 0x00, 0x00, 0x00, 0x3f, 0x32, 0x01, 0x01, 0x40, 0x00, 0x00, 0x00, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0d, 0x04, 0x00, 0x09, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x03, 0x00, 0x00, 0x00, 0x04, 0x20, 0x00, 0x00, 0x00},
	{0x55, 0x10, 0x04, 0x00, 0x09, 0x03, 0x00, 0x00, 0x40, 0x00, 0x01, 0x10, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x00, 0x3f, 0x06, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x00, 0x3f, 0x28, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x40, 0x3f, 0x60, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x00, 0x48, 0x01, 0x09, 0x00, 0x00, 0x00},
	{0x55, 0x10, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x00, 0x48, 0x03, 0x09, 0x01, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x40, 0x48, 0x04, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x00, 0x04, 0x4c, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x10, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x00, 0x04, 0x69, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x40, 0x04, 0x6a, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x17, 0x00, 0x00, 0x00, 0x17, 0x01, 0x45, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x17, 0x00, 0x00, 0x00, 0x17, 0x20, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x17, 0x00, 0x00, 0x40, 0x17, 0x29, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x00, 0x3f, 0x3f, 0x01, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x00, 0x3f, 0xb3, 0x00, 0x00, 0x00},
	{0x55, 0x10, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x40, 0x3f, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x42, 0x00, 0x00, 0x00, 0x42, 0x01, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x42, 0x00, 0x00, 0x00, 0x42, 0x02, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x42, 0x00, 0x00, 0x40, 0x42, 0x66, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x52, 0x00, 0x00, 0x00, 0x52, 0x01, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x52, 0x00, 0x00, 0x00, 0x52, 0x02, 0x00, 0x00, 0x00},
	{0x55, 0x11, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x40, 0x3f, 0x60, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x11, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x40, 0x3f, 0x60, 0x00, 0x05, 0x01, 0x00, 0x00, 0x00},
	{0x55, 0x11, 0x04, 0x00, 0x09, 0x27, 0x00, 0x00, 0x40, 0x3f, 0x60, 0x00, 0x05, 0x02, 0x00, 0x00, 0x00},
	{0x55, 0x12, 0x04, 0x00, 0x09, 0x48, 0x00, 0x00, 0x40, 0x48, 0x01, 0x09, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00},
	{0x55, 0x10, 0x04, 0x00, 0x09, 0x48, 0x00, 0x00, 0x40, 0x48, 0x03, 0x09, 0x01, 0x03, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x48, 0x00, 0x00, 0x40, 0x48, 0x04, 0x03, 0x00, 0x00, 0x00},
	{0x55, 0x10, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x40, 0x04, 0x20, 0x00, 0x01, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x40, 0x04, 0x4c, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x40, 0x04, 0x6a, 0x01, 0x00, 0x00},
	{0x55, 0x18, 0x04, 0x00, 0x09, 0x18, 0x00, 0x00, 0x00, 0x3f, 0x32, 0x01, 0x01, 0x40, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0f, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x00, 0x04, 0x75, 0x00, 0x00, 0x00, 0x00},
	{0x55, 0x0e, 0x04, 0x00, 0x09, 0x04, 0x00, 0x00, 0x40, 0x04, 0x76, 0x00, 0x00, 0x00},
}
