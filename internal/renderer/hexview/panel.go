package hexview

import (
	"encoding/binary"
	"fmt"
)

// PanelHeight is the number of rows the byte-properties panel occupies.
const PanelHeight = 9

// PanelLines describes the bytes starting at the main caret: up to four
// bytes are read, and values needing more bytes than available show "-".
func PanelLines(b []byte) [PanelHeight]string {
	var lines [PanelHeight]string

	if len(b) == 0 {
		lines[0] = "hex   -"
		lines[1] = "bin   -"
		lines[2] = "u8    -"
		lines[3] = "i8    -"
	} else {
		lines[0] = fmt.Sprintf("hex   %02x", b[0])
		lines[1] = fmt.Sprintf("bin   %08b", b[0])
		lines[2] = fmt.Sprintf("u8    %d", b[0])
		lines[3] = fmt.Sprintf("i8    %d", int8(b[0]))
	}

	lines[4] = "u16   " + pair(b, 2, func(le, be []byte) (any, any) {
		return binary.LittleEndian.Uint16(le), binary.BigEndian.Uint16(be)
	})
	lines[5] = "i16   " + pair(b, 2, func(le, be []byte) (any, any) {
		return int16(binary.LittleEndian.Uint16(le)), int16(binary.BigEndian.Uint16(be))
	})
	lines[6] = "u32   " + pair(b, 4, func(le, be []byte) (any, any) {
		return binary.LittleEndian.Uint32(le), binary.BigEndian.Uint32(be)
	})
	lines[7] = "i32   " + pair(b, 4, func(le, be []byte) (any, any) {
		return int32(binary.LittleEndian.Uint32(le)), int32(binary.BigEndian.Uint32(be))
	})

	if len(b) == 0 {
		lines[8] = "ascii -"
	} else {
		lines[8] = "ascii " + mixedRepr(b[0])
	}
	return lines
}

func pair(b []byte, n int, decode func(le, be []byte) (any, any)) string {
	if len(b) < n {
		return "-"
	}
	le, be := decode(b[:n], b[:n])
	return fmt.Sprintf("le %v be %v", le, be)
}

// mixedRepr shows printable ASCII as itself and anything else as <xx>.
func mixedRepr(c byte) string {
	if isPrintable(c) {
		return string(rune(c))
	}
	return fmt.Sprintf("<%02x>", c)
}

func isPrintable(c byte) bool {
	return c >= 0x20 && c < 0x7f
}
