package board

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf16"
)

// A save stream is CellCount records in row-major order. Each record is a
// big-endian uint16 byte length, the cell text in Java modified UTF-8, and
// one flag byte. This is what java.io.DataOutputStream writeUTF and
// writeBoolean produce, so saves written by Java programs load here.
//
// Some of those programs stored the centred HTML label they displayed
// rather than the plain option. That wrapper is removed on load.
const (
	labelMarkupPrefix = "<html><style>h1 {text-align: center;}</style><h1>"
	labelMarkupSuffix = "</h1></html>"
)

// MarshalBinary serializes every cell's text and selection.
func (b *Board) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	for r := range Size {
		for c := range Size {
			cell := b.cells[r][c]
			text, err := encodeModifiedUTF8(cell.Text)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", Position{Row: r, Col: c}, err)
			}
			_ = binary.Write(&buf, binary.BigEndian, uint16(len(text)))
			buf.Write(text)
			if cell.Selected {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores cell texts and selections from data. The whole
// stream is validated before the board is touched. The free cell keeps its
// marker text and stays selected whatever the record says.
func (b *Board) UnmarshalBinary(data []byte) error {
	var decoded [Size][Size]Cell
	d := decoder{data: data}
	for r := range Size {
		for c := range Size {
			text, selected, err := d.record()
			if err != nil {
				return fmt.Errorf("%w: record %d: %w", ErrMalformedSave, r*Size+c, err)
			}
			decoded[r][c] = Cell{Text: stripLabelMarkup(text), Selected: selected}
		}
	}
	if rest := d.remaining(); rest > 0 {
		return fmt.Errorf("%w: %d trailing bytes after %d records", ErrMalformedSave, rest, CellCount)
	}

	for r := range Size {
		for c := range Size {
			if b.cells[r][c].Free {
				continue
			}
			b.cells[r][c].Text = decoded[r][c].Text
			b.cells[r][c].Selected = decoded[r][c].Selected
		}
	}
	return nil
}

func stripLabelMarkup(text string) string {
	if !strings.HasPrefix(text, labelMarkupPrefix) || !strings.HasSuffix(text, labelMarkupSuffix) ||
		len(text) < len(labelMarkupPrefix)+len(labelMarkupSuffix) {
		return text
	}
	return text[len(labelMarkupPrefix) : len(text)-len(labelMarkupSuffix)]
}

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

func (d *decoder) take(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, fmt.Errorf("truncated: want %d bytes at offset %d, have %d", n, d.off, d.remaining())
	}
	p := d.data[d.off : d.off+n]
	d.off += n
	return p, nil
}

func (d *decoder) record() (string, bool, error) {
	head, err := d.take(2)
	if err != nil {
		return "", false, err
	}
	raw, err := d.take(int(binary.BigEndian.Uint16(head)))
	if err != nil {
		return "", false, err
	}
	text, err := decodeModifiedUTF8(raw)
	if err != nil {
		return "", false, err
	}
	flag, err := d.take(1)
	if err != nil {
		return "", false, err
	}
	return text, flag[0] != 0, nil
}

// encodeModifiedUTF8 differs from UTF-8 in two ways: NUL takes two bytes and
// supplementary characters are written as a surrogate pair of three-byte
// sequences.
func encodeModifiedUTF8(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			out = appendUnit(out, uint16(hi))
			out = appendUnit(out, uint16(lo))
			continue
		}
		out = appendUnit(out, uint16(r))
	}
	if len(out) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d encoded bytes, limit %d", ErrTextTooLong, len(out), math.MaxUint16)
	}
	return out, nil
}

func appendUnit(out []byte, u uint16) []byte {
	switch {
	case u != 0 && u <= 0x7f:
		return append(out, byte(u))
	case u <= 0x7ff:
		return append(out, 0xc0|byte(u>>6), 0x80|byte(u&0x3f))
	default:
		return append(out, 0xe0|byte(u>>12), 0x80|byte((u>>6)&0x3f), 0x80|byte(u&0x3f))
	}
}

func decodeModifiedUTF8(p []byte) (string, error) {
	units := make([]uint16, 0, len(p))
	for i := 0; i < len(p); {
		b0 := p[i]
		switch {
		case b0&0x80 == 0:
			units = append(units, uint16(b0))
			i++
		case b0&0xe0 == 0xc0:
			if i+1 >= len(p) || p[i+1]&0xc0 != 0x80 {
				return "", fmt.Errorf("bad two-byte sequence at %d", i)
			}
			units = append(units, uint16(b0&0x1f)<<6|uint16(p[i+1]&0x3f))
			i += 2
		case b0&0xf0 == 0xe0:
			if i+2 >= len(p) || p[i+1]&0xc0 != 0x80 || p[i+2]&0xc0 != 0x80 {
				return "", fmt.Errorf("bad three-byte sequence at %d", i)
			}
			units = append(units, uint16(b0&0x0f)<<12|uint16(p[i+1]&0x3f)<<6|uint16(p[i+2]&0x3f))
			i += 3
		default:
			return "", fmt.Errorf("bad lead byte 0x%02x at %d", b0, i)
		}
	}
	return string(utf16.Decode(units)), nil
}
