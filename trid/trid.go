// Package trid parses the RIFF-structured TrID definitions package
// (the third-party source catalog ingested by the definitions
// builder) into a flat list of TrIDDefinition records, and organizes
// them by the first byte of their anchoring pattern.
package trid

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/D-Naveenz/rheo-storage/definitions"
	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

// TrIDDefinition is the flat record produced by the RIFF reader,
// before MIME cleansing and priority-level assignment (that happens
// in the builder).
type TrIDDefinition struct {
	FileType   string
	Extensions []string // already split on '/', lowercased
	MimeType   string
	Remarks    string
	Tag        int32
	FNum       int32
	URL        string
	User       string
	Mail       string
	Home       string
	Patterns   []definitions.Pattern
	Strings    [][]byte
}

const (
	idRIFF = "RIFF"
	idTRID = "TRID"
	idDEF  = "DEF "
	idDATA = "DATA"
	idINFO = "INFO"
	idPATT = "PATT"
	idSTRN = "STRN"
)

// info record type IDs, stored as 4-byte ASCII but compared as
// uint32 once read, per §4.1.
var (
	infoTYPE = be4("TYPE")
	infoEXT  = be4("EXT ")
	infoTAG  = be4("TAG ")
	infoMIME = be4("MIME")
	infoNAME = be4("NAME")
	infoFNUM = be4("FNUM")
	infoRURL = be4("RURL")
	infoUSER = be4("USER")
	infoMAIL = be4("MAIL")
	infoHOME = be4("HOME")
	infoREM  = be4("REM ")
)

func be4(s string) uint32 {
	return binary.LittleEndian.Uint32([]byte(s))
}

// reader wraps a byte slice with bounds-checked little-endian cursors.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int { return len(r.buf) - r.pos }

func (r *reader) need(n int) error {
	if n < 0 || r.remaining() < n {
		return fmt.Errorf("trid: truncated chunk: need %d bytes, have %d", n, r.remaining())
	}
	return nil
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) id4() (string, error) {
	b, err := r.bytes(4)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// chunk is a {id, length, payload} tuple per §4.1.
type chunk struct {
	id      string
	payload []byte
}

func (r *reader) chunk() (chunk, error) {
	id, err := r.id4()
	if err != nil {
		return chunk{}, err
	}
	length, err := r.u32()
	if err != nil {
		return chunk{}, err
	}
	payload, err := r.bytes(int(length))
	if err != nil {
		return chunk{}, err
	}
	return chunk{id: id, payload: payload}, nil
}

// Parse reads a complete RIFF TrID package from r and returns the
// flat definition list. It fails with rheoerr.InvalidFormat if the
// leading chunk IDs don't match, or if any declared length overruns
// the remaining payload.
func Parse(r io.Reader) ([]TrIDDefinition, error) {
	const op = "trid.Parse"
	br := bufio.NewReader(r)
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, rheoerr.New(rheoerr.IO, op, "", err)
	}

	rd := &reader{buf: data}

	top, err := rd.chunk()
	if err != nil || top.id != idRIFF {
		return nil, rheoerr.New(rheoerr.InvalidFormat, op, "", fmt.Errorf("missing RIFF chunk"))
	}

	inner := &reader{buf: top.payload}
	tridID, err := inner.id4()
	if err != nil || tridID != idTRID {
		return nil, rheoerr.New(rheoerr.InvalidFormat, op, "", fmt.Errorf("missing TRID form type"))
	}

	// 12-byte info block; bytes 8..12 hold definition_count (u32 LE).
	infoBlock, err := inner.bytes(12)
	if err != nil {
		return nil, rheoerr.New(rheoerr.InvalidFormat, op, "", err)
	}
	defCount := binary.LittleEndian.Uint32(infoBlock[8:12])

	defsLength, err := inner.u32()
	if err != nil {
		return nil, rheoerr.New(rheoerr.InvalidFormat, op, "", err)
	}
	defsPayload, err := inner.bytes(int(defsLength))
	if err != nil {
		return nil, rheoerr.New(rheoerr.InvalidFormat, op, "", err)
	}

	out := make([]TrIDDefinition, 0, defCount)
	dr := &reader{buf: defsPayload}
	for dr.remaining() > 0 {
		c, err := dr.chunk()
		if err != nil {
			return nil, rheoerr.New(rheoerr.InvalidFormat, op, "", err)
		}
		if c.id != idDEF {
			continue // tolerate unknown top-level chunks by skipping
		}
		def, err := parseDefChunk(c.payload)
		if err != nil {
			return nil, rheoerr.New(rheoerr.InvalidFormat, op, "", err)
		}
		out = append(out, def)
	}

	return out, nil
}

func parseDefChunk(payload []byte) (TrIDDefinition, error) {
	var def TrIDDefinition
	rd := &reader{buf: payload}

	for rd.remaining() > 0 {
		c, err := rd.chunk()
		if err != nil {
			return def, err
		}
		switch c.id {
		case idDATA:
			if err := parseDataChunk(c.payload, &def); err != nil {
				return def, err
			}
		case idINFO:
			if err := parseInfoChunk(c.payload, &def); err != nil {
				return def, err
			}
		default:
			// unknown subchunk: already skipped by chunk() bounds
		}
	}
	return def, nil
}

func parseDataChunk(payload []byte, def *TrIDDefinition) error {
	rd := &reader{buf: payload}
	for rd.remaining() > 0 {
		c, err := rd.chunk()
		if err != nil {
			return err
		}
		switch c.id {
		case idPATT:
			patterns, err := parsePatterns(c.payload)
			if err != nil {
				return err
			}
			def.Patterns = patterns
		case idSTRN:
			strs, err := parseStrings(c.payload)
			if err != nil {
				return err
			}
			def.Strings = strs
		}
	}
	return nil
}

func parsePatterns(payload []byte) ([]definitions.Pattern, error) {
	rd := &reader{buf: payload}
	count, err := rd.u16()
	if err != nil {
		return nil, err
	}
	out := make([]definitions.Pattern, 0, count)
	for i := uint16(0); i < count; i++ {
		position, err := rd.u16()
		if err != nil {
			return nil, err
		}
		length, err := rd.u16()
		if err != nil {
			return nil, err
		}
		data, err := rd.bytes(int(length))
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		out = append(out, definitions.Pattern{Position: position, Data: cp})
	}
	return out, nil
}

func parseStrings(payload []byte) ([][]byte, error) {
	rd := &reader{buf: payload}
	count, err := rd.u16()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, count)
	for i := uint16(0); i < count; i++ {
		length, err := rd.u32()
		if err != nil {
			return nil, err
		}
		data, err := rd.bytes(int(length))
		if err != nil {
			return nil, err
		}
		cp := make([]byte, len(data))
		copy(cp, data)
		out = append(out, cp)
	}
	return out, nil
}

func parseInfoChunk(payload []byte, def *TrIDDefinition) error {
	rd := &reader{buf: payload}
	for rd.remaining() > 0 {
		typ, err := rd.u32()
		if err != nil {
			return err
		}
		length, err := rd.u16()
		if err != nil {
			return err
		}
		data, err := rd.bytes(int(length))
		if err != nil {
			return err
		}
		switch typ {
		case infoTYPE:
			def.FileType = string(data)
		case infoEXT:
			def.Extensions = splitExtensions(string(data))
		case infoMIME:
			def.MimeType = string(data)
		case infoNAME:
			// vendor/name record; folded into Remarks for traceability
			appendRemark(def, string(data))
		case infoRURL:
			def.URL = string(data)
		case infoUSER:
			def.User = string(data)
		case infoMAIL:
			def.Mail = string(data)
		case infoHOME:
			def.Home = string(data)
		case infoREM:
			appendRemark(def, string(data))
		case infoTAG:
			def.Tag = decodeI32(data)
		case infoFNUM:
			def.FNum = decodeI32(data)
		default:
			// unknown INFO record type: ignored per §4.1 tolerance
		}
	}
	return nil
}

func appendRemark(def *TrIDDefinition, s string) {
	if def.Remarks == "" {
		def.Remarks = s
		return
	}
	def.Remarks = def.Remarks + "; " + s
}

func decodeI32(data []byte) int32 {
	if len(data) < 4 {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(data))
}

func splitExtensions(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == '/' {
			if i > start {
				out = append(out, toLowerASCII(raw[start:i]))
			}
			start = i + 1
		}
	}
	return out
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// OrganizeByFirstByte groups definitions by the first byte of their
// lowest-position pattern, when that pattern starts at position 0.
// Definitions without a position-0 pattern land in bucket -1 (the
// catch-all).
func OrganizeByFirstByte(defs []TrIDDefinition) map[int16][]TrIDDefinition {
	buckets := make(map[int16][]TrIDDefinition)
	for _, d := range defs {
		key := int16(-1)
		if p, ok := lowestPositionPattern(d.Patterns); ok && p.Position == 0 && len(p.Data) > 0 {
			key = int16(p.Data[0])
		}
		buckets[key] = append(buckets[key], d)
	}
	return buckets
}

func lowestPositionPattern(patterns []definitions.Pattern) (definitions.Pattern, bool) {
	if len(patterns) == 0 {
		return definitions.Pattern{}, false
	}
	lowest := patterns[0]
	for _, p := range patterns[1:] {
		if p.Position < lowest.Position {
			lowest = p
		}
	}
	return lowest, true
}
