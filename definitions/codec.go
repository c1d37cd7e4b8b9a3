package definitions

import (
	"bytes"
	"io"
	"time"

	"github.com/calmh/xdr"
)

// EncodeXDR writes p in a compact, self-describing binary layout:
// version string, Unix-nanosecond UTC timestamp, tag bitset, then a
// length-prefixed sequence of Definition records. Field order within
// each record is fixed per §6.2: Definition 0-5, Signature 0-1,
// Pattern 0-1.
func (p *Package) EncodeXDR(w io.Writer) (int, error) {
	xw := xdr.NewWriter(w)
	xw.WriteString(p.Version)
	xw.WriteUint64(uint64(p.CreatedAt.UTC().UnixNano()))
	xw.WriteUint32(uint32(p.Tags))
	xw.WriteUint32(uint32(len(p.Definitions)))
	for _, d := range p.Definitions {
		encodeDefinition(xw, d)
	}
	return xw.Tot(), xw.Error()
}

// MarshalXDR returns the binary encoding of p.
func (p *Package) MarshalXDR() []byte {
	var buf bytes.Buffer
	_, _ = p.EncodeXDR(&buf)
	return buf.Bytes()
}

func encodeDefinition(xw *xdr.Writer, d *Definition) {
	xw.WriteString(d.FileType)                 // 0
	xw.WriteUint32(uint32(len(d.Extensions)))   // 1
	for _, ext := range d.Extensions {
		xw.WriteString(ext)
	}
	xw.WriteString(d.MimeType)  // 2
	xw.WriteString(d.Remarks)   // 3
	encodeSignature(xw, &d.Signature) // 4
	xw.WriteUint32(uint32(d.PriorityLevel)) // 5
}

func encodeSignature(xw *xdr.Writer, s *Signature) {
	xw.WriteUint32(uint32(len(s.Patterns))) // 0
	for _, p := range s.Patterns {
		encodePattern(xw, &p)
	}
	xw.WriteUint32(uint32(len(s.Strings))) // 1
	for _, str := range s.Strings {
		xw.WriteBytes(str)
	}
}

func encodePattern(xw *xdr.Writer, p *Pattern) {
	xw.WriteUint16(p.Position) // 0
	xw.WriteBytes(p.Data)      // 1
}

// DecodeXDR reads a Package previously written by EncodeXDR.
func DecodeXDR(r io.Reader) (*Package, error) {
	xr := xdr.NewReader(r)

	p := &Package{}
	p.Version = xr.ReadString()
	nanos := xr.ReadUint64()
	p.CreatedAt = time.Unix(0, int64(nanos)).UTC()
	p.Tags = Tag(xr.ReadUint32())

	count := xr.ReadUint32()
	p.Definitions = make([]*Definition, 0, count)
	for i := uint32(0); i < count; i++ {
		d, err := decodeDefinition(xr)
		if err != nil {
			return nil, err
		}
		p.Definitions = append(p.Definitions, d)
	}

	if err := xr.Error(); err != nil {
		return nil, err
	}
	return p, nil
}

// UnmarshalXDR decodes a Package from bs.
func UnmarshalXDR(bs []byte) (*Package, error) {
	return DecodeXDR(bytes.NewReader(bs))
}

func decodeDefinition(xr *xdr.Reader) (*Definition, error) {
	d := &Definition{}
	d.FileType = xr.ReadString()

	extCount := xr.ReadUint32()
	d.Extensions = make([]string, extCount)
	for i := range d.Extensions {
		d.Extensions[i] = xr.ReadString()
	}

	d.MimeType = xr.ReadString()
	d.Remarks = xr.ReadString()

	sig, err := decodeSignature(xr)
	if err != nil {
		return nil, err
	}
	d.Signature = sig

	d.PriorityLevel = int32(xr.ReadUint32())

	return d, xr.Error()
}

func decodeSignature(xr *xdr.Reader) (Signature, error) {
	var s Signature

	patCount := xr.ReadUint32()
	s.Patterns = make([]Pattern, patCount)
	for i := range s.Patterns {
		s.Patterns[i] = decodePattern(xr)
	}

	strCount := xr.ReadUint32()
	s.Strings = make([][]byte, strCount)
	for i := range s.Strings {
		s.Strings[i] = xr.ReadBytes()
	}

	return s, xr.Error()
}

func decodePattern(xr *xdr.Reader) Pattern {
	var p Pattern
	p.Position = xr.ReadUint16()
	p.Data = xr.ReadBytes()
	return p
}
