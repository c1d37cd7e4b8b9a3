package analyzer

import (
	"unicode/utf8"

	"github.com/D-Naveenz/rheo-storage/definitions"
)

// classifyFallback implements spec §4.6: when no signature matched a
// non-empty header window, classify the buffer as text or binary
// using a BOM check plus byte-class ratios, and synthesize a minimal
// Definition describing the result. extension is the file's actual
// extension (no leading dot); when empty, it defaults to txt/bin per
// the classification.
func classifyFallback(window []byte, extension string) *definitions.Definition {
	if isText(window) {
		ext := extension
		if ext == "" {
			ext = "txt"
		}
		return &definitions.Definition{
			FileType:      "Plain Text",
			Extensions:    []string{ext},
			MimeType:      "text/plain",
			PriorityLevel: -1000,
		}
	}
	ext := extension
	if ext == "" {
		ext = "bin"
	}
	return &definitions.Definition{
		FileType:      "Binary Data",
		Extensions:    []string{ext},
		MimeType:      "application/octet-stream",
		PriorityLevel: -1000,
	}
}

var boms = [][]byte{
	{0xEF, 0xBB, 0xBF},             // UTF-8
	{0x00, 0x00, 0xFE, 0xFF},       // UTF-32 BE
	{0xFF, 0xFE, 0x00, 0x00},       // UTF-32 LE (before UTF-16 LE, which shares its first two bytes)
	{0xFF, 0xFE},                   // UTF-16 LE
	{0xFE, 0xFF},                   // UTF-16 BE
}

func hasBOM(window []byte) bool {
	for _, bom := range boms {
		if len(window) >= len(bom) && bytesEqual(window[:len(bom)], bom) {
			return true
		}
	}
	return false
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func isText(window []byte) bool {
	if hasBOM(window) {
		return true
	}

	var nulls, control, printable, extended int
	for _, b := range window {
		switch {
		case b == 0:
			nulls++
		case b == '\t' || b == '\n' || b == '\r':
			printable++
		case b < 32 || b == 127:
			control++
		case b >= 32 && b <= 126:
			printable++
		default:
			extended++
		}
	}

	total := len(window)
	if total == 0 {
		return true
	}

	if float64(nulls)/float64(total) > 0.01 {
		return false
	}
	if float64(control) > float64(printable)/2 {
		return false
	}
	if extended > 0 && isValidUTF8(window) {
		return true
	}
	if float64(printable+extended)/float64(total) > 0.75 {
		return true
	}
	return false
}

func isValidUTF8(window []byte) bool {
	return utf8.Valid(window)
}
