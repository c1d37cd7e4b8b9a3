// Package mimeclean normalizes and fuzzy-matches MIME type strings
// extracted from third-party TrID definitions against an allow-list
// loaded from an external CSV dataset.
package mimeclean

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

// misspelledPrefixes maps known-bad prefixes (observed in real TrID
// data) to their correction. Applied before punctuation stripping.
var misspelledPrefixes = map[string]string{
	"applicaiton":  "application",
	"aapplication": "application",
	"aplication":   "application",
	"tex/":         "text/",
}

const trimPunct = ";,.\""

var lowerCaser = cases.Lower(language.Und)

// Clean runs the normalization pipeline from spec §4.2: trim, fix
// known misspelled prefixes, strip leading/trailing punctuation,
// lowercase. Empty input is rejected as InvalidArgument.
func Clean(raw string) (string, error) {
	const op = "mimeclean.Clean"
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", rheoerr.New(rheoerr.InvalidArgument, op, "", nil)
	}

	for bad, good := range misspelledPrefixes {
		if strings.HasPrefix(s, bad) {
			s = good + s[len(bad):]
			break
		}
	}

	s = strings.Trim(s, trimPunct)
	s = strings.TrimSpace(s)
	if s == "" {
		return "", rheoerr.New(rheoerr.InvalidArgument, op, raw, nil)
	}

	s = lowerCaser.String(s)
	return s, nil
}

// AllowList is a loaded set of canonical MIME strings a Definition's
// MimeType must match (exactly or fuzzily) to be considered valid.
type AllowList struct {
	canonical map[string]string // lowercased -> canonical casing
	ordered   []string          // lowercased, for deterministic fuzzy scans
}

// NewAllowList reads a CSV allow-list (one MIME string per row; a
// header row is tolerated and skipped if it doesn't look like a MIME
// string).
func NewAllowList(path string) (*AllowList, error) {
	const op = "mimeclean.NewAllowList"
	f, err := os.Open(path)
	if err != nil {
		return nil, rheoerr.FromOS(op, path, err)
	}
	defer f.Close()
	return newAllowListFromReader(f)
}

func newAllowListFromReader(r io.Reader) (*AllowList, error) {
	al := &AllowList{canonical: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		// Tolerate a simple single-column CSV; take the first field.
		if idx := strings.IndexByte(line, ','); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if !strings.Contains(line, "/") {
			continue // header row or garbage line
		}
		lower := strings.ToLower(line)
		if _, exists := al.canonical[lower]; !exists {
			al.canonical[lower] = line
			al.ordered = append(al.ordered, lower)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, rheoerr.New(rheoerr.IO, "mimeclean.NewAllowList", "", err)
	}
	return al, nil
}

const fuzzyThreshold = 0.70

// Match looks up cleaned (already passed through Clean) against the
// allow-list: an exact case-insensitive match wins outright; failing
// that, a weighted Levenshitein similarity across type/subtype is
// tried. ok is false if neither strategy clears the threshold.
func (al *AllowList) Match(cleaned string) (canonical string, ok bool) {
	lower := strings.ToLower(cleaned)
	if c, exists := al.canonical[lower]; exists {
		return c, true
	}

	typ, subtype, hasSlash := strings.Cut(cleaned, "/")
	if !hasSlash {
		return "", false
	}
	typ = strings.ToLower(typ)
	subtype = strings.ToLower(subtype)

	bestScore := 0.0
	bestCanonical := ""
	for _, candidateLower := range al.ordered {
		cTyp, cSub, ok := strings.Cut(candidateLower, "/")
		if !ok {
			continue
		}
		score := 0.3*similarity(typ, cTyp) + 0.7*similarity(subtype, cSub)
		if score > bestScore {
			bestScore = score
			bestCanonical = al.canonical[candidateLower]
		}
	}

	if bestScore > fuzzyThreshold {
		return bestCanonical, true
	}
	return "", false
}

// similarity implements sim(a,b) = 1 - levenshtein(a,b)/max(|a|,|b|).
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	dist := edlib.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
