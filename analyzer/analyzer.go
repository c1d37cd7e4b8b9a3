// Package analyzer implements content-based file-type identification:
// reading a bounded header window, selecting pattern candidates,
// scoring and ranking matches into a confidence stack, and falling
// back to a text/binary heuristic when nothing matches.
package analyzer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/D-Naveenz/rheo-storage/confidence"
	"github.com/D-Naveenz/rheo-storage/definitions"
	"github.com/D-Naveenz/rheo-storage/index"
	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

const (
	// ScanWindow is the number of header bytes read for pattern
	// matching.
	ScanWindow = 8192
	// PatternHeaderWeight is the per-byte weight for a pattern
	// anchored at position 0.
	PatternHeaderWeight = 1000
	// PatternBodyWeight is the per-byte weight for a pattern anchored
	// elsewhere.
	PatternBodyWeight = 100
	// StringWeight is the per-byte weight for a matched signature
	// string.
	StringWeight = 500
	// MaxBodyScan bounds how much of the file body is scanned for
	// signature strings.
	MaxBodyScan = 10 * 1024 * 1024
	bodyHalf    = 5 * 1024 * 1024
)

// AnalysisResult is the outcome of analyzing one file or stream, per
// spec §3: a confidence stack of candidate definitions plus derived,
// frequency-weighted stacks over extensions and MIME types.
type AnalysisResult struct {
	Definitions *confidence.Stack[*definitions.Definition]
	Extensions  *confidence.Stack[string]
	MimeTypes   *confidence.Stack[string]
	IsEmpty     bool
}

func emptyResult() AnalysisResult {
	return AnalysisResult{
		Definitions: confidence.NewStack[*definitions.Definition](),
		Extensions:  confidence.NewStack[string](),
		MimeTypes:   confidence.NewStack[string](),
		IsEmpty:     true,
	}
}

// deriveFrom pushes every extension/MIME occurrence from the
// definitions stack onto the extension/MIME stacks, each weighted by
// the definition's percentage share (truncated to an integer, at
// least 1).
func deriveFrom(defs *confidence.Stack[*definitions.Definition]) (*confidence.Stack[string], *confidence.Stack[string]) {
	extStack := confidence.NewStack[string]()
	mimeStack := confidence.NewStack[string]()

	for _, c := range defs.Enumerate() {
		weight := int(c.Value)
		if weight == 0 {
			weight = 1
		}
		for _, ext := range c.Subject.Extensions {
			extStack.Push(ext, weight)
		}
		if c.Subject.MimeType != "" {
			mimeStack.Push(c.Subject.MimeType, weight)
		}
	}
	return extStack, mimeStack
}

// Analyzer holds an immutable definitions package and its byte
// indices; safe for concurrent use across goroutines since neither is
// ever mutated after construction.
type Analyzer struct {
	pkg     *definitions.Package
	indices *index.Indices
}

// New builds an Analyzer over pkg, deriving its indices.
func New(pkg *definitions.Package) *Analyzer {
	return &Analyzer{pkg: pkg, indices: index.Build(pkg)}
}

// NewWithIndices reuses a pre-built Indices, e.g. shared across
// multiple Analyzers over the same package.
func NewWithIndices(pkg *definitions.Package, idx *index.Indices) *Analyzer {
	return &Analyzer{pkg: pkg, indices: idx}
}

// Analyze reads path, per spec §4.5. A missing path or zero-size file
// yields an empty result, never an error for that specific case.
func (a *Analyzer) Analyze(ctx context.Context, path string, checkStrings bool) (AnalysisResult, error) {
	const op = "analyzer.Analyze"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return emptyResult(), nil
		}
		return AnalysisResult{}, rheoerr.FromOS(op, path, err)
	}
	if info.Size() == 0 {
		return emptyResult(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return AnalysisResult{}, rheoerr.FromOS(op, path, err)
	}
	defer f.Close()

	return a.analyzeReaderAt(ctx, f, info.Size(), checkStrings, fileExtension(path))
}

// AnalyzeReader analyzes an arbitrary seekable stream of known size,
// for callers that don't have a filesystem path (spec §6.3). The
// fallback classifier has no extension to preserve in this case.
func (a *Analyzer) AnalyzeReader(ctx context.Context, r io.ReaderAt, size int64, checkStrings bool) (AnalysisResult, error) {
	if size == 0 {
		return emptyResult(), nil
	}
	return a.analyzeReaderAt(ctx, r, size, checkStrings, "")
}

func fileExtension(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimPrefix(ext, ".")
}

func (a *Analyzer) analyzeReaderAt(ctx context.Context, r io.ReaderAt, size int64, checkStrings bool, extension string) (AnalysisResult, error) {
	const op = "analyzer.Analyze"

	windowSize := ScanWindow
	if int64(windowSize) > size {
		windowSize = int(size)
	}
	window := make([]byte, windowSize)
	if _, err := r.ReadAt(window, 0); err != nil && err != io.EOF {
		return AnalysisResult{}, rheoerr.New(rheoerr.IO, op, "", err)
	}
	window = bytes.TrimRight(window, "\x00")

	if len(window) == 0 {
		return emptyResult(), nil
	}

	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, rheoerr.New(rheoerr.Cancelled, op, "", err)
	}

	candidates := a.selectCandidates(window)

	stack := confidence.NewStack[*definitions.Definition]()
	for _, def := range candidates {
		score, ok := a.score(def, window, r, size, checkStrings)
		if !ok || score <= 0 {
			continue
		}
		stack.Push(def, score)
	}

	if stack.Len() == 0 {
		fallback := classifyFallback(window, extension)
		stack.Push(fallback, 100)
	}

	extStack, mimeStack := deriveFrom(stack)
	return AnalysisResult{
		Definitions: stack,
		Extensions:  extStack,
		MimeTypes:   mimeStack,
		IsEmpty:     false,
	}, nil
}

// selectCandidates unions the catch-all bucket with every pattern
// whose declared position matches its offset in the window, then
// validates that all of a definition's patterns match before keeping
// it as a candidate.
func (a *Analyzer) selectCandidates(window []byte) []*definitions.Definition {
	seen := make(map[*definitions.Definition]struct{})
	var out []*definitions.Definition

	addIfValid := func(def *definitions.Definition) {
		if _, already := seen[def]; already {
			return
		}
		if allPatternsMatch(def, window) {
			seen[def] = struct{}{}
			out = append(out, def)
		}
	}

	for _, pdm := range a.indices.AllPatternsByteMap[index.CatchAll] {
		addIfValid(pdm.Definition)
	}

	for i, b := range window {
		for _, pdm := range a.indices.AllPatternsByteMap[int16(b)] {
			if pdm.Pattern == nil || int(pdm.Pattern.Position) != i {
				continue
			}
			addIfValid(pdm.Definition)
		}
	}

	return out
}

func allPatternsMatch(def *definitions.Definition, window []byte) bool {
	for _, p := range def.Signature.Patterns {
		end := int(p.Position) + len(p.Data)
		if end > len(window) {
			return false
		}
		if !bytes.Equal(window[p.Position:end], p.Data) {
			return false
		}
	}
	return true
}

// score sums pattern weights for def, adding string-match weight when
// checkStrings is requested. A pattern mismatch at scoring time
// yields a score of 0.
func (a *Analyzer) score(def *definitions.Definition, window []byte, r io.ReaderAt, size int64, checkStrings bool) (int, bool) {
	score := 0
	for _, p := range def.Signature.Patterns {
		end := int(p.Position) + len(p.Data)
		if end > len(window) || !bytes.Equal(window[p.Position:end], p.Data) {
			return 0, false
		}
		weight := PatternBodyWeight
		if p.Position == 0 {
			weight = PatternHeaderWeight
		}
		score += len(p.Data) * weight
	}

	if checkStrings && len(def.Signature.Strings) > 0 {
		body, err := readBodySample(r, size)
		if err != nil {
			return 0, false
		}
		for _, s := range def.Signature.Strings {
			if len(s) == 0 {
				continue
			}
			if bytes.Contains(body, s) {
				score += len(s) * StringWeight
			}
		}
	}

	return score, true
}

// readBodySample implements the split-sample policy from spec §4.5:
// for files under MaxBodyScan, the whole body; otherwise the first
// and last halves joined by '|'.
func readBodySample(r io.ReaderAt, size int64) ([]byte, error) {
	if size <= MaxBodyScan {
		buf := make([]byte, size)
		if _, err := r.ReadAt(buf, 0); err != nil && err != io.EOF {
			return nil, err
		}
		return buf, nil
	}

	head := make([]byte, bodyHalf)
	if _, err := r.ReadAt(head, 0); err != nil && err != io.EOF {
		return nil, err
	}
	tail := make([]byte, bodyHalf)
	if _, err := r.ReadAt(tail, size-bodyHalf); err != nil && err != io.EOF {
		return nil, err
	}

	out := make([]byte, 0, len(head)+1+len(tail))
	out = append(out, head...)
	out = append(out, '|')
	out = append(out, tail...)
	return out, nil
}
