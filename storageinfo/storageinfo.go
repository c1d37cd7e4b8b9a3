// Package storageinfo provides platform-adapted filesystem metadata:
// attributes, size, timestamps, ownership, and symlink targets,
// behind a single InfoProvider capability (spec §9 Design Notes).
package storageinfo

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/D-Naveenz/rheo-storage/analyzer"
	"github.com/D-Naveenz/rheo-storage/confidence"
	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

// Attribute is a bitset over filesystem attributes, mapped from
// platform-native bits (Unix mode bits on Unix, file attribute flags
// on Windows).
type Attribute uint32

const (
	AttrNone       Attribute = 0
	AttrReadOnly   Attribute = 1 << 0
	AttrDirectory  Attribute = 1 << 1
	AttrRegular    Attribute = 1 << 2
	AttrSymlink    Attribute = 1 << 3
	AttrFIFO       Attribute = 1 << 4
	AttrSocket     Attribute = 1 << 5
	AttrCharDevice Attribute = 1 << 6
	AttrBlockDevice Attribute = 1 << 7
	AttrHidden     Attribute = 1 << 8
)

// Record is the uniform metadata snapshot every InfoProvider
// implementation produces.
type Record struct {
	Path          string
	DisplayName   string
	Attributes    Attribute
	Size          int64
	CreationTime  time.Time
	LastWriteTime time.Time
	LastAccess    time.Time
	IsSymlink     bool
	LinkTarget    string

	// Unix-specific; zero on platforms without these concepts.
	OwnerID uint32
	GroupID uint32
	Mode    uint32

	// Windows-specific; empty on platforms without these concepts.
	OwnerSID     string
	OwnerDisplay string
	TypeName     string
}

// InfoProvider is the single-method capability abstracting over
// {Windows, Linux, macOS} stat retrieval. Access failures degrade
// gracefully: permission errors surface as -1 counts/0 size further
// up the stack rather than aborting a whole directory walk; missing
// paths are reported as rheoerr.NotFound.
type InfoProvider interface {
	Stat(path string) (Record, error)
}

// Default is the platform-appropriate InfoProvider, selected at
// package init by build tag (see storageinfo_linux.go /
// storageinfo_darwin.go / storageinfo_windows.go /
// storageinfo_other.go).
var Default InfoProvider = newPlatformProvider()

// FileInformation is a snapshot of a regular file, including its
// identification report. The report is computed lazily and cached on
// first call to Identify.
type FileInformation struct {
	Record
	Extension string

	analyzer *analyzer.Analyzer
	report   *analyzer.AnalysisResult
}

// NewFileInformation wraps a Record with file-specific derived
// fields. a may be nil if content identification is not needed.
func NewFileInformation(rec Record, a *analyzer.Analyzer) *FileInformation {
	ext := filepath.Ext(rec.Path)
	if len(ext) > 0 {
		ext = ext[1:]
	}
	return &FileInformation{Record: rec, Extension: ext, analyzer: a}
}

// Identify runs (and caches) content-based identification against the
// wrapped path.
func (f *FileInformation) Identify(ctx context.Context, checkStrings bool) (analyzer.AnalysisResult, error) {
	if f.report != nil {
		return *f.report, nil
	}
	if f.analyzer == nil {
		return analyzer.AnalysisResult{}, rheoerr.New(rheoerr.InvalidState, "storageinfo.Identify", f.Path, nil)
	}
	result, err := f.analyzer.Analyze(ctx, f.Path, checkStrings)
	if err != nil {
		return analyzer.AnalysisResult{}, err
	}
	f.report = &result
	return result, nil
}

// ActualExtension returns the top extension confidence from the
// cached identification report, or a zero-value Confidence if
// Identify has not been called yet.
func (f *FileInformation) ActualExtension() confidence.Confidence[string] {
	return topOrZero(f.report, func(r *analyzer.AnalysisResult) *confidence.Stack[string] { return r.Extensions })
}

// MimeType returns the top MIME confidence from the cached
// identification report, or a zero-value Confidence if Identify has
// not been called yet.
func (f *FileInformation) MimeType() confidence.Confidence[string] {
	return topOrZero(f.report, func(r *analyzer.AnalysisResult) *confidence.Stack[string] { return r.MimeTypes })
}

func topOrZero(report *analyzer.AnalysisResult, pick func(*analyzer.AnalysisResult) *confidence.Stack[string]) confidence.Confidence[string] {
	if report == nil {
		return confidence.Confidence[string]{}
	}
	entries := pick(report).Enumerate()
	if len(entries) == 0 {
		return confidence.Confidence[string]{}
	}
	return entries[0]
}

// DirectoryInformation is a snapshot of a directory. Size, FileCount,
// and DirectoryCount are computed on demand by Information(), not
// cached at construction — per the Open Question resolution in spec
// §9 Design Notes.
type DirectoryInformation struct {
	Record
}

// DirectorySnapshot is the recursive, on-demand computation behind
// DirectoryInformation's derived fields.
type DirectorySnapshot struct {
	FileCount      int64
	DirectoryCount int64
	Size           int64
}

// Information walks the directory tree rooted at d.Path and returns a
// fresh recursive snapshot. Permission errors on individual entries
// are skipped rather than aborting the walk, consistent with the
// graceful-degradation policy in spec §4.8.
func (d *DirectoryInformation) Information() DirectorySnapshot {
	var snap DirectorySnapshot
	_ = filepath.WalkDir(d.Path, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil // skip, don't abort
		}
		if path == d.Path {
			return nil
		}
		if entry.IsDir() {
			snap.DirectoryCount++
			return nil
		}
		snap.FileCount++
		if fi, err := entry.Info(); err == nil {
			snap.Size += fi.Size()
		}
		return nil
	})
	return snap
}
