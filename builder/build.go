package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/D-Naveenz/rheo-storage/definitions"
	"github.com/D-Naveenz/rheo-storage/internal/logx"
	"github.com/D-Naveenz/rheo-storage/mimeclean"
	"github.com/D-Naveenz/rheo-storage/ops"
	"github.com/D-Naveenz/rheo-storage/rheoerr"
	"github.com/D-Naveenz/rheo-storage/trid"
)

// BuildReport summarizes one Build run: the emitted package plus
// where every artifact landed and the per-bucket counts logged along
// the way.
type BuildReport struct {
	Package             *definitions.Package
	BinaryPath          string
	JSONPath            string
	ValidLogPath        string
	InvalidMimeLogPath  string
	FilteredLogPath     string
	ValidCount          int
	InvalidMimeCount    int
	FilteredCount       int
}

// Build runs Extract (C2) -> Transform (MIME cleanse + extension
// filter + priority sort) -> Load (binary + JSON package, bucket
// logs) per spec §4.3.
func Build(ctx context.Context, cfg Config, opts ...Option) (*BuildReport, error) {
	const op = "builder.Build"

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	b := &buildRun{cfg: cfg, log: logx.Default}
	for _, opt := range opts {
		opt(b)
	}

	if err := checkDone(ctx); err != nil {
		return nil, err
	}

	raw, err := b.extract()
	if err != nil {
		return nil, err
	}
	b.log.Infof("builder: extracted %d TrID definitions", len(raw))

	allow, err := mimeclean.NewAllowList(cfg.AllowListPath)
	if err != nil {
		return nil, err
	}

	if err := checkDone(ctx); err != nil {
		return nil, err
	}

	result := transform(raw, allow)
	b.log.Infof("builder: transform produced %d valid, %d invalid-mime, %d filtered",
		len(result.valid), len(result.invalidMimeTypes), len(result.filteredInvalidDefinitions))

	pkg := &definitions.Package{
		Version:     cfg.Version,
		CreatedAt:   b.now(),
		Tags:        definitions.TagTrID,
		Definitions: result.valid,
	}

	report, err := b.load(pkg, result)
	if err != nil {
		return nil, rheoerr.New(rheoerr.IO, op, cfg.OutputDir, err)
	}
	return report, nil
}

type buildRun struct {
	cfg Config
	log *logx.Logger
	clk func() time.Time
}

func (b *buildRun) now() time.Time {
	if b.clk != nil {
		return b.clk()
	}
	return time.Now().UTC()
}

// Option configures a Build run.
type Option func(*buildRun)

// WithLogger overrides the default logger.
func WithLogger(l *logx.Logger) Option {
	return func(b *buildRun) { b.log = l }
}

// WithClock overrides the timestamp source (tests only).
func WithClock(clk func() time.Time) Option {
	return func(b *buildRun) { b.clk = clk }
}

func checkDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return rheoerr.New(rheoerr.Cancelled, "builder.Build", "", ctx.Err())
	default:
		return nil
	}
}

func (b *buildRun) extract() ([]trid.TrIDDefinition, error) {
	const op = "builder.extract"
	f, err := os.Open(b.cfg.TrIDPackagePath)
	if err != nil {
		return nil, rheoerr.FromOS(op, b.cfg.TrIDPackagePath, err)
	}
	defer f.Close()

	defs, err := trid.Parse(f)
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func (b *buildRun) load(pkg *definitions.Package, result transformResult) (*BuildReport, error) {
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(b.cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	exists := func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	}

	binaryPath := ops.ResolveFileConflict(filepath.Join(b.cfg.OutputDir, b.cfg.PackageName+".rpkg"), exists)
	if err := os.WriteFile(binaryPath, pkg.MarshalXDR(), 0o644); err != nil {
		return nil, err
	}

	jsonPath := ops.ResolveFileConflict(filepath.Join(b.cfg.OutputDir, b.cfg.PackageName+".json"), exists)
	jsonBytes, err := json.MarshalIndent(packageJSON(pkg), "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(jsonPath, jsonBytes, 0o644); err != nil {
		return nil, err
	}

	stamp := b.now().Format("20060102")
	validLogPath, err := b.writeBucketLog("ValidDefinitions", stamp, validEntries(result.valid))
	if err != nil {
		return nil, err
	}
	invalidMimeLogPath, err := b.writeBucketLog("InvalidMimeTypes", stamp, result.invalidMimeTypes)
	if err != nil {
		return nil, err
	}
	filteredLogPath, err := b.writeBucketLog("FilteredInvalidDefinitions", stamp, result.filteredInvalidDefinitions)
	if err != nil {
		return nil, err
	}

	return &BuildReport{
		Package:            pkg,
		BinaryPath:         binaryPath,
		JSONPath:           jsonPath,
		ValidLogPath:       validLogPath,
		InvalidMimeLogPath: invalidMimeLogPath,
		FilteredLogPath:    filteredLogPath,
		ValidCount:         len(result.valid),
		InvalidMimeCount:   len(result.invalidMimeTypes),
		FilteredCount:      len(result.filteredInvalidDefinitions),
	}, nil
}

func validEntries(defs []*definitions.Definition) []logEntry {
	out := make([]logEntry, len(defs))
	for i, d := range defs {
		out[i] = logEntry{fileType: d.FileType, mimeType: d.MimeType, reason: fmt.Sprintf("priority_level=%d", d.PriorityLevel)}
	}
	return out
}

func (b *buildRun) writeBucketLog(bucket, stamp string, entries []logEntry) (string, error) {
	exists := func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	}
	path := ops.ResolveFileConflict(filepath.Join(b.cfg.LogDir, fmt.Sprintf("%s_%s.log", bucket, stamp)), exists)

	var body []byte
	for _, e := range entries {
		body = append(body, fmt.Sprintf("%s\t%s\t%s\n", e.fileType, e.mimeType, e.reason)...)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type packageJSONDoc struct {
	Version          string                   `json:"version"`
	CreatedAt        time.Time                `json:"created_at"`
	Tags             definitions.Tag          `json:"tags"`
	TotalDefinitions int                      `json:"total_definitions"`
	TotalMIMETypes   int                      `json:"total_mime_types"`
	Definitions      []*definitions.Definition `json:"definitions"`
}

func packageJSON(p *definitions.Package) packageJSONDoc {
	return packageJSONDoc{
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		Tags:             p.Tags,
		TotalDefinitions: p.TotalDefinitions(),
		TotalMIMETypes:   p.TotalMIMETypes(),
		Definitions:      p.Definitions,
	}
}
