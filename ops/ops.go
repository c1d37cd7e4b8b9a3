// Package ops implements the instrumented file/directory operations
// engine: streamed copy/move/rename/delete/write with progress
// reporting, cooperative cancellation, conflict-safe naming, and
// best-effort rollback on partial failure (spec §4.9).
package ops

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/D-Naveenz/rheo-storage/internal/bufpool"
	"github.com/D-Naveenz/rheo-storage/internal/logx"
	"github.com/D-Naveenz/rheo-storage/rheoerr"
	"github.com/D-Naveenz/rheo-storage/storageevents"
)

// Engine performs file and directory operations against a pluggable
// billy.Filesystem. The zero value is not usable; construct with New.
type Engine struct {
	fs     billy.Filesystem
	events storageevents.Sink
	log    *logx.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithFilesystem overrides the default OS filesystem (osfs rooted at
// "/"), e.g. for tests or a chrooted sandbox.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithEventSink routes Created/Deleted/Modified/Renamed notifications
// to sink instead of discarding them.
func WithEventSink(sink storageevents.Sink) Option {
	return func(e *Engine) { e.events = sink }
}

// WithLogger overrides the default logger.
func WithLogger(l *logx.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an Engine rooted at the OS filesystem by default.
func New(opts ...Option) *Engine {
	e := &Engine{
		fs:     osfs.New("/"),
		events: storageevents.Discard,
		log:    logx.Default,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) exists(path string) bool {
	_, err := e.fs.Stat(path)
	return err == nil
}

func (e *Engine) isDir(path string) (bool, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Copy copies src to dest. If dest is a directory, src is copied
// inside it; otherwise dest names the destination directly. When
// overwrite is false and the destination exists, a conflict-safe
// " (N)" suffix is chosen. progress and cancel may be nil.
func (e *Engine) Copy(ctx context.Context, src, dest string, overwrite bool, progress ProgressFunc, cancel <-chan struct{}) (string, error) {
	const op = "ops.Copy"

	srcInfo, err := e.fs.Stat(src)
	if err != nil {
		return "", rheoerr.FromOS(op, src, err)
	}

	if destInfo, err := e.fs.Stat(dest); err == nil && destInfo.IsDir() {
		dest = filepath.Join(dest, filepath.Base(src))
	}

	if srcInfo.IsDir() {
		return e.copyDir(ctx, src, dest, overwrite, progress, cancel)
	}
	return e.copyFile(ctx, src, dest, srcInfo.Size(), overwrite, newProgressTracker(srcInfo.Size(), progress), cancel)
}

func (e *Engine) copyFile(ctx context.Context, src, dest string, size int64, overwrite bool, tracker *progressTracker, cancel <-chan struct{}) (string, error) {
	const op = "ops.Copy"

	if !overwrite {
		dest = ResolveFileConflict(dest, e.exists)
	}

	if err := e.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", rheoerr.FromOS(op, dest, err)
	}

	if err := checkCancel(cancel); err != nil {
		return "", err
	}

	in, err := e.fs.Open(src)
	if err != nil {
		return "", rheoerr.FromOS(op, src, err)
	}
	defer in.Close()

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}
	out, err := e.fs.OpenFile(dest, flag, 0o644)
	if err != nil {
		return "", rheoerr.FromOS(op, dest, err)
	}

	if err := streamCopy(in, out, size, tracker, cancel); err != nil {
		out.Close()
		_ = e.fs.Remove(dest)
		return "", err
	}

	if err := out.Close(); err != nil {
		return "", rheoerr.FromOS(op, dest, err)
	}

	e.events.Publish(storageevents.Changed{
		Path:       dest,
		ChangeType: storageevents.Created,
		NewInfo:    &storageevents.Info{Path: dest, Size: size},
	})

	return dest, nil
}

// streamCopy reads from src and writes to dest in buffer_size chunks,
// polling cancel before opening (handled by the caller), after each
// fill, and after each flush — the suspension points named in §5.
func streamCopy(src io.Reader, dest io.Writer, size int64, tracker *progressTracker, cancel <-chan struct{}) error {
	const op = "ops.Copy"

	buf := bufpool.Get(bufferSize(size))
	defer bufpool.Put(buf)

	for {
		if err := checkCancel(cancel); err != nil {
			return err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if err := checkCancel(cancel); err != nil {
				return err
			}
			if _, err := dest.Write(buf[:n]); err != nil {
				return rheoerr.New(rheoerr.IO, op, "", err)
			}
			tracker.add(int64(n))
			if err := checkCancel(cancel); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return rheoerr.New(rheoerr.IO, op, "", readErr)
		}
	}
}

func checkCancel(cancel <-chan struct{}) error {
	if cancel == nil {
		return nil
	}
	select {
	case <-cancel:
		return rheoerr.New(rheoerr.Cancelled, "ops", "", nil)
	default:
		return nil
	}
}

// copyDir enumerates the source tree, computes total_bytes, mirrors
// the structure, and copies every file sharing one progress
// aggregator. On cancellation or a fatal error, the partially-created
// destination is deleted best-effort (rollback).
func (e *Engine) copyDir(ctx context.Context, src, dest string, overwrite bool, progress ProgressFunc, cancel <-chan struct{}) (string, error) {
	const op = "ops.Copy"

	if !overwrite {
		dest = ResolveDirConflict(dest, e.exists)
	}

	type planEntry struct {
		relPath string
		isDir   bool
		size    int64
	}

	var plan []planEntry
	var total int64
	err := billyWalk(e.fs, src, func(rel string, isDir bool, size int64) {
		plan = append(plan, planEntry{relPath: rel, isDir: isDir, size: size})
		if !isDir {
			total += size
		}
	})
	if err != nil {
		return "", rheoerr.FromOS(op, src, err)
	}

	tracker := newProgressTracker(total, progress)

	rollback := func() {
		_ = removeAllBilly(e.fs, dest)
	}

	for _, entry := range plan {
		if err := checkCancel(cancel); err != nil {
			rollback()
			return "", err
		}

		destPath := filepath.Join(dest, entry.relPath)
		if entry.isDir {
			if err := e.fs.MkdirAll(destPath, 0o755); err != nil {
				rollback()
				return "", rheoerr.FromOS(op, destPath, err)
			}
			continue
		}

		srcPath := filepath.Join(src, entry.relPath)
		if _, err := e.copyFile(ctx, srcPath, destPath, entry.size, true, tracker, cancel); err != nil {
			rollback()
			return "", err
		}
	}

	return dest, nil
}

// Move relocates src to dest. When src and dest resolve to the same
// underlying filesystem a plain Rename is attempted first; if that
// fails (e.g. cross-device on a real OS mount), Move falls back to
// copy-then-delete-source so it still works across volumes.
func (e *Engine) Move(ctx context.Context, src, dest string, overwrite bool, progress ProgressFunc, cancel <-chan struct{}) (string, error) {
	const op = "ops.Move"

	if !overwrite {
		if isDir, _ := e.isDir(src); isDir {
			dest = ResolveDirConflict(dest, e.exists)
		} else {
			dest = ResolveFileConflict(dest, e.exists)
		}
	}

	if err := e.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", rheoerr.FromOS(op, dest, err)
	}

	if err := e.fs.Rename(src, dest); err == nil {
		e.events.Publish(storageevents.Changed{
			Path:       dest,
			ChangeType: storageevents.Renamed,
			OldInfo:    &storageevents.Info{Path: src},
			NewInfo:    &storageevents.Info{Path: dest},
		})
		return dest, nil
	}

	newPath, err := e.Copy(ctx, src, dest, true, progress, cancel)
	if err != nil {
		return "", err
	}
	if err := removeAllBilly(e.fs, src); err != nil {
		return "", rheoerr.FromOS(op, src, err)
	}

	e.events.Publish(storageevents.Changed{
		Path:       newPath,
		ChangeType: storageevents.Renamed,
		OldInfo:    &storageevents.Info{Path: src},
		NewInfo:    &storageevents.Info{Path: newPath},
	})
	return newPath, nil
}

// Rename changes the name of a file or directory within its current
// parent. newName must be a bare name, not a path.
func (e *Engine) Rename(ctx context.Context, path, newName string, overwrite bool) (string, error) {
	const op = "ops.Rename"

	if filepath.Base(newName) != newName {
		return "", rheoerr.New(rheoerr.InvalidArgument, op, newName, nil)
	}

	dest := filepath.Join(filepath.Dir(path), newName)
	if !overwrite {
		if isDir, _ := e.isDir(path); isDir {
			dest = ResolveDirConflict(dest, e.exists)
		} else {
			dest = ResolveFileConflict(dest, e.exists)
		}
	}

	if err := e.fs.Rename(path, dest); err != nil {
		return "", rheoerr.FromOS(op, path, err)
	}

	e.events.Publish(storageevents.Changed{
		Path:       dest,
		ChangeType: storageevents.Renamed,
		OldInfo:    &storageevents.Info{Path: path},
		NewInfo:    &storageevents.Info{Path: dest},
	})
	return dest, nil
}

// Delete removes a file or, recursively, a directory.
func (e *Engine) Delete(ctx context.Context, path string) error {
	const op = "ops.Delete"

	if err := checkCancel(ctx.Done()); err != nil {
		return err
	}

	if err := removeAllBilly(e.fs, path); err != nil {
		return rheoerr.FromOS(op, path, err)
	}

	e.events.Publish(storageevents.Changed{
		Path:       path,
		ChangeType: storageevents.Deleted,
		OldInfo:    &storageevents.Info{Path: path},
	})
	return nil
}

// DeleteAsync runs Delete on its own goroutine, delivering the
// eventual error on the returned channel (buffered so the goroutine
// never leaks on an uninterested caller).
func (e *Engine) DeleteAsync(ctx context.Context, path string) <-chan error {
	done := make(chan error, 1)
	go func() { done <- e.Delete(ctx, path) }()
	return done
}

// Write streams r's contents into path, creating or truncating it,
// under an exclusive handle that is flushed and closed before Write
// returns. A Created event fires only on success.
func (e *Engine) Write(ctx context.Context, path string, r io.Reader, size int64, overwrite bool, progress ProgressFunc, cancel <-chan struct{}) (string, error) {
	const op = "ops.Write"

	if !overwrite {
		path = ResolveFileConflict(path, e.exists)
	}

	if err := e.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", rheoerr.FromOS(op, path, err)
	}

	if err := checkCancel(cancel); err != nil {
		return "", err
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}
	out, err := e.fs.OpenFile(path, flag, 0o644)
	if err != nil {
		return "", rheoerr.FromOS(op, path, err)
	}

	tracker := newProgressTracker(size, progress)
	if err := streamCopy(r, out, size, tracker, cancel); err != nil {
		out.Close()
		_ = e.fs.Remove(path)
		return "", err
	}

	if err := out.Close(); err != nil {
		return "", rheoerr.FromOS(op, path, err)
	}

	e.events.Publish(storageevents.Changed{
		Path:       path,
		ChangeType: storageevents.Created,
		NewInfo:    &storageevents.Info{Path: path, Size: size},
	})

	return path, nil
}

// WriteResult carries the outcome of an asynchronous Write.
type WriteResult struct {
	Path string
	Err  error
}

// WriteAsync runs Write on its own goroutine.
func (e *Engine) WriteAsync(ctx context.Context, path string, r io.Reader, size int64, overwrite bool, progress ProgressFunc, cancel <-chan struct{}) <-chan WriteResult {
	done := make(chan WriteResult, 1)
	go func() {
		p, err := e.Write(ctx, path, r, size, overwrite, progress, cancel)
		done <- WriteResult{Path: p, Err: err}
	}()
	return done
}
