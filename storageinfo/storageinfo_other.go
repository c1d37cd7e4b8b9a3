//go:build !linux && !darwin && !windows

package storageinfo

import (
	"os"
	"path/filepath"

	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

// stdlibProvider is the least-common-denominator InfoProvider for
// platforms without a dedicated adapter: it reports what os.Lstat can
// see and leaves ownership fields zeroed, per the Unsupported
// degrade-gracefully policy in spec §4.8/§9.
type stdlibProvider struct{}

func newPlatformProvider() InfoProvider {
	return stdlibProvider{}
}

func (stdlibProvider) Stat(path string) (Record, error) {
	const op = "storageinfo.Stat"

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, rheoerr.New(rheoerr.NotFound, op, path, err)
		}
		return Record{}, rheoerr.FromOS(op, path, err)
	}

	rec := Record{
		Path:          path,
		DisplayName:   filepath.Base(path),
		Size:          info.Size(),
		LastWriteTime: info.ModTime(),
	}
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		rec.Attributes |= AttrSymlink
		rec.IsSymlink = true
		if target, err := os.Readlink(path); err == nil {
			rec.LinkTarget = target
		}
	case mode.IsDir():
		rec.Attributes |= AttrDirectory
	case mode.IsRegular():
		rec.Attributes |= AttrRegular
	}
	if mode&0o222 == 0 {
		rec.Attributes |= AttrReadOnly
	}
	return rec, nil
}
