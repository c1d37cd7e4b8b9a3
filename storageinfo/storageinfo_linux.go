//go:build linux

package storageinfo

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

type unixProvider struct{}

func newPlatformProvider() InfoProvider {
	return unixProvider{}
}

func (unixProvider) Stat(path string) (Record, error) {
	const op = "storageinfo.Stat"

	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		if err == unix.ENOENT {
			return Record{}, rheoerr.New(rheoerr.NotFound, op, path, err)
		}
		return Record{}, rheoerr.FromOS(op, path, err)
	}

	rec := Record{
		Path: path,
		DisplayName:   filepath.Base(path),
		Size:          stat.Size,
		// Linux stat(2) has no creation time; last metadata-change
		// time (ctim) is the closest available approximation.
		CreationTime:  time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec),
		LastWriteTime: time.Unix(stat.Mtim.Sec, stat.Mtim.Nsec),
		LastAccess:    time.Unix(stat.Atim.Sec, stat.Atim.Nsec),
		OwnerID:       stat.Uid,
		GroupID:       stat.Gid,
		Mode:          uint32(stat.Mode),
	}
	rec.Attributes = attributesFromMode(os.FileMode(stat.Mode))

	if rec.Attributes&AttrSymlink != 0 {
		rec.IsSymlink = true
		if target, err := os.Readlink(path); err == nil {
			rec.LinkTarget = target
		}
	}
	if strings.HasPrefix(rec.DisplayName, ".") {
		rec.Attributes |= AttrHidden
	}

	return rec, nil
}

func attributesFromMode(mode os.FileMode) Attribute {
	var a Attribute
	switch {
	case mode&os.ModeSymlink != 0:
		a |= AttrSymlink
	case mode.IsDir():
		a |= AttrDirectory
	case mode&os.ModeNamedPipe != 0:
		a |= AttrFIFO
	case mode&os.ModeSocket != 0:
		a |= AttrSocket
	case mode&os.ModeCharDevice != 0:
		a |= AttrCharDevice
	case mode&os.ModeDevice != 0:
		a |= AttrBlockDevice
	case mode.IsRegular():
		a |= AttrRegular
	}
	if mode&0o222 == 0 {
		a |= AttrReadOnly
	}
	return a
}
