//go:build windows

package storageinfo

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/D-Naveenz/rheo-storage/rheoerr"
)

type windowsProvider struct{}

func newPlatformProvider() InfoProvider {
	return windowsProvider{}
}

func (windowsProvider) Stat(path string) (Record, error) {
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

	if sys, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		rec.CreationTime = time.Unix(0, sys.CreationTime.Nanoseconds())
		rec.LastAccess = time.Unix(0, sys.LastAccessTime.Nanoseconds())
		if sys.FileAttributes&syscall.FILE_ATTRIBUTE_READONLY != 0 {
			rec.Attributes |= AttrReadOnly
		}
		if sys.FileAttributes&syscall.FILE_ATTRIBUTE_HIDDEN != 0 {
			rec.Attributes |= AttrHidden
		}
		if sys.FileAttributes&syscall.FILE_ATTRIBUTE_REPARSE_POINT != 0 {
			rec.Attributes |= AttrSymlink
			rec.IsSymlink = true
			if target, err := os.Readlink(path); err == nil {
				rec.LinkTarget = target
			}
		}
	}

	switch {
	case info.IsDir():
		rec.Attributes |= AttrDirectory
	case rec.Attributes&AttrSymlink == 0:
		rec.Attributes |= AttrRegular
	}
	if strings.HasPrefix(rec.DisplayName, ".") {
		rec.Attributes |= AttrHidden
	}

	rec.OwnerDisplay = "" // resolving the owning SID's display name needs LookupAccountSid; left to an external icon/SID collaborator per spec §1
	rec.TypeName = typeNameForExtension(filepath.Ext(path))

	return rec, nil
}

func typeNameForExtension(ext string) string {
	if ext == "" {
		return "File"
	}
	return strings.ToUpper(strings.TrimPrefix(ext, ".")) + " File"
}
