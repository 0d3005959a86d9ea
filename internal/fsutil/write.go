// Package fsutil holds file helpers shared by the commands.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"
)

var tempSeq atomic.Uint64

// WriteFileAtomic writes data to a temporary file next to path and renames it
// over path, so readers see either the old file or the complete new one. An
// existing file is replaced and keeps its permission bits; a new file gets
// perm filtered through the umask, as with os.WriteFile.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	existing := false
	if info, statErr := os.Stat(path); statErr == nil {
		existing = true
		perm = info.Mode().Perm()
	}

	f, tmp, err := createTemp(path, perm)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	// The umask may have cleared bits the existing file had.
	if existing {
		if err = os.Chmod(tmp, perm); err != nil {
			return fmt.Errorf("chmod temp: %w", err)
		}
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// createTemp opens a new file in path's directory with perm, which the
// kernel filters through the umask. os.CreateTemp always uses 0600.
func createTemp(path string, perm os.FileMode) (*os.File, string, error) {
	dir, base := filepath.Split(path)
	for i := 0; i < 100; i++ {
		suffix := strconv.FormatInt(time.Now().UnixNano(), 36) + strconv.FormatUint(tempSeq.Add(1), 36)
		name := filepath.Join(dir, "."+base+"."+suffix+".tmp")
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, name, err
	}
	return nil, "", &fs.PathError{Op: "createtemp", Path: path, Err: fs.ErrExist}
}
