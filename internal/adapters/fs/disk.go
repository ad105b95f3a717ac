package fs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*Disk)(nil)

// Disk implements ports.FileSystem on the local file system.
type Disk struct{}

// NewDisk creates a new Disk.
func NewDisk() *Disk {
	return &Disk{}
}

// EnsureDir creates path and its parents.
func (d *Disk) EnsureDir(path string) error {
	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCreateDirFailed.Error()), "path", path)
	}
	return nil
}

// Remove deletes path recursively. Missing paths are accepted.
func (d *Disk) Remove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", path)
	}
	return nil
}

// Exists reports whether path exists.
func (d *Disk) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
}

// ReadDir lists the immediate children of path in lexical order.
func (d *Disk) ReadDir(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrReadDirFailed.Error()), "path", path)
	}
	return entries, nil
}

// Copy copies a file or a directory tree. Directories are merged into an existing destination;
// files already present are overwritten. Symbolic links are recreated, not followed.
func (d *Disk) Copy(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return copyError(err, src, dst)
	}

	if !info.IsDir() {
		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return copyError(err, src, dst)
		}
		if err := copyEntry(src, dst, info); err != nil {
			return copyError(err, src, dst)
		}
		return nil
	}

	err = filepath.WalkDir(src, func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if entry.IsDir() {
			return os.MkdirAll(target, domain.DirPerm)
		}

		fi, err := entry.Info()
		if err != nil {
			return err
		}
		return copyEntry(p, target, fi)
	})
	if err != nil {
		return copyError(err, src, dst)
	}
	return nil
}

// Move replaces dst with src. A rename across devices falls back to copy and remove.
func (d *Disk) Move(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return moveError(err, src, dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return moveError(err, src, dst)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return moveError(err, src, dst)
	}

	if err := d.Copy(src, dst); err != nil {
		return moveError(err, src, dst)
	}
	if err := os.RemoveAll(src); err != nil {
		return moveError(err, src, dst)
	}
	return nil
}

func copyEntry(src, dst string, info fs.FileInfo) error {
	if info.Mode()&fs.ModeSymlink != 0 {
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		_ = os.Remove(dst)
		return os.Symlink(link, dst)
	}
	return copyFile(src, dst, info.Mode().Perm())
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func copyError(err error, src, dst string) error {
	return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "src", src), "dst", dst)
}

func moveError(err error, src, dst string) error {
	return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrMoveFailed.Error()), "src", src), "dst", dst)
}
