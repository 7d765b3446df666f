package filesystem

import (
	"os"
	"path/filepath"
)

// Path is a path-like value handed to the link utilities. It is never
// cleaned or normalized; the external programs receive it verbatim.
type Path string

func MakePath(names ...string) Path {
	p := filepath.Join(names...)

	if !filepath.IsAbs(p) {
		panic("MakePath requires absolute path")
	}

	return Path(p)
}

func (p Path) Join(names ...string) Path {
	args := []string{string(p)}
	args = append(args, names...)
	return Path(filepath.Join(args...))
}

func (p Path) Parent() Path {
	return Path(filepath.Dir(string(p)))
}

func (p Path) Base() string {
	return filepath.Base(string(p))
}

func (p Path) IsAbs() bool {
	return filepath.IsAbs(string(p))
}

func (p Path) MkdirAll(perm os.FileMode) error {
	return os.MkdirAll(string(p), perm)
}

func (p Path) WriteFile(data []byte, perm os.FileMode) error {
	return os.WriteFile(string(p), data, perm)
}

func (p Path) Open() (*os.File, error) {
	return os.Open(string(p))
}

func (p Path) Readlink() (Path, error) {
	target, err := os.Readlink(string(p))
	if err != nil {
		return Path(""), err
	}

	return Path(target), nil
}

func (p Path) Symlink(target Path) error {
	return os.Symlink(string(target), string(p))
}

// Exists reports whether anything, including a dangling symlink, is present
// at p.
func (p Path) Exists() (bool, error) {
	_, err := os.Lstat(string(p))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// IsDir reports whether p, following symlinks, is a directory.
func (p Path) IsDir() bool {
	info, err := os.Stat(string(p))
	return err == nil && info.IsDir()
}

// Resolve joins a relative p onto dir. Absolute paths and an empty dir leave
// p unchanged.
func (p Path) Resolve(dir Path) Path {
	if dir == "" || p.IsAbs() {
		return p
	}

	return dir.Join(string(p))
}

func (p Path) String() string {
	return string(p)
}

// Strings converts paths to plain strings, preserving order.
func Strings(paths []Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = string(p)
	}

	return out
}
