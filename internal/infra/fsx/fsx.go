package fsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// PathTypeConflictError 表示目标路径类型冲突（例如期望目录但实际是文件）。
type PathTypeConflictError struct {
	Path string
	Want string
	Got  string
}

func (e *PathTypeConflictError) Error() string {
	return fmt.Sprintf("目标路径类型冲突：%q（期望 %s，实际 %s）", e.Path, e.Want, e.Got)
}

func IsPathTypeConflict(err error) bool {
	var e *PathTypeConflictError
	return errors.As(err, &e)
}

// CrossDeviceError 表示跨盘（EXDEV）导致的 rename 失败。
// 移动只用 rename：遇到 EXDEV 直接失败并提示用户，不做 copy+delete。
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("跨盘移动失败（EXDEV）：%q -> %q；请确保源与目标在同一文件系统（本工具不会隐式 copy+delete）：%v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice 判断 err 是否为跨盘（EXDEV）错误。
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// Rename 封装 fs.Rename，并把 EXDEV 显式标记为 CrossDeviceError。
func Rename(fs afero.Fs, src, dst string) error {
	if err := fs.Rename(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// KindSymlink 是 Kind 对符号链接的返回值（链接本身，不跟随）。
const KindSymlink = "symlink"

// Kind 返回 path 的类型描述："missing" | "dir" | "file" | "symlink" | 其他 mode 字符串。
// 只做 Lstat（OsFs 下不跟随符号链接）。
func Kind(fs afero.Fs, path string) (string, error) {
	var (
		fi  os.FileInfo
		err error
	)
	if l, ok := fs.(afero.Lstater); ok {
		fi, _, err = l.LstatIfPossible(path)
	} else {
		fi, err = fs.Stat(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "missing", nil
		}
		return "", err
	}
	switch {
	case fi.IsDir():
		return "dir", nil
	case fi.Mode().IsRegular():
		return "file", nil
	case fi.Mode()&os.ModeSymlink != 0:
		return KindSymlink, nil
	default:
		return fi.Mode().Type().String(), nil
	}
}

// KindFollow 与 Kind 相同，但符号链接按其目标判断；悬空链接返回 KindSymlink。
func KindFollow(fs afero.Fs, path string) (string, error) {
	k, err := Kind(fs, path)
	if err != nil || k != KindSymlink {
		return k, err
	}
	fi, err := fs.Stat(path)
	switch {
	case os.IsNotExist(err):
		return KindSymlink, nil
	case err != nil:
		return "", err
	case fi.IsDir():
		return "dir", nil
	case fi.Mode().IsRegular():
		return "file", nil
	default:
		return fi.Mode().Type().String(), nil
	}
}

// EnsureDir 确保 dir 是目录（指向目录的符号链接也算）：已存在则不动，不存在则 MkdirAll。
// 返回值 created 表示本次是否真正创建了目录。
func EnsureDir(fs afero.Fs, dir string) (created bool, err error) {
	k, err := KindFollow(fs, dir)
	if err != nil {
		return false, err
	}
	switch k {
	case "dir":
		return false, nil
	case "missing":
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, &PathTypeConflictError{Path: dir, Want: "dir", Got: k}
	}
}

// WriteFileAtomicReplace 在 dir 下原子写入 name（临时文件 + rename），同名文件会被覆盖。
//
// - 临时文件必须与目标文件在同目录，以保证 rename 的原子性
// - 目录 fsync 采用 best-effort（避免平台差异导致误报失败）
func WriteFileAtomicReplace(fs afero.Fs, dir, name string, data []byte) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	dst := filepath.Join(dir, name)

	// 同目录临时文件，前缀带 '.'。
	tmp, err := afero.TempFile(fs, dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
	}()

	if err := writeAll(tmp, data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fs.Chmod(tmpName, 0o644); err != nil {
		return err
	}

	if err := Rename(fs, tmpName, dst); err != nil {
		return err
	}

	_ = syncDirBestEffort(fs, dir)
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func syncDirBestEffort(fs afero.Fs, dir string) error {
	// Windows 上目录 Sync 的语义与支持情况不稳定，这里直接跳过。
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := fs.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
