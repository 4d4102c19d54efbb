// Package dirtree 维护目标库的 <year>/<year>-<month><suffix> 目录结构。
package dirtree

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/infra/fsx"
)

// MonthDirName 返回月份目录名，例如 ("2015","02","-kuvat") -> "2015-02-kuvat"。
func MonthDirName(year, month, suffix string) string {
	return year + "-" + month + suffix
}

// MonthDir 只计算路径：base/<year>/<year>-<month><suffix>。
func MonthDir(base, year, month, suffix string) string {
	return filepath.Join(base, year, MonthDirName(year, month, suffix))
}

// EnsureMonthDir 确保年目录与月目录都存在，返回月目录路径以及本次新建的目录（年在前）。
//
// - 已存在的目录保持不动（幂等）
// - 任意一层被非目录占用：返回 fsx.PathTypeConflictError
// - dryRun：不创建任何东西，created 为“将会创建”的目录
func EnsureMonthDir(fs afero.Fs, base, year, month, suffix string, dryRun bool) (path string, created []string, err error) {
	yearDir := filepath.Join(base, year)
	monthDir := MonthDir(base, year, month, suffix)

	for _, dir := range []string{yearDir, monthDir} {
		made, err := ensureOne(fs, dir, dryRun)
		if err != nil {
			return "", created, err
		}
		if made {
			created = append(created, dir)
		}
	}
	return monthDir, created, nil
}

func ensureOne(fs afero.Fs, dir string, dryRun bool) (bool, error) {
	k, err := fsx.KindFollow(fs, dir)
	if err != nil {
		return false, err
	}
	switch k {
	case "dir":
		return false, nil
	case "missing":
		if dryRun {
			return true, nil
		}
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, &fsx.PathTypeConflictError{Path: dir, Want: "dir", Got: k}
	}
}
