// Package preflight 做启动前的环境检查：元数据工具是否存在、unsorted 目录是否就绪。
package preflight

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/infra/fsx"
)

// MissingToolError 表示配置的元数据可执行文件不存在（或不是文件）。
type MissingToolError struct {
	Backend string
	Path    string
	Got     string // "missing" | "dir" | 其他 mode
}

func (e *MissingToolError) Error() string {
	if e.Got == "missing" {
		return fmt.Sprintf("找不到元数据工具 %s：%s", e.Backend, e.Path)
	}
	return fmt.Sprintf("元数据工具 %s 不是可执行文件：%s（实际 %s）", e.Backend, e.Path, e.Got)
}

// CheckBackend 校验所选 backend 的外部程序。native 不依赖外部程序，直接通过。
func CheckBackend(fs afero.Fs, cfg config.Config) error {
	path := cfg.ToolPath()
	if path == "" {
		return nil
	}

	// Stat 跟随符号链接：链接指向的目标才是真正的程序。
	fi, err := fs.Stat(path)
	switch {
	case os.IsNotExist(err):
		return &MissingToolError{Backend: cfg.Backend, Path: path, Got: "missing"}
	case err != nil:
		return fmt.Errorf("检查元数据工具失败：%s：%w", path, err)
	case fi.IsDir():
		return &MissingToolError{Backend: cfg.Backend, Path: path, Got: "dir"}
	case !fi.Mode().IsRegular():
		return &MissingToolError{Backend: cfg.Backend, Path: path, Got: fi.Mode().Type().String()}
	}
	return nil
}

// EnsureDir 确保 dir 存在（必要时连同父目录一起创建）。
// created 表示本次新建了目录；dryRun 时只检查，不创建，但仍报告“会创建”。
func EnsureDir(fs afero.Fs, dir string, dryRun bool) (created bool, err error) {
	if !dryRun {
		return fsx.EnsureDir(fs, dir)
	}

	k, err := fsx.KindFollow(fs, dir)
	if err != nil {
		return false, err
	}
	switch k {
	case "dir":
		return false, nil
	case "missing":
		return true, nil
	default:
		return false, &fsx.PathTypeConflictError{Path: dir, Want: "dir", Got: k}
	}
}
