// Package mover 把单个文件移动到目标目录；目标已有同名文件时保持原位，绝不覆盖。
package mover

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/domain"
	"github.com/John-Robertt/mediasort/internal/infra/fsx"
)

// Outcome 是一次 Move 的结果（error 为 nil 时才有意义）。
type Outcome int

const (
	OutcomeMoved Outcome = iota + 1
	OutcomeKept
	OutcomePlanned
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeKept:
		return "kept"
	case OutcomePlanned:
		return "planned"
	default:
		return "unknown"
	}
}

// Move 把 srcDir/name 移到 dstDir/name（文件名不变）。
//
// - 目标是普通文件（或指向普通文件/悬空的符号链接）：OutcomeKept，不报错，源文件不动
// - 目标是目录或其他特殊文件：fsx.PathTypeConflictError
// - 只用 rename：跨盘返回 fsx.CrossDeviceError，不做 copy+delete
// - dryRun：只做上面的检查，返回 OutcomePlanned
func Move(fs afero.Fs, srcDir, dstDir, name string, dryRun bool) (Outcome, error) {
	return MovePlan(fs, domain.MovePlan{SrcDir: srcDir, DstDir: dstDir, Name: name}, dryRun)
}

// MovePlan 同 Move，参数打包为 domain.MovePlan。
func MovePlan(fs afero.Fs, p domain.MovePlan, dryRun bool) (Outcome, error) {
	src := filepath.Join(p.SrcDir, p.Name)
	dst := filepath.Join(p.DstDir, p.Name)

	k, err := fsx.KindFollow(fs, dst)
	if err != nil {
		return 0, err
	}
	switch k {
	case "missing":
	case "file", fsx.KindSymlink:
		// 悬空的符号链接也不能被 rename 覆盖。
		return OutcomeKept, nil
	default:
		return 0, &fsx.PathTypeConflictError{Path: dst, Want: "file", Got: k}
	}

	if dryRun {
		return OutcomePlanned, nil
	}
	if err := fsx.Rename(fs, src, dst); err != nil {
		return 0, err
	}
	return OutcomeMoved, nil
}
