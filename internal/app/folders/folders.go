// Package folders 解析并校验命令行给出的源目录与目标目录。
package folders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/domain"
)

// ArgErrorKind 区分参数错误的种类（CLI 据此决定是否额外打印 usage）。
type ArgErrorKind string

const (
	KindUsage    ArgErrorKind = "usage"
	KindTooFew   ArgErrorKind = "too_few"
	KindTooMany  ArgErrorKind = "too_many"
	KindNotFound ArgErrorKind = "not_found"
	KindNotDir   ArgErrorKind = "not_dir"
)

// ArgError 是位置参数校验失败。
type ArgError struct {
	Kind ArgErrorKind
	Arg  string
	Err  error
}

func (e *ArgError) Error() string {
	switch e.Kind {
	case KindUsage:
		return "缺少参数"
	case KindTooFew:
		return "参数太少：需要源目录和至少一个目标目录"
	case KindTooMany:
		return "参数太多：最多接受源目录、照片目录、视频目录三个参数"
	case KindNotFound:
		return fmt.Sprintf("找不到文件夹：%s", e.Arg)
	case KindNotDir:
		return fmt.Sprintf("不是文件夹：%s", e.Arg)
	default:
		if e.Err != nil {
			return fmt.Sprintf("参数错误：%s：%v", e.Arg, e.Err)
		}
		return fmt.Sprintf("参数错误：%s", e.Arg)
	}
}

func (e *ArgError) Unwrap() error { return e.Err }

// WantsUsage 表示 CLI 应该在错误之后打印 usage。
func (e *ArgError) WantsUsage() bool {
	switch e.Kind {
	case KindUsage, KindTooFew, KindTooMany:
		return true
	default:
		return false
	}
}

// Resolve 校验 2 或 3 个位置参数并返回只读的 Folders。
//
// - 2 个参数：source target（照片与视频共用 target，Dual=false）
// - 3 个参数：source photo_target video_target（Dual=true）
//
// 每个目录都必须存在且是目录；返回的路径为 clean + absolute，并带结尾分隔符。
func Resolve(fs afero.Fs, args []string) (domain.Folders, error) {
	switch n := len(args); {
	case n == 0:
		return domain.Folders{}, &ArgError{Kind: KindUsage}
	case n == 1:
		return domain.Folders{}, &ArgError{Kind: KindTooFew}
	case n > 3:
		return domain.Folders{}, &ArgError{Kind: KindTooMany}
	}

	dirs := make([]string, 0, len(args))
	for _, a := range args {
		d, err := resolveDir(fs, a)
		if err != nil {
			return domain.Folders{}, err
		}
		dirs = append(dirs, d)
	}

	f := domain.Folders{Source: dirs[0], Photo: dirs[1], Video: dirs[1]}
	if len(dirs) == 3 {
		f.Video = dirs[2]
		f.Dual = true
	}
	return f, nil
}

func resolveDir(fs afero.Fs, arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return "", &ArgError{Kind: KindNotFound, Arg: arg}
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", &ArgError{Arg: arg, Err: err}
	}

	fi, err := fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &ArgError{Kind: KindNotFound, Arg: arg, Err: err}
		}
		return "", &ArgError{Arg: arg, Err: err}
	}
	if !fi.IsDir() {
		return "", &ArgError{Kind: KindNotDir, Arg: arg}
	}
	return WithTrailingSep(abs), nil
}

// WithTrailingSep 返回 clean 后带结尾分隔符的路径（根目录保持原样）。
func WithTrailingSep(p string) string {
	p = filepath.Clean(p)
	sep := string(filepath.Separator)
	if strings.HasSuffix(p, sep) {
		return p
	}
	return p + sep
}
