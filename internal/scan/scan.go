package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/domain"
)

// ScanMedia 列出 dir 下（不递归）扩展名命中照片或视频集合的普通文件。
//
// 规则（硬约束）：
// - 只看 dir 本身的条目，子目录（含指向目录的符号链接）整个忽略
// - 扩展名按后缀大小写敏感匹配；同时出现在两个集合里时按照片处理
// - 不命中的文件静默跳过（不进结果，不报告）
//
// 注意：扫描阶段只做 stat，不读文件内容。
func ScanMedia(fs afero.Fs, dir string, photoExts, videoExts []string) ([]domain.MediaFile, error) {
	dir = filepath.Clean(dir)

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	files := make([]domain.MediaFile, 0, len(entries))
	for _, e := range entries {
		if isDir(fs, dir, e) {
			continue
		}

		name := e.Name()
		kind, ext, ok := classify(name, photoExts, videoExts)
		if !ok {
			continue
		}

		files = append(files, domain.MediaFile{
			AbsPath: filepath.Join(dir, name),
			Name:    name,
			Ext:     ext,
			Kind:    kind,
		})
	}

	// 强制稳定输出，避免不同平台/文件系统行为差异带来的不确定性。
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// isDir 判断条目是否为目录；符号链接按其目标判断，悬空链接按文件处理。
func isDir(fs afero.Fs, dir string, e os.FileInfo) bool {
	if e.IsDir() {
		return true
	}
	if e.Mode()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := fs.Stat(filepath.Join(dir, e.Name()))
	return err == nil && fi.IsDir()
}

func classify(name string, photoExts, videoExts []string) (domain.MediaKind, string, bool) {
	if ext, ok := matchExt(name, photoExts); ok {
		return domain.KindPhoto, ext, true
	}
	if ext, ok := matchExt(name, videoExts); ok {
		return domain.KindVideo, ext, true
	}
	return "", "", false
}

// matchExt 做后缀匹配；文件名必须比扩展名长（".jpg" 本身不算照片）。
func matchExt(name string, exts []string) (string, bool) {
	for _, ext := range exts {
		if ext == "" || len(name) <= len(ext) {
			continue
		}
		if strings.HasSuffix(name, ext) {
			return ext, true
		}
	}
	return "", false
}
