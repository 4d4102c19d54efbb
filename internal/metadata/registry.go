package metadata

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/infra/execx"
)

// Registry 是 backend 的只读注册表（按 name 索引）。
type Registry struct {
	byName map[string]Backend
}

func NewRegistry(backends ...Backend) (Registry, error) {
	byName := make(map[string]Backend, len(backends))
	for _, b := range backends {
		if b == nil {
			return Registry{}, fmt.Errorf("backend 不能为空")
		}
		name := strings.ToLower(strings.TrimSpace(b.Name()))
		if name == "" {
			return Registry{}, fmt.Errorf("backend.Name 不能为空")
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("重复的 backend：%q", name)
		}
		byName[name] = b
	}
	return Registry{byName: byName}, nil
}

func (r Registry) Get(name string) (Backend, bool) {
	if r.byName == nil {
		return nil, false
	}
	name = strings.ToLower(strings.TrimSpace(name))
	b, ok := r.byName[name]
	return b, ok
}

// Select 按配置在启动时选定唯一的 backend（之后每个文件都用它，不在调用点再做分支）。
func Select(cfg config.Config, fs afero.Fs, runner execx.Runner) (Backend, error) {
	if runner == nil {
		runner = execx.CommandRunner{}
	}
	reg, err := NewRegistry(
		ExifTool{Path: cfg.ExifToolPath, Runner: runner},
		GetTool{Path: cfg.GetToolPath, Runner: runner},
		Native{Fs: fs},
	)
	if err != nil {
		return nil, err
	}
	b, ok := reg.Get(cfg.Backend)
	if !ok {
		return nil, fmt.Errorf("未知 backend：%q", cfg.Backend)
	}
	return b, nil
}
