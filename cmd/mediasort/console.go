package main

import (
	"path/filepath"

	"github.com/John-Robertt/mediasort/internal/app/run"
	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
	"github.com/John-Robertt/mediasort/internal/infra/logx"
)

var _ run.Observer = (*console)(nil)

// console 把 run 的事件渲染为带时间戳的日志行。
type console struct {
	log    *logx.Logger
	dryRun bool
}

func newConsole(log *logx.Logger) *console {
	return &console{log: log}
}

func (c *console) OnStart(eff config.EffectiveConfig, f domain.Folders, total int) {
	c.dryRun = eff.DryRun
	if c.dryRun {
		c.log.Info("dry-run：不创建文件夹，不移动文件（%d 个媒体文件）", total)
	}
}

func (c *console) OnDirCreated(path string) {
	c.log.Info("创建新文件夹：%s%s", path, c.dryNote())
}

func (c *console) OnDiagnostic(file domain.MediaFile, msg string) {
	c.log.Error("%s", msg)
}

func (c *console) OnFileDone(idx, total int, res domain.FileResult) {
	if res.Route == domain.RouteUnsorted {
		c.log.Info("%s 缺少日期元数据", res.Name)
	}

	last := lastDir(res.Dst)
	switch res.Status {
	case domain.StatusMoved, domain.StatusUnsorted, domain.StatusPlanned:
		c.log.Info("%s移动 %s 到 %s%s", modelPrefix(res.Model), res.Name, last, c.dryNote())
	case domain.StatusKept:
		c.log.Info("%s 已存在于 %s 文件夹，保持原位", res.Name, last)
	case domain.StatusFailed:
		name := res.Name
		if name == "" {
			name = res.Src
		}
		c.log.Error("%s：%s", name, res.ErrorMsg)
	}
}

func (c *console) dryNote() string {
	if c.dryRun {
		return "（dry-run）"
	}
	return ""
}

func modelPrefix(model string) string {
	if model == "" {
		return ""
	}
	return model + " - "
}

// lastDir 返回目标文件所在目录的最后一级名称，例如 ".../2015/2015-02/a.jpg" -> "2015-02"。
func lastDir(dst string) string {
	if dst == "" {
		return ""
	}
	return filepath.Base(filepath.Dir(dst))
}
