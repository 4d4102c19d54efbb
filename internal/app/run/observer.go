package run

import (
	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
)

// Observer 用于把“运行进度/条目结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（日志格式完全由 CLI 决定）。
// - 事件严格按处理顺序同步触发（单线程）。
type Observer interface {
	// OnStart 在扫描完成后、处理第一个文件之前调用。
	OnStart(eff config.EffectiveConfig, folders domain.Folders, total int)
	// OnDirCreated 在新建（dry-run 下为“将新建”）目录时调用，年目录先于月目录。
	OnDirCreated(path string)
	// OnDiagnostic 传递元数据工具的 stderr 与查询错误；不影响文件的处理结果。
	OnDiagnostic(file domain.MediaFile, msg string)
	// OnFileDone 在某个文件处理完成时调用（用于每条结果的一行输出）。
	OnFileDone(idx, total int, res domain.FileResult)
}

// NopObserver 丢弃全部事件。
type NopObserver struct{}

func (NopObserver) OnStart(config.EffectiveConfig, domain.Folders, int) {}
func (NopObserver) OnDirCreated(string)                                {}
func (NopObserver) OnDiagnostic(domain.MediaFile, string)              {}
func (NopObserver) OnFileDone(int, int, domain.FileResult)             {}
