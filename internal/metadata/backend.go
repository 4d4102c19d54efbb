package metadata

import (
	"context"
	"strings"

	"github.com/John-Robertt/mediasort/internal/domain"
)

// Field 是向 backend 请求的元数据字段（backend 负责把它映射为具体工具的字段名）。
type Field string

const (
	FieldModel       Field = "model"
	FieldCaptureDate Field = "capture_date"
)

// Value 是一次查询的结果：有值/无值 + 诊断文本（例如外部工具的 stderr）。
type Value struct {
	Text    string
	Present bool
	Diag    string
}

// Backend 把“具体元数据工具”限制在 metadata 包内部；核心流程只依赖统一接口。
//
// 约束：
// - Lookup 是同步阻塞调用，不做缓存、不做重试
// - 字段缺失不是错误：返回 Present=false
// - error 只用于“查询本身失败”（例如进程无法启动、非 0 退出、文件无法读取）；
//   即使返回 error，Value 中已经拿到的内容仍然有效
type Backend interface {
	Name() string
	Lookup(ctx context.Context, file domain.MediaFile, field Field) (Value, error)
}

func present(s string) Value {
	v := Value{Text: strings.TrimSpace(strings.TrimRight(s, "\x00"))}
	v.Present = v.Text != ""
	return v
}
