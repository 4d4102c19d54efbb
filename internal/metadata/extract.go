package metadata

import (
	"context"
	"fmt"

	"github.com/John-Robertt/mediasort/internal/domain"
	"github.com/John-Robertt/mediasort/internal/stamp"
)

// Extractor 在选定的 Backend 之上实现统一的 (model, year, month) 契约。
type Extractor struct {
	Backend Backend
}

// Extract 查询 model 与拍摄日期，并解析为已校验的年月。
//
// - model：查询结果；无值则为空串
// - 日期：查询结果；无值则回退到文件名（固定偏移规则，见 stamp 包）
// - 年/月不合法时置空，调用方据此把文件路由到 unsorted
//
// diags 收集外部工具的 stderr 与查询错误；它们只用于日志，不影响流程。
func (e Extractor) Extract(ctx context.Context, file domain.MediaFile) (meta domain.Metadata, diags []string) {
	model := e.lookup(ctx, file, FieldModel, &diags)
	date := e.lookup(ctx, file, FieldCaptureDate, &diags)

	meta.Model = model.Text
	meta.Year, meta.Month, meta.DateSource = stamp.Resolve(date.Text, date.Present, file.Name)
	return meta, diags
}

func (e Extractor) lookup(ctx context.Context, file domain.MediaFile, field Field, diags *[]string) Value {
	if e.Backend == nil {
		*diags = append(*diags, "未配置元数据 backend")
		return Value{}
	}

	v, err := e.Backend.Lookup(ctx, file, field)
	if v.Diag != "" {
		*diags = append(*diags, fmt.Sprintf("%s %s（%s）：%s", e.Backend.Name(), field, file.Name, v.Diag))
	}
	if err != nil {
		*diags = append(*diags, err.Error())
	}
	if !v.Present {
		return Value{}
	}
	return v
}
