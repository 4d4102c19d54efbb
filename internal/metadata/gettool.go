package metadata

import (
	"context"
	"fmt"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
	"github.com/John-Robertt/mediasort/internal/infra/execx"
)

// GetTool 是轻量的自定义元数据工具，调用约定：
//
//	get-metadata <photo|video> <field> <path>
//
// 字段名按媒体类型区分，见 getToolFields。
type GetTool struct {
	Path   string
	Runner execx.Runner
}

var getToolFields = map[domain.MediaKind]map[Field]string{
	domain.KindPhoto: {
		FieldModel:       "Model",
		FieldCaptureDate: "DateTimeOriginal",
	},
	domain.KindVideo: {
		FieldModel:       "common/model",
		FieldCaptureDate: "common/creationDate",
	},
}

func (GetTool) Name() string { return config.BackendGetTool }

func (b GetTool) Lookup(ctx context.Context, file domain.MediaFile, field Field) (Value, error) {
	fields, ok := getToolFields[file.Kind]
	if !ok {
		// 未知媒体类型：不调用工具，视为无值。
		return Value{}, nil
	}
	name, ok := fields[field]
	if !ok {
		return Value{}, fmt.Errorf("get-metadata 不支持字段 %q", field)
	}
	return run(ctx, b.Runner, b.Name(), field, file.AbsPath, b.Path, string(file.Kind), name, file.AbsPath)
}
