package metadata

import (
	"context"
	"fmt"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
	"github.com/John-Robertt/mediasort/internal/infra/execx"
)

// ExifTool 通过 `exiftool -s -s -s -<Tag> <path>` 查询单个字段。
// 照片和视频使用同一组 tag（Model / CreateDate）。
type ExifTool struct {
	Path   string
	Runner execx.Runner
}

func (ExifTool) Name() string { return config.BackendExifTool }

func (b ExifTool) Lookup(ctx context.Context, file domain.MediaFile, field Field) (Value, error) {
	var tag string
	switch field {
	case FieldModel:
		tag = "-Model"
	case FieldCaptureDate:
		tag = "-CreateDate"
	default:
		return Value{}, fmt.Errorf("exiftool 不支持字段 %q", field)
	}
	return run(ctx, b.Runner, b.Name(), field, file.AbsPath, b.Path, "-s", "-s", "-s", tag, file.AbsPath)
}

// run 是 exiftool/gettool 共用的外部命令调用。
func run(ctx context.Context, r execx.Runner, backend string, field Field, path, name string, args ...string) (Value, error) {
	out, err := r.Run(ctx, name, args...)
	v := Value{Text: out.Value, Present: out.Present, Diag: out.Diag}
	if err != nil {
		return v, &LookupError{Backend: backend, Field: field, Path: path, Err: err}
	}
	return v, nil
}
