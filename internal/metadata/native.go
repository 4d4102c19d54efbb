package metadata

import (
	"context"
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
)

// exifDateLayout 与 exiftool 的默认输出一致，保证 stamp 的固定偏移规则对三个 backend 通用。
const exifDateLayout = "2006:01:02 15:04:05"

// Native 在进程内读取照片 EXIF（不依赖外部程序）。
// 视频不解析：总是返回无值，由文件名回退规则兜底。
type Native struct {
	Fs afero.Fs
}

func (Native) Name() string { return config.BackendNative }

func (b Native) Lookup(ctx context.Context, file domain.MediaFile, field Field) (Value, error) {
	if file.Kind != domain.KindPhoto {
		return Value{}, nil
	}
	if err := ctx.Err(); err != nil {
		return Value{}, err
	}

	x, err := b.decode(file.AbsPath)
	if err != nil {
		return Value{}, &LookupError{Backend: b.Name(), Field: field, Path: file.AbsPath, Err: err}
	}
	if x == nil {
		return Value{}, nil
	}

	switch field {
	case FieldModel:
		tag, err := x.Get(exif.Model)
		if err != nil {
			return Value{}, nil
		}
		s, err := tag.StringVal()
		if err != nil {
			return Value{}, nil
		}
		return present(s), nil
	case FieldCaptureDate:
		t, err := x.DateTime()
		if err != nil {
			return Value{}, nil
		}
		return present(t.Format(exifDateLayout)), nil
	default:
		return Value{}, fmt.Errorf("native 不支持字段 %q", field)
	}
}

// decode 打开并解析 EXIF。文件读不了是 error；没有 EXIF 返回 (nil, nil)。
func (b Native) decode(path string) (*exif.Exif, error) {
	fs := b.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, nil
	}
	return x, nil
}
