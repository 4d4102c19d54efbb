// Package route 决定一个文件该落到哪个目标根目录以及月份目录后缀。
package route

import (
	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
)

// Target 返回已定日期文件的目标根目录与月份目录后缀。
//
// - 单目标模式：照片和视频共用一个根目录，不加后缀
// - 双目标模式：按类型选根目录，并追加对应后缀（例如 -kuvat / -videot）
func Target(f domain.Folders, cfg config.Config, kind domain.MediaKind) (base, suffix string) {
	if kind == domain.KindVideo {
		if f.Dual {
			return f.Video, cfg.VideoSuffix
		}
		return f.Video, ""
	}
	if f.Dual {
		return f.Photo, cfg.PhotoSuffix
	}
	return f.Photo, ""
}

// Route 给出文件的路由：有合法年月的进库，其余进 unsorted。
func Route(meta domain.Metadata) string {
	if meta.Dated() {
		return domain.RouteDated
	}
	return domain.RouteUnsorted
}
