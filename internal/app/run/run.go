package run

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/John-Robertt/mediasort/internal/app/dirtree"
	"github.com/John-Robertt/mediasort/internal/app/mover"
	"github.com/John-Robertt/mediasort/internal/app/route"
	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
	"github.com/John-Robertt/mediasort/internal/infra/fsx"
	"github.com/John-Robertt/mediasort/internal/scan"
)

// Extractor 是 run 对元数据提取的最小依赖（metadata.Extractor 满足它）。
type Extractor interface {
	Extract(ctx context.Context, file domain.MediaFile) (domain.Metadata, []string)
}

// Deps 是一次运行需要的全部协作者；由 CLI 组装后显式传入。
type Deps struct {
	Fs        afero.Fs
	Eff       config.EffectiveConfig
	Extractor Extractor
	Clock     clockwork.Clock
}

// Execute 处理源目录中的所有媒体文件，并返回对外稳定的 RunReport。
//
// 单个文件的失败只记入该文件的 FileResult，不影响其他文件。
// 扫描失败时报告里只有一条 failed 记录（src 为源目录）。
func Execute(ctx context.Context, deps Deps, folders domain.Folders, obs Observer) domain.RunReport {
	if obs == nil {
		obs = NopObserver{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	fs := deps.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	cfg := deps.Eff.Config
	dryRun := deps.Eff.DryRun

	rr := domain.RunReport{
		Source:    folders.Source,
		DryRun:    dryRun,
		StartedAt: clock.Now(),
	}

	files, err := scan.ScanMedia(fs, folders.Source, cfg.PhotoExts, cfg.VideoExts)
	if err != nil {
		res := domain.FileResult{
			Src:       folders.Source,
			Status:    domain.StatusFailed,
			ErrorCode: domain.ErrCodeScanFailed,
			ErrorMsg:  fmt.Sprintf("扫描失败：%v", err),
		}
		rr.Items = append(rr.Items, res)
		obs.OnStart(deps.Eff, folders, 0)
		obs.OnFileDone(1, 1, res)
		rr.FinishedAt = clock.Now()
		rr.Finalize()
		return rr
	}

	obs.OnStart(deps.Eff, folders, len(files))

	p := processor{
		fs:        fs,
		cfg:       cfg,
		dryRun:    dryRun,
		folders:   folders,
		extractor: deps.Extractor,
		obs:       obs,
		planned:   map[string]struct{}{},
	}

	rr.Items = make([]domain.FileResult, 0, len(files))
	for i, f := range files {
		res := p.one(ctx, f)
		rr.Items = append(rr.Items, res)
		obs.OnFileDone(i+1, len(files), res)
	}

	rr.FinishedAt = clock.Now()
	rr.Finalize()
	return rr
}

type processor struct {
	fs        afero.Fs
	cfg       config.Config
	dryRun    bool
	folders   domain.Folders
	extractor Extractor
	obs       Observer

	// dry-run 下目录不会真正创建；记录已报告过的目录，避免同一目录反复报告。
	planned map[string]struct{}
}

func (p *processor) one(ctx context.Context, f domain.MediaFile) domain.FileResult {
	var (
		meta  domain.Metadata
		diags []string
	)
	if p.extractor != nil {
		meta, diags = p.extractor.Extract(ctx, f)
	}
	for _, d := range diags {
		p.obs.OnDiagnostic(f, d)
	}

	res := domain.FileResult{
		Src:        f.AbsPath,
		Name:       f.Name,
		Kind:       f.Kind,
		Model:      meta.Model,
		Year:       meta.Year,
		Month:      meta.Month,
		DateSource: meta.DateSource,
		Route:      route.Route(meta),
	}

	var dstDir string
	if res.Route == domain.RouteDated {
		base, suffix := route.Target(p.folders, p.cfg, f.Kind)
		dir, created, err := dirtree.EnsureMonthDir(p.fs, base, meta.Year, meta.Month, suffix, p.dryRun)
		p.reportDirs(created)
		if err != nil {
			res.Status = domain.StatusFailed
			res.ErrorCode = errorCode(err, domain.ErrCodeMkdirFailed)
			res.ErrorMsg = fmt.Sprintf("创建目录失败：%v", err)
			return res
		}
		dstDir = dir
	} else {
		dstDir = filepath.Clean(p.cfg.UnsortedDir)
	}
	res.Dst = filepath.Join(dstDir, f.Name)

	out, err := mover.Move(p.fs, filepath.Dir(f.AbsPath), dstDir, f.Name, p.dryRun)
	if err != nil {
		res.Status = domain.StatusFailed
		res.ErrorCode = errorCode(err, domain.ErrCodeMoveFailed)
		res.ErrorMsg = fmt.Sprintf("移动失败：%v", err)
		return res
	}

	switch out {
	case mover.OutcomeKept:
		res.Status = domain.StatusKept
	case mover.OutcomePlanned:
		res.Status = domain.StatusPlanned
	default:
		if res.Route == domain.RouteUnsorted {
			res.Status = domain.StatusUnsorted
		} else {
			res.Status = domain.StatusMoved
		}
	}
	return res
}

// errorCode 把已知的结构化错误映射为 error_code；其余归为 fallback。
func errorCode(err error, fallback string) string {
	switch {
	case fsx.IsPathTypeConflict(err):
		return domain.ErrCodeTargetConflict
	case fsx.IsCrossDevice(err):
		return domain.ErrCodeCrossDevice
	default:
		return fallback
	}
}

func (p *processor) reportDirs(created []string) {
	for _, d := range created {
		if p.dryRun {
			if _, ok := p.planned[d]; ok {
				continue
			}
			p.planned[d] = struct{}{}
		}
		p.obs.OnDirCreated(d)
	}
}
