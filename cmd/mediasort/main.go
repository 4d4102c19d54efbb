package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/John-Robertt/mediasort/internal/app/folders"
	"github.com/John-Robertt/mediasort/internal/app/preflight"
	"github.com/John-Robertt/mediasort/internal/app/run"
	"github.com/John-Robertt/mediasort/internal/config"
	"github.com/John-Robertt/mediasort/internal/domain"
	"github.com/John-Robertt/mediasort/internal/infra/execx"
	"github.com/John-Robertt/mediasort/internal/infra/fsx"
	"github.com/John-Robertt/mediasort/internal/infra/logx"
	"github.com/John-Robertt/mediasort/internal/metadata"
)

// cliEnv 汇总进程级的外部依赖；测试时整体替换。
type cliEnv struct {
	fs        afero.Fs
	stdout    io.Writer
	stdoutTTY bool
	lookup    config.LookupEnv
	home      string
	exeDir    string
	cwd       string
	clock     clockwork.Clock
	runner    execx.Runner
}

func main() {
	os.Exit(runCLI(os.Args[1:], processEnv()))
}

func processEnv() cliEnv {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()

	exeDir := cwd
	if exe, err := os.Executable(); err == nil {
		if real, err := filepath.EvalSymlinks(exe); err == nil {
			exe = real
		}
		exeDir = filepath.Dir(exe)
	}

	fd := os.Stdout.Fd()
	return cliEnv{
		fs:        afero.NewOsFs(),
		stdout:    os.Stdout,
		stdoutTTY: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		lookup:    os.LookupEnv,
		home:      home,
		exeDir:    exeDir,
		cwd:       cwd,
		clock:     clockwork.NewRealClock(),
		runner:    execx.CommandRunner{},
	}
}

type cliFlags struct {
	configFile string
	backend    string
	dryRun     bool
	report     string
	help       bool
}

// runCLI 执行一次完整流程并返回进程退出码。
//
// 退出码：启动阶段的错误（参数、配置、元数据工具、unsorted 目录）为 1；
// 批处理开始后即使个别文件失败也返回 0（失败已写入日志与报告）。
func runCLI(args []string, env cliEnv) int {
	fl, flags := newFlagSet(env.stdout)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		bootLogger(env).Error("%v", err)
		printUsage(env.stdout, flags)
		return 1
	}
	if fl.help {
		printUsage(env.stdout, flags)
		return 0
	}

	eff, err := config.LoadEffective(env.fs, config.Default(env.home, env.exeDir), config.CLIArgs{
		ConfigFile: fl.configFile,
		DotEnv:     filepath.Join(env.cwd, ".env"),
		Backend:    fl.backend,
		BackendSet: flags.Changed("backend"),
		DryRun:     fl.dryRun,
	}, env.lookup)
	if err != nil {
		boot := bootLogger(env)
		boot.Error("%v", err)
		if fl.report != "" {
			if werr := writeReportFile(env.fs, fl.report, reportForConfigError(env, fl, err)); werr != nil {
				boot.Error("写入报告失败：%v", werr)
			}
		}
		return 1
	}

	log, closeLog, err := newLogger(env, eff.Config)
	if err != nil {
		bootLogger(env).Error("%v", err)
		return 1
	}
	defer closeLog()

	if err := preflight.CheckBackend(env.fs, eff.Config); err != nil {
		log.Error("%v", err)
		return 1
	}
	created, err := preflight.EnsureDir(env.fs, eff.UnsortedDir, eff.DryRun)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	if created {
		note := ""
		if eff.DryRun {
			note = "（dry-run）"
		}
		log.Info("创建新文件夹：%s%s", eff.UnsortedDir, note)
	}

	dirs, err := folders.Resolve(env.fs, flags.Args())
	if err != nil {
		var ae *folders.ArgError
		if errors.As(err, &ae) && ae.Kind == folders.KindUsage {
			printUsage(env.stdout, flags)
			return 1
		}
		log.Error("%v", err)
		if ae != nil && ae.WantsUsage() {
			printUsage(env.stdout, flags)
		}
		return 1
	}

	backend, err := metadata.Select(eff.Config, env.fs, env.runner)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	rr := run.Execute(context.Background(), run.Deps{
		Fs:        env.fs,
		Eff:       eff,
		Extractor: metadata.Extractor{Backend: backend},
		Clock:     env.clock,
	}, dirs, newConsole(log))

	s := rr.Summary
	log.Info("完成：moved=%d unsorted=%d kept=%d failed=%d planned=%d", s.Moved, s.Unsorted, s.Kept, s.Failed, s.Planned)

	if fl.report != "" {
		if err := writeReportFile(env.fs, fl.report, rr); err != nil {
			log.Error("写入报告失败：%v", err)
			return 1
		}
		log.Info("报告：%s", fl.report)
	}
	return 0
}

func newFlagSet(out io.Writer) (*cliFlags, *pflag.FlagSet) {
	fl := &cliFlags{}
	flags := pflag.NewFlagSet("mediasort", pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.SortFlags = false

	flags.StringVar(&fl.configFile, "config", "", "YAML 配置文件（也可用环境变量 "+config.EnvConfig+"）")
	flags.StringVar(&fl.backend, "backend", "", "元数据后端：exiftool|gettool|native（默认读配置，最终默认 gettool）")
	flags.BoolVar(&fl.dryRun, "dry-run", false, "只打印将要执行的操作，不创建文件夹、不移动文件")
	flags.StringVar(&fl.report, "report", "", "把运行报告以 JSON 写入该文件")
	flags.BoolVarP(&fl.help, "help", "h", false, "显示帮助")

	flags.Usage = func() { printUsage(out, flags) }
	return fl, flags
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprint(w, `用法：

  照片和视频使用同一个目标文件夹：
    mediasort [参数] <源文件夹> <目标文件夹>

  照片和视频分别使用各自的目标文件夹：
    mediasort [参数] <源文件夹> <照片目标文件夹> <视频目标文件夹>

参数：
`)
	fmt.Fprint(w, flags.FlagUsages())
}

// newLogger 按配置组装日志：终端一路（仅 TTY 着色），可选再加一路滚动日志文件。
func newLogger(env cliEnv, cfg config.Config) (*logx.Logger, func(), error) {
	sinks := []logx.Sink{{W: env.stdout, Color: env.stdoutTTY}}
	closeFn := func() {}

	if cfg.LogFile != "" {
		f := logx.OpenRotating(cfg.LogFile)
		sinks = append(sinks, logx.Sink{W: f})
		closeFn = func() { _ = f.Close() }
	}

	log, err := logx.New(cfg.LogTimeFormat, env.clock, sinks...)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return log, closeFn, nil
}

// bootLogger 用于配置尚未就绪时的错误输出（默认时间格式，只写终端）。
func bootLogger(env cliEnv) *logx.Logger {
	log, _ := logx.New(logx.DefaultTimeFormat, env.clock, logx.Sink{W: env.stdout, Color: env.stdoutTTY})
	return log
}

// reportForConfigError 生成只含一条 failed 记录的报告（src 为配置文件路径）。
func reportForConfigError(env cliEnv, fl *cliFlags, err error) domain.RunReport {
	now := env.clock.Now()
	src := fl.configFile
	var ce *config.Error
	if errors.As(err, &ce) && ce.Path != "" {
		src = ce.Path
	}
	rr := domain.RunReport{
		DryRun:     fl.dryRun,
		StartedAt:  now,
		FinishedAt: now,
		Items: []domain.FileResult{{
			Src:       src,
			Status:    domain.StatusFailed,
			ErrorCode: config.Code(err),
			ErrorMsg:  err.Error(),
		}},
	}
	rr.Finalize()
	return rr
}

func writeReportFile(fs afero.Fs, path string, rr domain.RunReport) error {
	b, err := json.MarshalIndent(rr, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return fsx.WriteFileAtomicReplace(fs, filepath.Dir(path), filepath.Base(path), b)
}
