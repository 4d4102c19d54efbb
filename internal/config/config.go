package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// ErrCodeNotFound 表示显式指定的配置文件不存在。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	BackendExifTool = "exiftool"
	BackendGetTool  = "gettool"
	BackendNative   = "native"
)

// 环境变量名（.env 文件与进程环境共用同一组 key）。
const (
	EnvConfig   = "MEDIASORT_CONFIG"
	EnvBackend  = "MEDIASORT_BACKEND"
	EnvExifTool = "MEDIASORT_EXIFTOOL"
	EnvGetTool  = "MEDIASORT_GETTOOL"
	EnvUnsorted = "MEDIASORT_UNSORTED"
	EnvLogFile  = "MEDIASORT_LOG_FILE"
)

const (
	DefaultLibraryDir   = "Dropbox"
	DefaultUnsortedName = "Unsorted Media Files"
	DefaultTimeFormat   = "%d.%m.%Y %H.%M.%S"
)

// Config 是一次运行所需的全部静态配置（启动时构造一次，之后只读传递给各组件）。
type Config struct {
	PhotoExts []string `yaml:"photo_extensions" json:"photo_extensions"`
	VideoExts []string `yaml:"video_extensions" json:"video_extensions"`

	Backend string `yaml:"backend" json:"backend"`

	// 照片/视频分开存放时，追加到月份目录名后的后缀。
	PhotoSuffix string `yaml:"photo_suffix" json:"photo_suffix"`
	VideoSuffix string `yaml:"video_suffix" json:"video_suffix"`

	LibraryRoot string `yaml:"library_root" json:"library_root"`
	UnsortedDir string `yaml:"unsorted_dir" json:"unsorted_dir"`

	ExifToolPath string `yaml:"exiftool_path" json:"exiftool_path"`
	GetToolPath  string `yaml:"gettool_path" json:"gettool_path"`

	LogTimeFormat string `yaml:"log_time_format" json:"log_time_format"`
	LogFile       string `yaml:"log_file" json:"log_file"`
}

// Default 返回内置默认配置。
// home 是用户主目录；exeDir 是本程序所在目录（自定义元数据工具默认与程序放在一起）。
func Default(home, exeDir string) Config {
	root := filepath.Join(home, DefaultLibraryDir)
	return Config{
		PhotoExts:     []string{".jpg", ".JPG"},
		VideoExts:     []string{".mov", ".MOV"},
		Backend:       BackendGetTool,
		PhotoSuffix:   "-kuvat",
		VideoSuffix:   "-videot",
		LibraryRoot:   root,
		UnsortedDir:   filepath.Join(root, DefaultUnsortedName),
		ExifToolPath:  "/usr/bin/exiftool",
		GetToolPath:   filepath.Join(exeDir, "get-metadata"),
		LogTimeFormat: DefaultTimeFormat,
	}
}

// ToolPath 返回当前 backend 需要的可执行文件路径；native 不需要外部程序，返回空串。
func (c Config) ToolPath() string {
	switch c.Backend {
	case BackendExifTool:
		return c.ExifToolPath
	case BackendGetTool:
		return c.GetToolPath
	default:
		return ""
	}
}

var extRE = regexp.MustCompile(`^\.[^./\\\s]+$`)

// Validate 校验字段合法性（ozzo-validation）。
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.PhotoExts, validation.Required, validation.Each(validation.Required, validation.Match(extRE))),
		validation.Field(&c.VideoExts, validation.Required, validation.Each(validation.Required, validation.Match(extRE))),
		validation.Field(&c.Backend, validation.Required, validation.In(BackendExifTool, BackendGetTool, BackendNative)),
		validation.Field(&c.UnsortedDir, validation.Required),
		validation.Field(&c.ExifToolPath, validation.When(c.Backend == BackendExifTool, validation.Required)),
		validation.Field(&c.GetToolPath, validation.When(c.Backend == BackendGetTool, validation.Required)),
		validation.Field(&c.LogTimeFormat, validation.By(checkTimeFormat)),
	)
}

func checkTimeFormat(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if _, err := strftime.New(s); err != nil {
		return fmt.Errorf("无效的 strftime 格式：%v", err)
	}
	return nil
}

// CLIArgs 只包含 CLI 暴露的配置项，并保留“是否显式指定”的信息。
type CLIArgs struct {
	ConfigFile string
	DotEnv     string // .env 文件路径（可选；不存在不报错）

	Backend    string
	BackendSet bool

	DryRun bool
}

// LookupEnv 与 os.LookupEnv 同签名；测试时可替换。
type LookupEnv func(key string) (string, bool)

// FileConfig 对应 YAML 配置文件；指针字段用于区分“未设置”与“设置为空串”。
type FileConfig struct {
	PhotoExts     []string `yaml:"photo_extensions"`
	VideoExts     []string `yaml:"video_extensions"`
	Backend       *string  `yaml:"backend"`
	PhotoSuffix   *string  `yaml:"photo_suffix"`
	VideoSuffix   *string  `yaml:"video_suffix"`
	LibraryRoot   *string  `yaml:"library_root"`
	UnsortedDir   *string  `yaml:"unsorted_dir"`
	ExifToolPath  *string  `yaml:"exiftool_path"`
	GetToolPath   *string  `yaml:"gettool_path"`
	LogTimeFormat *string  `yaml:"log_time_format"`
	LogFile       *string  `yaml:"log_file"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	Config

	DryRun     bool
	ConfigFile string // 实际读取的配置文件；未使用则为空
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Path == "" {
			return fmt.Sprintf("%s：配置无效：%v", e.Code, e.Err)
		}
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 把内置默认值与各来源合并为最终配置。
//
// 覆盖优先级（固定，后者覆盖前者）：
// 1) defaults
// 2) YAML 配置文件：CLI --config > 环境变量 MEDIASORT_CONFIG；显式指定但不存在 => config_not_found
// 3) .env 文件中的 MEDIASORT_*（只读取，不修改进程环境）
// 4) 进程环境变量 MEDIASORT_*
// 5) CLI 参数（--backend、--dry-run）
//
// library_root 被改写而 unsorted_dir 未显式设置时，unsorted_dir 跟随 library_root。
func LoadEffective(fs afero.Fs, defaults Config, cli CLIArgs, lookup LookupEnv) (EffectiveConfig, error) {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	dotenv, err := readDotEnv(fs, cli.DotEnv)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cli.DotEnv, Err: err}
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	home, _ := lookup("HOME")

	cfg := clone(defaults)
	unsortedSet := false

	cfgPath := strings.TrimSpace(cli.ConfigFile)
	if cfgPath == "" {
		if v, ok := env(EnvConfig); ok {
			cfgPath = strings.TrimSpace(v)
		}
	}
	if cfgPath != "" {
		cfgPath = expandHome(cfgPath, home)
		fc, err := readFileConfig(fs, cfgPath)
		if err != nil {
			return EffectiveConfig{}, err
		}
		unsortedSet = applyFile(&cfg, fc, home)
	}

	if v, ok := env(EnvBackend); ok && strings.TrimSpace(v) != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := env(EnvExifTool); ok && strings.TrimSpace(v) != "" {
		cfg.ExifToolPath = expandHome(strings.TrimSpace(v), home)
	}
	if v, ok := env(EnvGetTool); ok && strings.TrimSpace(v) != "" {
		cfg.GetToolPath = expandHome(strings.TrimSpace(v), home)
	}
	if v, ok := env(EnvUnsorted); ok && strings.TrimSpace(v) != "" {
		cfg.UnsortedDir = expandHome(strings.TrimSpace(v), home)
		unsortedSet = true
	}
	if v, ok := env(EnvLogFile); ok {
		cfg.LogFile = expandHome(strings.TrimSpace(v), home)
	}

	if cli.BackendSet {
		cfg.Backend = strings.ToLower(strings.TrimSpace(cli.Backend))
	}

	if !unsortedSet && filepath.Clean(cfg.LibraryRoot) != filepath.Clean(defaults.LibraryRoot) {
		cfg.UnsortedDir = filepath.Join(cfg.LibraryRoot, DefaultUnsortedName)
	}
	if cfg.UnsortedDir != "" {
		cfg.UnsortedDir = filepath.Clean(cfg.UnsortedDir)
	}

	if err := cfg.Validate(); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	return EffectiveConfig{
		Config:     cfg,
		DryRun:     cli.DryRun,
		ConfigFile: cfgPath,
	}, nil
}

// applyFile 把文件中出现的字段覆盖到 cfg；返回 unsorted_dir 是否被显式设置。
func applyFile(cfg *Config, fc FileConfig, home string) (unsortedSet bool) {
	if fc.PhotoExts != nil {
		cfg.PhotoExts = trimAll(fc.PhotoExts)
	}
	if fc.VideoExts != nil {
		cfg.VideoExts = trimAll(fc.VideoExts)
	}
	if fc.Backend != nil {
		cfg.Backend = strings.ToLower(strings.TrimSpace(*fc.Backend))
	}
	if fc.PhotoSuffix != nil {
		cfg.PhotoSuffix = *fc.PhotoSuffix
	}
	if fc.VideoSuffix != nil {
		cfg.VideoSuffix = *fc.VideoSuffix
	}
	if fc.LibraryRoot != nil {
		cfg.LibraryRoot = expandHome(strings.TrimSpace(*fc.LibraryRoot), home)
	}
	if fc.UnsortedDir != nil {
		cfg.UnsortedDir = expandHome(strings.TrimSpace(*fc.UnsortedDir), home)
		unsortedSet = true
	}
	if fc.ExifToolPath != nil {
		cfg.ExifToolPath = expandHome(strings.TrimSpace(*fc.ExifToolPath), home)
	}
	if fc.GetToolPath != nil {
		cfg.GetToolPath = expandHome(strings.TrimSpace(*fc.GetToolPath), home)
	}
	if fc.LogTimeFormat != nil {
		cfg.LogTimeFormat = *fc.LogTimeFormat
	}
	if fc.LogFile != nil {
		cfg.LogFile = expandHome(strings.TrimSpace(*fc.LogFile), home)
	}
	return unsortedSet
}

// readFileConfig 读取并解析 YAML 配置文件。显式指定的文件必须存在。
func readFileConfig(fs afero.Fs, path string) (FileConfig, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, &Error{Code: ErrCodeNotFound, Path: path, Err: os.ErrNotExist}
		}
		return FileConfig{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, &Error{Code: ErrCodeInvalid, Path: path, Err: err}
	}
	return fc, nil
}

// readDotEnv 读取 .env；路径为空或文件不存在都返回空 map。
func readDotEnv(fs afero.Fs, path string) (map[string]string, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]string{}, nil
	}
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return godotenv.Unmarshal(string(b))
}

func clone(c Config) Config {
	c.PhotoExts = append([]string(nil), c.PhotoExts...)
	c.VideoExts = append([]string(nil), c.VideoExts...)
	return c
}

func trimAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, strings.TrimSpace(x))
	}
	return out
}

// expandHome 展开前导 "~/"；home 为空时原样返回。
func expandHome(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}
