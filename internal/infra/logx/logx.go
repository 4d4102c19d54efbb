// Package logx 提供带时间戳的行式日志（info / error 两级），输出到终端与可选的滚动日志文件。
package logx

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/jonboulle/clockwork"
	"github.com/lestrrat-go/strftime"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultTimeFormat 是日志行首时间戳的 strftime 格式，例如 "12.02.2015 00.05.58"。
const DefaultTimeFormat = "%d.%m.%Y %H.%M.%S"

// Sink 是一个输出目标；Color=true 时 ERROR 前缀着色（只应对终端开启）。
type Sink struct {
	W     io.Writer
	Color bool
}

// Logger 输出两种行：
//
//	<ts>: <msg>
//	<ts>: ERROR: <msg>
//
// 并发安全（虽然主流程是串行的）。
type Logger struct {
	mu    sync.Mutex
	sinks []Sink
	clock clockwork.Clock
	ts    *strftime.Strftime
	red   *color.Color
}

// New 创建 Logger。layout 为空时使用 DefaultTimeFormat；clock 为空时使用真实时钟。
func New(layout string, clock clockwork.Clock, sinks ...Sink) (*Logger, error) {
	if strings.TrimSpace(layout) == "" {
		layout = DefaultTimeFormat
	}
	ts, err := strftime.New(layout)
	if err != nil {
		return nil, fmt.Errorf("日志时间格式无效 %q：%w", layout, err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	red := color.New(color.FgRed, color.Bold)
	// 是否着色由 Sink 决定，不依赖 color 包对 stdout 的全局探测。
	red.EnableColor()
	return &Logger{
		sinks: sinks,
		clock: clock,
		ts:    ts,
		red:   red,
	}, nil
}

// Info 输出一条普通日志。
func (l *Logger) Info(format string, args ...any) {
	l.write(false, fmt.Sprintf(format, args...))
}

// Error 输出一条错误日志（带 ERROR 前缀）。
func (l *Logger) Error(format string, args ...any) {
	l.write(true, fmt.Sprintf(format, args...))
}

func (l *Logger) write(isErr bool, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamp := l.ts.FormatString(l.clock.Now())
	msg = strings.TrimRight(msg, "\n")

	for _, s := range l.sinks {
		if s.W == nil {
			continue
		}
		var line string
		switch {
		case !isErr:
			line = stamp + ": " + msg + "\n"
		case s.Color:
			line = stamp + ": " + l.red.Sprint("ERROR") + ": " + msg + "\n"
		default:
			line = stamp + ": ERROR: " + msg + "\n"
		}
		_, _ = io.WriteString(s.W, line)
	}
}

// OpenRotating 返回一个按大小滚动的日志文件 writer（调用方负责 Close）。
func OpenRotating(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     90, // days
	}
}
