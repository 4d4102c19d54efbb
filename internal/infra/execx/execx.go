package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Output 是一次外部命令调用的结构化结果。
//
// - Value：去掉首尾空白的 stdout
// - Present：Value 非空（调用方只看 Present，不再自己判断空串）
// - Diag：去掉首尾空白的 stderr（诊断信息，单独通道，不参与取值）
type Output struct {
	Value   string
	Present bool
	Diag    string
}

// Runner 同步执行外部命令并等待结束。
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// CommandRunner 是基于 os/exec 的 Runner。
type CommandRunner struct{}

// Run 执行命令。命令无法启动或以非 0 退出时返回 error；
// 即使返回 error，已经收集到的 stdout/stderr 也会放进 Output。
func (CommandRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return NewOutput(stdout.String(), stderr.String()), err
}

// NewOutput 规范化原始 stdout/stderr。
func NewOutput(stdout, stderr string) Output {
	v := strings.TrimSpace(stdout)
	return Output{
		Value:   v,
		Present: v != "",
		Diag:    strings.TrimSpace(stderr),
	}
}
