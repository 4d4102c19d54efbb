//go:build unix

package fsx

import (
	"errors"
	"os"
	"syscall"
)

// isEXDEV 同时识别裸 errno 与 *os.LinkError 包装（os.Rename 返回后者）。
func isEXDEV(err error) bool {
	var le *os.LinkError
	if errors.As(err, &le) {
		return errors.Is(le.Err, syscall.EXDEV)
	}
	return errors.Is(err, syscall.EXDEV)
}
