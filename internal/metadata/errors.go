package metadata

import "fmt"

// LookupError 是一次字段查询失败的可追溯错误。
type LookupError struct {
	Backend string
	Field   Field
	Path    string
	Err     error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("backend=%s field=%s path=%q: %v", e.Backend, e.Field, e.Path, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
