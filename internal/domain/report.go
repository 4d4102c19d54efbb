package domain

import (
	"encoding/json"
	"sort"
	"time"
)

const (
	StatusMoved    = "moved"
	StatusUnsorted = "unsorted"
	StatusKept     = "kept"
	StatusFailed   = "failed"
	StatusPlanned  = "planned"
)

// error_code：失败条目的机器可读分类。
const (
	ErrCodeScanFailed     = "scan_failed"
	ErrCodeMkdirFailed    = "mkdir_failed"
	ErrCodeMoveFailed     = "move_failed"
	ErrCodeTargetConflict = "target_conflict"
	ErrCodeCrossDevice    = "cross_device"
)

const (
	RouteDated    = "dated"
	RouteUnsorted = "unsorted"
)

// RunReport 是一次运行的结果汇总（--report 输出的 JSON 结构）。
type RunReport struct {
	Source string `json:"source"`
	DryRun bool   `json:"dry_run"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Items   []FileResult  `json:"items"`
}

type ReportSummary struct {
	Moved    int `json:"moved"`
	Unsorted int `json:"unsorted"`
	Kept     int `json:"kept"`
	Failed   int `json:"failed"`
	Planned  int `json:"planned"`
}

// FileResult 是单个文件的处理结果。
type FileResult struct {
	Src        string    `json:"src"`
	Name       string    `json:"name"`
	Dst        string    `json:"dst"`
	Kind       MediaKind `json:"kind"`
	Model      string    `json:"model"`
	Year       string    `json:"year"`
	Month      string    `json:"month"`
	DateSource string    `json:"date_source"`
	Route      string    `json:"route"`

	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) items 稳定排序：按 src 字典序
// 3) summary 由 items 计算得出
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	if r.Items == nil {
		r.Items = []FileResult{}
	}
	sort.SliceStable(r.Items, func(i, j int) bool { return r.Items[i].Src < r.Items[j].Src })

	var s ReportSummary
	for _, it := range r.Items {
		switch it.Status {
		case StatusMoved:
			s.Moved++
		case StatusUnsorted:
			s.Unsorted++
		case StatusKept:
			s.Kept++
		case StatusFailed:
			s.Failed++
		case StatusPlanned:
			s.Planned++
		}
	}
	r.Summary = s
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
// 当前只是透传 encoding/json 的默认行为。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}
