package domain

import "regexp"

var (
	yearRE  = regexp.MustCompile(`^20\d\d$`)
	monthRE = regexp.MustCompile(`^(0?[1-9]|1[012])$`)
)

// ParseYear 校验年份片段（必须形如 20xx；不做 trim，带空白即不合法）。
func ParseYear(s string) (string, bool) {
	if !yearRE.MatchString(s) {
		return "", false
	}
	return s, true
}

// ParseMonth 校验月份片段（1-12，可带前导 0），并规范化为两位数。
func ParseMonth(s string) (string, bool) {
	if !monthRE.MatchString(s) {
		return "", false
	}
	if len(s) == 1 {
		s = "0" + s
	}
	return s, true
}

const (
	DateSourceMetadata = "metadata"
	DateSourceFilename = "filename"
)

// Metadata 是一次提取得到的结果。
// Year/Month 为空表示“日期未知”，调用方据此路由到 unsorted。
type Metadata struct {
	Model      string
	Year       string
	Month      string
	DateSource string // metadata | filename | ""
}

// Dated 报告 year 与 month 是否都有效。
func (m Metadata) Dated() bool {
	return m.Year != "" && m.Month != ""
}
