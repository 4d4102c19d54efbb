// Package stamp 从时间戳字符串或文件名中切出年/月。
//
// 规则固定为字符偏移：0-3 为年，5-6 为月，例如
//
//	"2015:02:12 00:05:58"      （元数据时间戳）
//	"2015-02-12 00.05.58.jpg"  （Carousel 命名约定的文件名）
package stamp

import (
	"github.com/John-Robertt/mediasort/internal/domain"
)

// Split 按固定偏移切出 year 与 month；字符串不够长时对应片段为空（或截断）。
func Split(s string) (year, month string) {
	return slice(s, 0, 4), slice(s, 5, 7)
}

// Resolve 决定一个文件的年月。
//
// - date 有值：从 date 切
// - date 无值：从文件名切
//
// 切出的年月再分别校验（20xx / 1-12）；不合法的片段置空。
// source 仅在年月都有效时非空。
func Resolve(date string, datePresent bool, fileName string) (year, month, source string) {
	src := domain.DateSourceMetadata
	raw := date
	if !datePresent {
		src = domain.DateSourceFilename
		raw = fileName
	}

	y, m := Split(raw)
	year, _ = domain.ParseYear(y)
	month, _ = domain.ParseMonth(m)
	if year == "" || month == "" {
		return year, month, ""
	}
	return year, month, src
}

// slice 越界时截断而不是 panic。
func slice(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
