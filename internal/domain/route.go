package domain

// Folders 是一次运行的目标目录集合（启动时解析一次，之后只读）。
//
// 单目标模式：Photo == Video，Dual=false。
// 双目标模式：照片与视频各自落到自己的根目录，并在月份目录名后追加类型后缀。
type Folders struct {
	Source string
	Photo  string
	Video  string
	Dual   bool
}

// MovePlan 描述一次文件移动：源目录 + 目标目录 + 文件名（文件名不变）。
type MovePlan struct {
	SrcDir string
	DstDir string
	Name   string
}
