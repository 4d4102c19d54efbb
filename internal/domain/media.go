package domain

// MediaKind 区分照片与视频；决定元数据字段名以及双目标模式下的落点。
type MediaKind string

const (
	KindPhoto MediaKind = "photo"
	KindVideo MediaKind = "video"
)

// MediaFile 描述源目录中的一个候选文件（只做 stat，不读内容）。
//
// 不变量：
// - AbsPath 必须是 clean + absolute
// - Ext 保留原始大小写（扩展名匹配是大小写敏感的）
type MediaFile struct {
	AbsPath string
	Name    string // 含扩展名
	Ext     string // ".jpg"
	Kind    MediaKind
}
