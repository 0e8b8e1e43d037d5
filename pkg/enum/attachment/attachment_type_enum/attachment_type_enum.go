package attachment_type_enum

// 消息附件类型
const (
	IMAGE = "image"
	VIDEO = "video"
	AUDIO = "audio"
	FILE  = "file" // 其他文件类型
)
