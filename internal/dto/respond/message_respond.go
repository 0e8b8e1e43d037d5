package respond

// AttachmentRespond 消息附件
type AttachmentRespond struct {
	FileUrl  string `json:"file_url"`
	FileType string `json:"file_type"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}

// MessageRespond 群消息响应
// 纯附件消息的 Content 为占位文案
// 使用位置:
//   - internal/service/stream/service.go: Backfill, SendMessage
type MessageRespond struct {
	MessageId   string              `json:"message_id"`
	GroupId     string              `json:"group_id"`
	SendId      string              `json:"send_id"`
	SendName    string              `json:"send_name"`
	SendAvatar  string              `json:"send_avatar"`
	Content     string              `json:"content"`
	Attachments []AttachmentRespond `json:"attachments,omitempty"`
	CreatedAt   string              `json:"created_at"`
}
