package respond

// GroupAvatarsRespond 群组头像预览，每个群组采样少量成员头像
// 使用位置:
//   - internal/service/group/service.go: GetAvatarsMap
type GroupAvatarsRespond struct {
	GroupId string   `json:"group_id"`
	Avatars []string `json:"avatars"`
}
