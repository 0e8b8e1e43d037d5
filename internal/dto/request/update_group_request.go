package request

// UpdateGroupRequest 更新群组信息请求，仅群主可操作
// 使用位置:
//   - internal/handler/group_handler.go: UpdateGroup
//   - internal/service/group/service.go: UpdateGroup
type UpdateGroupRequest struct {
	GroupId          string `json:"group_id" binding:"required"`
	Name             string `json:"name" binding:"required,max=50"`
	Description      string `json:"description" binding:"max=500"`
	DescriptionAr    string `json:"description_ar" binding:"max=500"`
	CityId           uint   `json:"city_id"`
	Visibility       string `json:"visibility" binding:"omitempty,oneof=public private"`
	RequiresApproval int8   `json:"requires_approval" binding:"oneof=0 1"`
	MaxMembers       int    `json:"max_members" binding:"gte=0"`
	CoverUrl         string `json:"cover_url"`
}
