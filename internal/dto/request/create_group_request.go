package request

// CreateGroupRequest 创建群组请求
// 使用位置:
//   - internal/handler/group_handler.go: CreateGroupHandler
//   - internal/service/group/service.go: CreateGroup
type CreateGroupRequest struct {
	Name             string `json:"name" binding:"required,max=50"`
	Description      string `json:"description" binding:"max=500"`
	DescriptionAr    string `json:"description_ar" binding:"max=500"`
	CityId           uint   `json:"city_id"`
	Visibility       string `json:"visibility" binding:"omitempty,oneof=public private"`
	RequiresApproval int8   `json:"requires_approval" binding:"oneof=0 1"`
	MaxMembers       int    `json:"max_members" binding:"gte=0"`
	CategoryIds      []uint `json:"category_ids"`
	CoverUrl         string `json:"cover_url"`
}
