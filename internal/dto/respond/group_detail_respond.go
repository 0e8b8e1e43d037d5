package respond

// CategoryRespond 群组分类
type CategoryRespond struct {
	Name   string `json:"name"`
	NameAr string `json:"name_ar"`
	Icon   string `json:"icon"`
}

// GroupDetailRespond 群组详情响应，包含当前用户视角的成员关系
// 使用位置:
//   - internal/service/group/service.go: GetGroupDetails
type GroupDetailRespond struct {
	GroupId          string            `json:"group_id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	DescriptionAr    string            `json:"description_ar"`
	CoverUrl         string            `json:"cover_url"`
	CityId           uint              `json:"city_id"`
	CityName         string            `json:"city_name"`
	Categories       []CategoryRespond `json:"categories"`
	CreatedBy        string            `json:"created_by"`
	EventId          uint              `json:"event_id,omitempty"`
	Visibility       string            `json:"visibility"`
	RequiresApproval int8              `json:"requires_approval"`
	CurrentMembers   int               `json:"current_members"`
	MaxMembers       int               `json:"max_members"`
	CreatedAt        string            `json:"created_at"`

	// 当前用户视角
	IsMember       bool `json:"is_member"`
	Role           int8 `json:"role"`
	IsMuted        bool `json:"is_muted"`
	PendingRequest bool `json:"pending_request"` // 是否有待处理的入群申请
}
