package respond

// GroupSummaryRespond 群组摘要，用于列表场景
// 使用位置:
//   - internal/service/group/service.go: GetMyGroups, DiscoverGroups, SearchGroups
type GroupSummaryRespond struct {
	GroupId        string            `json:"group_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	CoverUrl       string            `json:"cover_url"`
	CityName       string            `json:"city_name"`
	Categories     []CategoryRespond `json:"categories"`
	Visibility     string            `json:"visibility"`
	CurrentMembers int               `json:"current_members"`
	MaxMembers     int               `json:"max_members"`
}

// MyGroupsRespond "我的群组"响应，自建和加入分开展示
// 使用位置:
//   - internal/service/group/service.go: GetMyGroups
type MyGroupsRespond struct {
	Created []GroupSummaryRespond `json:"created"`
	Joined  []GroupSummaryRespond `json:"joined"`
}
