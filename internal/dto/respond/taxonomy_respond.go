package respond

// CityRespond 城市选项
// 使用位置:
//   - internal/service/group/queries.go: ListCities
type CityRespond struct {
	CityId uint   `json:"city_id"`
	Name   string `json:"name"`
	NameAr string `json:"name_ar"`
}

// CategoryOptionRespond 分类选项，创建群组时选择
// 使用位置:
//   - internal/service/group/queries.go: ListCategories
type CategoryOptionRespond struct {
	CategoryId uint   `json:"category_id"`
	Name       string `json:"name"`
	NameAr     string `json:"name_ar"`
	Icon       string `json:"icon"`
}
