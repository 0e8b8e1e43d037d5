package repository

import (
	"tajamu_group_server/internal/model"

	"gorm.io/gorm"
)

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository 创建城市与分类 Repository
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// FindAllCities 查找所有城市
func (r *taxonomyRepository) FindAllCities() ([]model.City, error) {
	var cities []model.City
	if err := r.db.Find(&cities).Error; err != nil {
		return nil, wrapDBError(err, "查询城市列表")
	}
	return cities, nil
}

// FindCitiesByIds 批量查找城市
func (r *taxonomyRepository) FindCitiesByIds(ids []uint) ([]model.City, error) {
	var cities []model.City
	if len(ids) == 0 {
		return cities, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&cities).Error; err != nil {
		return nil, wrapDBError(err, "批量查询城市")
	}
	return cities, nil
}

// FindAllCategories 查找所有分类
func (r *taxonomyRepository) FindAllCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, wrapDBError(err, "查询分类列表")
	}
	return categories, nil
}

// FindCategoriesByGroupUuids 批量查询群组集合的分类
// 通过 group_interest 关联表 JOIN category，一次查询取回所有群组的分类
func (r *taxonomyRepository) FindCategoriesByGroupUuids(groupUuids []string) ([]GroupCategoryRow, error) {
	var rows []GroupCategoryRow
	if len(groupUuids) == 0 {
		return rows, nil
	}
	if err := r.db.Table("group_interest").
		Select("group_interest.group_uuid, category.name, category.name_ar, category.icon").
		Joins("LEFT JOIN category ON group_interest.category_id = category.id").
		Where("group_interest.group_uuid IN ? AND group_interest.deleted_at IS NULL", groupUuids).
		Scan(&rows).Error; err != nil {
		return nil, wrapDBError(err, "批量查询群组分类")
	}
	return rows, nil
}

// CreateGroupInterests 批量创建群组分类关联
func (r *taxonomyRepository) CreateGroupInterests(interests []model.GroupInterest) error {
	if len(interests) == 0 {
		return nil
	}
	if err := r.db.Create(&interests).Error; err != nil {
		return wrapDBError(err, "创建群组分类关联")
	}
	return nil
}
