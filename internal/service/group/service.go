// Package group 实现群组业务逻辑
// 聚合查询走两级查询缓存，变更操作走事务并失效相关缓存键
package group

import (
	"context"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/errorx"
)

// groupService 群组业务逻辑实现
// 通过构造函数注入 Repository 和查询缓存依赖
type groupService struct {
	repos *repository.Repositories
	qc    *querycache.Cache
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, qc *querycache.Cache) *groupService {
	return &groupService{
		repos: repos,
		qc:    qc,
	}
}

// memberOf 查找成员关系，用户不在群中时返回 (nil, nil)
func (g *groupService) memberOf(groupId, userId string) (*model.GroupMember, error) {
	member, err := g.repos.GroupMember.FindByGroupAndUser(groupId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, nil
		}
		zap.L().Error("find group member error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return member, nil
}

// requireRole 校验操作者在群内的最低角色
func (g *groupService) requireRole(groupId, userId string, minRole int8) (*model.GroupMember, error) {
	member, err := g.memberOf(groupId, userId)
	if err != nil {
		return nil, err
	}
	if member == nil || member.Role < minRole {
		return nil, errorx.ErrForbidden
	}
	return member, nil
}

// buildSummaries 批量组装群组摘要
// 城市和分类各一次 IN 查询，绝不逐群组查询
func (g *groupService) buildSummaries(groups []model.Group) ([]respond.GroupSummaryRespond, error) {
	summaries := make([]respond.GroupSummaryRespond, 0, len(groups))
	if len(groups) == 0 {
		return summaries, nil
	}

	cityIds := make([]uint, 0, len(groups))
	groupUuids := make([]string, 0, len(groups))
	for _, grp := range groups {
		if grp.CityId > 0 {
			cityIds = append(cityIds, grp.CityId)
		}
		groupUuids = append(groupUuids, grp.Uuid)
	}

	cities, err := g.repos.Taxonomy.FindCitiesByIds(cityIds)
	if err != nil {
		zap.L().Error("find cities error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	cityNames := make(map[uint]string, len(cities))
	for _, city := range cities {
		cityNames[city.ID] = city.Name
	}

	categoryRows, err := g.repos.Taxonomy.FindCategoriesByGroupUuids(groupUuids)
	if err != nil {
		zap.L().Error("find group categories error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	categories := make(map[string][]respond.CategoryRespond, len(groups))
	for _, row := range categoryRows {
		categories[row.GroupUuid] = append(categories[row.GroupUuid], respond.CategoryRespond{
			Name:   row.Name,
			NameAr: row.NameAr,
			Icon:   row.Icon,
		})
	}

	for _, grp := range groups {
		cats := categories[grp.Uuid]
		if cats == nil {
			cats = make([]respond.CategoryRespond, 0)
		}
		summaries = append(summaries, respond.GroupSummaryRespond{
			GroupId:        grp.Uuid,
			Name:           grp.Name,
			Description:    grp.Description,
			CoverUrl:       grp.CoverUrl,
			CityName:       cityNames[grp.CityId],
			Categories:     cats,
			Visibility:     grp.Visibility,
			CurrentMembers: grp.CurrentMembers,
			MaxMembers:     grp.MaxMembers,
		})
	}
	return summaries, nil
}

// invalidateMembership 成员关系变化后失效相关查询
// 详情按群组前缀失效（覆盖所有用户视角），其余按键失效
func (g *groupService) invalidateMembership(groupId, userId string) {
	ctx := context.Background()
	g.qc.InvalidatePrefix(ctx, querycache.PrefixGroupDetails(groupId))
	g.qc.InvalidatePrefix(ctx, querycache.PrefixDiscover(userId))
	g.qc.Invalidate(ctx,
		querycache.KeyGroupMembers(groupId),
		querycache.KeyMyGroups(userId),
		querycache.KeyLeaderboard(groupId),
		querycache.KeyPendingRequests(groupId),
	)
}
