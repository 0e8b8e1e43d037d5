package group

import (
	"context"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/constants"
	"tajamu_group_server/pkg/enum/event/event_status_enum"
	"tajamu_group_server/pkg/enum/group/group_visibility_enum"
	"tajamu_group_server/pkg/enum/group_member/group_member_role_enum"
	"tajamu_group_server/pkg/enum/join_request/join_request_status_enum"
	"tajamu_group_server/pkg/errorx"
)

// GetGroupDetails 获取群组详情
// 详情带当前用户视角（是否成员、角色、是否有待处理申请），所以缓存键包含用户 UUID
func (g *groupService) GetGroupDetails(groupId, userId string) (*respond.GroupDetailRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_GROUP_DETAILS, Enabled: true}
	detail, err := querycache.GetJSON(g.qc, context.Background(), querycache.KeyGroupDetails(groupId, userId), opts,
		func(ctx context.Context) (*respond.GroupDetailRespond, error) {
			return g.fetchGroupDetails(groupId, userId)
		})
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
	}
	return detail, nil
}

func (g *groupService) fetchGroupDetails(groupId, userId string) (*respond.GroupDetailRespond, error) {
	grp, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	cityName := ""
	if grp.CityId > 0 {
		cities, err := g.repos.Taxonomy.FindCitiesByIds([]uint{grp.CityId})
		if err != nil {
			zap.L().Error("find city error", zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		if len(cities) > 0 {
			cityName = cities[0].Name
		}
	}

	categoryRows, err := g.repos.Taxonomy.FindCategoriesByGroupUuids([]string{grp.Uuid})
	if err != nil {
		zap.L().Error("find group categories error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	categories := make([]respond.CategoryRespond, 0, len(categoryRows))
	for _, row := range categoryRows {
		categories = append(categories, respond.CategoryRespond{
			Name:   row.Name,
			NameAr: row.NameAr,
			Icon:   row.Icon,
		})
	}

	detail := &respond.GroupDetailRespond{
		GroupId:          grp.Uuid,
		Name:             grp.Name,
		Description:      grp.Description,
		DescriptionAr:    grp.DescriptionAr,
		CoverUrl:         grp.CoverUrl,
		CityId:           grp.CityId,
		CityName:         cityName,
		Categories:       categories,
		CreatedBy:        grp.CreatedBy,
		EventId:          grp.EventId,
		Visibility:       grp.Visibility,
		RequiresApproval: grp.RequiresApproval,
		CurrentMembers:   grp.CurrentMembers,
		MaxMembers:       grp.MaxMembers,
		CreatedAt:        grp.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	member, err := g.memberOf(groupId, userId)
	if err != nil {
		return nil, err
	}
	if member != nil {
		detail.IsMember = true
		detail.Role = member.Role
		detail.IsMuted = member.IsMuted == 1
		return detail, nil
	}

	// 非成员检查是否有待处理申请，前端据此显示"申请中"
	request, err := g.repos.JoinRequest.FindByGroupAndUser(groupId, userId)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find join request error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if request != nil && request.Status == join_request_status_enum.PENDING {
		detail.PendingRequest = true
	}
	return detail, nil
}

// GetGroupMembers 获取群组成员列表，按角色降序、入群时间升序
func (g *groupService) GetGroupMembers(groupId string) ([]respond.GroupMemberRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_GROUP_MEMBERS, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyGroupMembers(groupId), opts,
		func(ctx context.Context) ([]respond.GroupMemberRespond, error) {
			rows, err := g.repos.GroupMember.FindMembersWithProfile(groupId)
			if err != nil {
				zap.L().Error("find group members error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			members := make([]respond.GroupMemberRespond, 0, len(rows))
			for _, row := range rows {
				fullName := row.FullName
				if fullName == "" {
					fullName = constants.PLACEHOLDER_UNKNOWN_USER
				}
				members = append(members, respond.GroupMemberRespond{
					UserId:    row.UserUuid,
					FullName:  fullName,
					AvatarUrl: row.AvatarUrl,
					Role:      row.Role,
					IsMuted:   row.IsMuted == 1,
					JoinedAt:  row.JoinedAt.Format("2006-01-02 15:04:05"),
				})
			}
			return members, nil
		})
}

// GetGroupEvents 获取群组活动列表，带当前用户的收藏状态
// 群主和管理员可以看到待审核的活动，普通成员只能看到已通过的
func (g *groupService) GetGroupEvents(groupId, userId string) ([]respond.EventRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_GROUP_EVENTS, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyGroupEvents(groupId, userId), opts,
		func(ctx context.Context) ([]respond.EventRespond, error) {
			statuses := []int8{event_status_enum.APPROVED}
			member, err := g.memberOf(groupId, userId)
			if err != nil {
				return nil, err
			}
			if member != nil && member.Role >= group_member_role_enum.MODERATOR {
				statuses = append(statuses, event_status_enum.PENDING)
			}
			events, err := g.repos.Event.FindByGroupUuid(groupId, statuses)
			if err != nil {
				zap.L().Error("find group events error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			eventUuids := make([]string, 0, len(events))
			for _, event := range events {
				eventUuids = append(eventUuids, event.Uuid)
			}
			bookmarked, err := g.repos.Event.FindBookmarkedEventUuids(eventUuids, userId)
			if err != nil {
				zap.L().Error("find bookmarked events error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			bookmarkedSet := make(map[string]struct{}, len(bookmarked))
			for _, uuid := range bookmarked {
				bookmarkedSet[uuid] = struct{}{}
			}

			rsp := make([]respond.EventRespond, 0, len(events))
			for _, event := range events {
				endAt := ""
				if !event.EndAt.IsZero() {
					endAt = event.EndAt.Format("2006-01-02 15:04:05")
				}
				_, isBookmarked := bookmarkedSet[event.Uuid]
				rsp = append(rsp, respond.EventRespond{
					EventId:      event.Uuid,
					GroupId:      event.GroupUuid,
					Title:        event.Title,
					Description:  event.Description,
					Location:     event.Location,
					CoverUrl:     event.CoverUrl,
					StartAt:      event.StartAt.Format("2006-01-02 15:04:05"),
					EndAt:        endAt,
					Status:       event.Status,
					IsBookmarked: isBookmarked,
				})
			}
			return rsp, nil
		})
}

// GetLeaderboard 获取群组活跃度排行榜
// 活跃度 = 该群内帖子数，并列时按用户 UUID 升序，取前 10 名
func (g *groupService) GetLeaderboard(groupId string) ([]respond.LeaderboardEntryRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_LEADERBOARD, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyLeaderboard(groupId), opts,
		func(ctx context.Context) ([]respond.LeaderboardEntryRespond, error) {
			postCounts, err := g.repos.Post.CountByUsersInGroup(groupId)
			if err != nil {
				zap.L().Error("count posts error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}

			ranked := rankActivity(postCounts, constants.LEADERBOARD_SIZE)
			if len(ranked) == 0 {
				return make([]respond.LeaderboardEntryRespond, 0), nil
			}

			userUuids := make([]string, 0, len(ranked))
			for _, entry := range ranked {
				userUuids = append(userUuids, entry.UserUuid)
			}
			users, err := g.repos.User.FindByUuids(userUuids)
			if err != nil {
				zap.L().Error("find leaderboard users error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			profiles := make(map[string]model.UserProfile, len(users))
			for _, user := range users {
				profiles[user.Uuid] = user
			}

			rsp := make([]respond.LeaderboardEntryRespond, 0, len(ranked))
			for i, entry := range ranked {
				fullName := constants.PLACEHOLDER_UNKNOWN_USER
				avatarUrl := ""
				if profile, ok := profiles[entry.UserUuid]; ok {
					if profile.FullName != "" {
						fullName = profile.FullName
					}
					avatarUrl = profile.AvatarUrl
				}
				rsp = append(rsp, respond.LeaderboardEntryRespond{
					Rank:      i + 1,
					UserId:    entry.UserUuid,
					FullName:  fullName,
					AvatarUrl: avatarUrl,
					Score:     entry.Score,
				})
			}
			return rsp, nil
		})
}

// GetPendingRequests 获取群组待处理入群申请，仅群主和管理员可见
// 权限校验在缓存之外，缓存键只按群组分片
func (g *groupService) GetPendingRequests(groupId, reviewerId string) ([]respond.JoinRequestRespond, error) {
	if _, err := g.requireRole(groupId, reviewerId, group_member_role_enum.MODERATOR); err != nil {
		return nil, err
	}
	opts := querycache.Options{StaleTime: constants.STALE_PENDING_REQUESTS, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyPendingRequests(groupId), opts,
		func(ctx context.Context) ([]respond.JoinRequestRespond, error) {
			rows, err := g.repos.JoinRequest.FindPendingWithProfile(groupId)
			if err != nil {
				zap.L().Error("find pending requests error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			rsp := make([]respond.JoinRequestRespond, 0, len(rows))
			for _, row := range rows {
				fullName := row.FullName
				if fullName == "" {
					fullName = constants.PLACEHOLDER_UNKNOWN_USER
				}
				rsp = append(rsp, respond.JoinRequestRespond{
					GroupId:   row.GroupUuid,
					UserId:    row.UserUuid,
					FullName:  fullName,
					AvatarUrl: row.AvatarUrl,
					Message:   row.Message,
					CreatedAt: row.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			return rsp, nil
		})
}

// GetMyGroups 获取"我的群组"，自建和加入分开，各取前若干个
func (g *groupService) GetMyGroups(userId string) (*respond.MyGroupsRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_MY_GROUPS, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyMyGroups(userId), opts,
		func(ctx context.Context) (*respond.MyGroupsRespond, error) {
			created, err := g.repos.Group.FindByCreatedBy(userId, constants.MY_GROUPS_CREATED_LIMIT)
			if err != nil {
				zap.L().Error("find created groups error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			createdSet := make(map[string]struct{}, len(created))
			for _, grp := range created {
				createdSet[grp.Uuid] = struct{}{}
			}

			memberUuids, err := g.repos.GroupMember.FindGroupUuidsByUser(userId)
			if err != nil {
				zap.L().Error("find joined group uuids error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			joinedUuids := make([]string, 0, len(memberUuids))
			for _, uuid := range memberUuids {
				if _, ok := createdSet[uuid]; !ok {
					joinedUuids = append(joinedUuids, uuid)
				}
			}
			joined, err := g.repos.Group.FindByUuids(joinedUuids)
			if err != nil {
				zap.L().Error("find joined groups error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			if len(joined) > constants.MY_GROUPS_JOINED_LIMIT {
				joined = joined[:constants.MY_GROUPS_JOINED_LIMIT]
			}

			createdSummaries, err := g.buildSummaries(created)
			if err != nil {
				return nil, err
			}
			joinedSummaries, err := g.buildSummaries(joined)
			if err != nil {
				return nil, err
			}
			return &respond.MyGroupsRespond{
				Created: createdSummaries,
				Joined:  joinedSummaries,
			}, nil
		})
}

// DiscoverGroups 发现页，推荐用户尚未加入的公开群组，优先同城
func (g *groupService) DiscoverGroups(userId string, cityId uint) ([]respond.GroupSummaryRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_DISCOVER, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyDiscover(userId, cityId), opts,
		func(ctx context.Context) ([]respond.GroupSummaryRespond, error) {
			joinedUuids, err := g.repos.GroupMember.FindGroupUuidsByUser(userId)
			if err != nil {
				zap.L().Error("find joined group uuids error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			groups, err := g.repos.Group.FindPublicExcluding(joinedUuids, cityId, constants.DISCOVER_GROUPS_LIMIT)
			if err != nil {
				zap.L().Error("find public groups error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			return g.buildSummaries(groups)
		})
}

// SearchGroups 按名称搜索公开群组
func (g *groupService) SearchGroups(keyword string) ([]respond.GroupSummaryRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_GROUP_SEARCH, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyGroupSearch(keyword), opts,
		func(ctx context.Context) ([]respond.GroupSummaryRespond, error) {
			groups, err := g.repos.Group.SearchByName(keyword, constants.SEARCH_GROUPS_LIMIT)
			if err != nil {
				zap.L().Error("search groups error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			return g.buildSummaries(groups)
		})
}

// ListCities 城市选项列表，创建群组和筛选时使用
func (g *groupService) ListCities() ([]respond.CityRespond, error) {
	cities, err := g.repos.Taxonomy.FindAllCities()
	if err != nil {
		zap.L().Error("find all cities error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.CityRespond, 0, len(cities))
	for _, city := range cities {
		rsp = append(rsp, respond.CityRespond{
			CityId: city.ID,
			Name:   city.Name,
			NameAr: city.NameAr,
		})
	}
	return rsp, nil
}

// ListCategories 分类选项列表
func (g *groupService) ListCategories() ([]respond.CategoryOptionRespond, error) {
	categories, err := g.repos.Taxonomy.FindAllCategories()
	if err != nil {
		zap.L().Error("find all categories error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := make([]respond.CategoryOptionRespond, 0, len(categories))
	for _, category := range categories {
		rsp = append(rsp, respond.CategoryOptionRespond{
			CategoryId: category.ID,
			Name:       category.Name,
			NameAr:     category.NameAr,
			Icon:       category.Icon,
		})
	}
	return rsp, nil
}

// GetAvatarsMap 群组头像预览采样
// 为发现页的每个公开群组采样少量成员头像，一次性返回映射
func (g *groupService) GetAvatarsMap() ([]respond.GroupAvatarsRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_AVATARS_MAP, Enabled: true}
	return querycache.GetJSON(g.qc, context.Background(), querycache.KeyAvatarsMap(), opts,
		func(ctx context.Context) ([]respond.GroupAvatarsRespond, error) {
			groups, err := g.repos.Group.FindPublicExcluding(nil, 0, constants.DISCOVER_GROUPS_LIMIT)
			if err != nil {
				zap.L().Error("find public groups error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			groupUuids := make([]string, 0, len(groups))
			for _, grp := range groups {
				if grp.Visibility == group_visibility_enum.PUBLIC {
					groupUuids = append(groupUuids, grp.Uuid)
				}
			}
			members, err := g.repos.GroupMember.FindByGroupUuids(groupUuids, constants.AVATARS_SAMPLE_PER_GROUP)
			if err != nil {
				zap.L().Error("find sampled members error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			userUuids := make([]string, 0, len(members))
			for _, member := range members {
				userUuids = append(userUuids, member.UserUuid)
			}
			users, err := g.repos.User.FindByUuids(userUuids)
			if err != nil {
				zap.L().Error("find member profiles error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			avatarOf := make(map[string]string, len(users))
			for _, user := range users {
				avatarOf[user.Uuid] = user.AvatarUrl
			}

			avatarsByGroup := make(map[string][]string, len(groupUuids))
			for _, member := range members {
				if len(avatarsByGroup[member.GroupUuid]) >= constants.AVATARS_SAMPLE_PER_GROUP {
					continue
				}
				if avatar, ok := avatarOf[member.UserUuid]; ok && avatar != "" {
					avatarsByGroup[member.GroupUuid] = append(avatarsByGroup[member.GroupUuid], avatar)
				}
			}

			rsp := make([]respond.GroupAvatarsRespond, 0, len(groupUuids))
			for _, uuid := range groupUuids {
				avatars := avatarsByGroup[uuid]
				if avatars == nil {
					avatars = make([]string, 0)
				}
				rsp = append(rsp, respond.GroupAvatarsRespond{
					GroupId: uuid,
					Avatars: avatars,
				})
			}
			return rsp, nil
		})
}
