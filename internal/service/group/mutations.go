package group

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/enum/event/event_status_enum"
	"tajamu_group_server/pkg/enum/group/group_visibility_enum"
	"tajamu_group_server/pkg/enum/group_member/group_member_role_enum"
	"tajamu_group_server/pkg/enum/join_request/join_request_status_enum"
	"tajamu_group_server/pkg/enum/notification/notification_type_enum"
	"tajamu_group_server/pkg/errorx"
	"tajamu_group_server/pkg/util/random"
)

// CreateGroup 创建群组，创建者自动成为群主
func (g *groupService) CreateGroup(userId string, req request.CreateGroupRequest) (string, error) {
	visibility := req.Visibility
	if visibility == "" {
		visibility = group_visibility_enum.PUBLIC
	}
	groupUuid := "G" + random.GetNowAndLenRandomString(11)
	newGroup := &model.Group{
		Uuid:             groupUuid,
		Name:             req.Name,
		Description:      req.Description,
		DescriptionAr:    req.DescriptionAr,
		CoverUrl:         req.CoverUrl,
		CityId:           req.CityId,
		CreatedBy:        userId,
		Visibility:       visibility,
		RequiresApproval: req.RequiresApproval,
		CurrentMembers:   1,
		MaxMembers:       req.MaxMembers,
	}

	err := g.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Group.Create(newGroup); err != nil {
			zap.L().Error("create group error", zap.Error(err))
			return err
		}
		owner := &model.GroupMember{
			GroupUuid: groupUuid,
			UserUuid:  userId,
			Role:      group_member_role_enum.OWNER,
			JoinedAt:  time.Now(),
		}
		if err := tx.GroupMember.Create(owner); err != nil {
			zap.L().Error("create group owner error", zap.Error(err))
			return err
		}
		if len(req.CategoryIds) > 0 {
			interests := make([]model.GroupInterest, 0, len(req.CategoryIds))
			for _, categoryId := range req.CategoryIds {
				interests = append(interests, model.GroupInterest{
					GroupUuid:  groupUuid,
					CategoryId: categoryId,
				})
			}
			if err := tx.Taxonomy.CreateGroupInterests(interests); err != nil {
				zap.L().Error("create group interests error", zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", errorx.ErrServerBusy
	}

	g.qc.Invalidate(context.Background(), querycache.KeyMyGroups(userId))
	return groupUuid, nil
}

// UpdateGroup 更新群组信息，仅群主可操作
func (g *groupService) UpdateGroup(userId string, req request.UpdateGroupRequest) error {
	grp, err := g.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if grp.CreatedBy != userId {
		return errorx.ErrForbidden
	}

	grp.Name = req.Name
	grp.Description = req.Description
	grp.DescriptionAr = req.DescriptionAr
	grp.CityId = req.CityId
	if req.Visibility != "" {
		grp.Visibility = req.Visibility
	}
	grp.RequiresApproval = req.RequiresApproval
	grp.MaxMembers = req.MaxMembers
	if req.CoverUrl != "" {
		grp.CoverUrl = req.CoverUrl
	}
	if err := g.repos.Group.Update(grp); err != nil {
		zap.L().Error("update group error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	ctx := context.Background()
	g.qc.InvalidatePrefix(ctx, querycache.PrefixGroupDetails(req.GroupId))
	g.qc.Invalidate(ctx, querycache.KeyMyGroups(userId))
	return nil
}

// ArchiveGroup 归档群组（软解散），仅群主可操作
// 归档后群组从发现、搜索和我的群组中消失，成员仍可按 id 直接查看
func (g *groupService) ArchiveGroup(userId, groupId string) error {
	grp, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if grp.CreatedBy != userId {
		return errorx.ErrForbidden
	}
	if grp.ArchivedAt.Valid {
		return nil
	}

	if err := g.repos.Group.Archive(groupId); err != nil {
		zap.L().Error("archive group error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateMembership(groupId, userId)
	return nil
}

// JoinGroup 加入群组
// 免审批群组直接入群，审批群组创建待处理申请
// 返回值表示是否已直接入群（false 表示进入待审批）
func (g *groupService) JoinGroup(userId string, req request.JoinGroupRequest) (bool, error) {
	grp, err := g.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("find group error", zap.Error(err))
		return false, errorx.ErrServerBusy
	}

	if grp.ArchivedAt.Valid {
		return false, errorx.New(errorx.CodeNotFound, "群组已归档")
	}

	member, err := g.memberOf(req.GroupId, userId)
	if err != nil {
		return false, err
	}
	if member != nil {
		return false, errorx.New(errorx.CodeAlreadyExist, "已经是群成员")
	}
	if grp.MaxMembers > 0 && grp.CurrentMembers >= grp.MaxMembers {
		return false, errorx.New(errorx.CodeGroupFull, "群组人数已满")
	}

	if grp.RequiresApproval == 0 {
		err = g.repos.Transaction(func(tx *repository.Repositories) error {
			newMember := &model.GroupMember{
				GroupUuid: req.GroupId,
				UserUuid:  userId,
				Role:      group_member_role_enum.MEMBER,
				JoinedAt:  time.Now(),
			}
			if err := tx.GroupMember.Create(newMember); err != nil {
				zap.L().Error("create group member error", zap.Error(err))
				return err
			}
			if err := tx.Group.IncrementMemberCount(req.GroupId); err != nil {
				zap.L().Error("increment member count error", zap.Error(err))
				return err
			}
			return nil
		})
		if err != nil {
			return false, errorx.ErrServerBusy
		}
		g.invalidateMembership(req.GroupId, userId)
		return true, nil
	}

	// 需要审批，同一用户对同一群组只保留一条申请记录
	existing, err := g.repos.JoinRequest.FindByGroupAndUser(req.GroupId, userId)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find join request error", zap.Error(err))
		return false, errorx.ErrServerBusy
	}
	if existing != nil {
		switch existing.Status {
		case join_request_status_enum.PENDING:
			return false, errorx.New(errorx.CodeAlreadyPending, "已有待处理申请")
		case join_request_status_enum.REJECTED:
			// 被拒后重新申请，重置为待处理
			existing.Status = join_request_status_enum.PENDING
			existing.Message = req.Message
			existing.ReviewedBy = ""
			existing.ReviewedAt = sql.NullTime{}
			if err := g.repos.JoinRequest.Update(existing); err != nil {
				zap.L().Error("reset join request error", zap.Error(err))
				return false, errorx.ErrServerBusy
			}
		default:
			// 已通过但不在成员表中（被移出后），重新走申请流程
			existing.Status = join_request_status_enum.PENDING
			existing.Message = req.Message
			existing.ReviewedBy = ""
			existing.ReviewedAt = sql.NullTime{}
			if err := g.repos.JoinRequest.Update(existing); err != nil {
				zap.L().Error("reset join request error", zap.Error(err))
				return false, errorx.ErrServerBusy
			}
		}
	} else {
		newRequest := &model.JoinRequest{
			GroupUuid: req.GroupId,
			UserUuid:  userId,
			Message:   req.Message,
			Status:    join_request_status_enum.PENDING,
		}
		if err := g.repos.JoinRequest.Create(newRequest); err != nil {
			zap.L().Error("create join request error", zap.Error(err))
			return false, errorx.ErrServerBusy
		}
	}

	ctx := context.Background()
	g.qc.Invalidate(ctx, querycache.KeyPendingRequests(req.GroupId))
	g.qc.InvalidatePrefix(ctx, querycache.PrefixGroupDetails(req.GroupId))
	return false, nil
}

// LeaveGroup 退出群组，群主不能退出
func (g *groupService) LeaveGroup(userId, groupId string) error {
	member, err := g.memberOf(groupId, userId)
	if err != nil {
		return err
	}
	if member == nil {
		return errorx.New(errorx.CodeNotFound, "不是群成员")
	}
	if member.Role == group_member_role_enum.OWNER {
		return errorx.New(errorx.CodeForbidden, "群主不能退出群组")
	}

	err = g.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.GroupMember.Delete(groupId, userId); err != nil {
			zap.L().Error("delete group member error", zap.Error(err))
			return err
		}
		if err := tx.Group.DecrementMemberCount(groupId); err != nil {
			zap.L().Error("decrement member count error", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return errorx.ErrServerBusy
	}
	g.invalidateMembership(groupId, userId)
	return nil
}

// ApproveJoinRequest 通过入群申请
// 幂等：申请已通过或用户已入群时直接返回成功，不重复计数
func (g *groupService) ApproveJoinRequest(reviewerId string, req request.ReviewJoinRequestRequest) error {
	if _, err := g.requireRole(req.GroupId, reviewerId, group_member_role_enum.MODERATOR); err != nil {
		return err
	}

	joinRequest, err := g.repos.JoinRequest.FindByGroupAndUser(req.GroupId, req.UserId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "申请不存在")
		}
		zap.L().Error("find join request error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if joinRequest.Status == join_request_status_enum.APPROVED {
		return nil
	}
	if joinRequest.Status == join_request_status_enum.REJECTED {
		return errorx.New(errorx.CodeInvalidParam, "申请已被拒绝")
	}

	member, err := g.memberOf(req.GroupId, req.UserId)
	if err != nil {
		return err
	}
	if member != nil {
		// 已经入群，仅同步申请状态
		joinRequest.Status = join_request_status_enum.APPROVED
		joinRequest.ReviewedBy = reviewerId
		joinRequest.ReviewedAt = sql.NullTime{Time: time.Now(), Valid: true}
		if err := g.repos.JoinRequest.Update(joinRequest); err != nil {
			zap.L().Error("update join request error", zap.Error(err))
			return errorx.ErrServerBusy
		}
		g.qc.Invalidate(context.Background(), querycache.KeyPendingRequests(req.GroupId))
		return nil
	}

	grp, err := g.repos.Group.FindByUuid(req.GroupId)
	if err != nil {
		zap.L().Error("find group error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if grp.MaxMembers > 0 && grp.CurrentMembers >= grp.MaxMembers {
		return errorx.New(errorx.CodeGroupFull, "群组人数已满")
	}

	err = g.repos.Transaction(func(tx *repository.Repositories) error {
		joinRequest.Status = join_request_status_enum.APPROVED
		joinRequest.ReviewedBy = reviewerId
		joinRequest.ReviewedAt = sql.NullTime{Time: time.Now(), Valid: true}
		if err := tx.JoinRequest.Update(joinRequest); err != nil {
			zap.L().Error("update join request error", zap.Error(err))
			return err
		}
		newMember := &model.GroupMember{
			GroupUuid: req.GroupId,
			UserUuid:  req.UserId,
			Role:      group_member_role_enum.MEMBER,
			JoinedAt:  time.Now(),
		}
		if err := tx.GroupMember.Create(newMember); err != nil {
			zap.L().Error("create group member error", zap.Error(err))
			return err
		}
		if err := tx.Group.IncrementMemberCount(req.GroupId); err != nil {
			zap.L().Error("increment member count error", zap.Error(err))
			return err
		}
		notice := &model.Notification{
			Uuid:      "N" + random.GetNowAndLenRandomString(11),
			UserUuid:  req.UserId,
			Type:      notification_type_enum.JOIN_APPROVED,
			Title:     grp.Name,
			Body:      "تم قبول طلب انضمامك",
			GroupUuid: req.GroupId,
		}
		if err := tx.Notification.Create(notice); err != nil {
			zap.L().Error("create notification error", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return errorx.ErrServerBusy
	}

	g.invalidateMembership(req.GroupId, req.UserId)
	g.qc.Invalidate(context.Background(), querycache.KeyNotifications(req.UserId))
	return nil
}

// RejectJoinRequest 拒绝入群申请，重复拒绝幂等
func (g *groupService) RejectJoinRequest(reviewerId string, req request.ReviewJoinRequestRequest) error {
	if _, err := g.requireRole(req.GroupId, reviewerId, group_member_role_enum.MODERATOR); err != nil {
		return err
	}

	joinRequest, err := g.repos.JoinRequest.FindByGroupAndUser(req.GroupId, req.UserId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "申请不存在")
		}
		zap.L().Error("find join request error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if joinRequest.Status == join_request_status_enum.REJECTED {
		return nil
	}
	if joinRequest.Status == join_request_status_enum.APPROVED {
		return errorx.New(errorx.CodeInvalidParam, "申请已通过，不能拒绝")
	}

	joinRequest.Status = join_request_status_enum.REJECTED
	joinRequest.ReviewedBy = reviewerId
	joinRequest.ReviewedAt = sql.NullTime{Time: time.Now(), Valid: true}
	if err := g.repos.JoinRequest.Update(joinRequest); err != nil {
		zap.L().Error("update join request error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	// 通知落库失败只记日志，不影响拒绝结果
	grp, err := g.repos.Group.FindByUuid(req.GroupId)
	if err == nil {
		notice := &model.Notification{
			Uuid:      "N" + random.GetNowAndLenRandomString(11),
			UserUuid:  req.UserId,
			Type:      notification_type_enum.JOIN_REJECTED,
			Title:     grp.Name,
			Body:      "تم رفض طلب انضمامك",
			GroupUuid: req.GroupId,
		}
		if err := g.repos.Notification.Create(notice); err != nil {
			zap.L().Error("create notification error", zap.Error(err))
		}
	}

	ctx := context.Background()
	g.qc.Invalidate(ctx, querycache.KeyPendingRequests(req.GroupId))
	g.qc.InvalidatePrefix(ctx, querycache.PrefixGroupDetails(req.GroupId))
	g.qc.Invalidate(ctx, querycache.KeyNotifications(req.UserId))
	return nil
}

// PromoteMember 设置管理员，仅群主可操作
func (g *groupService) PromoteMember(actorId string, req request.MemberActionRequest) error {
	return g.changeRole(actorId, req, group_member_role_enum.MODERATOR)
}

// DemoteMember 取消管理员，仅群主可操作
func (g *groupService) DemoteMember(actorId string, req request.MemberActionRequest) error {
	return g.changeRole(actorId, req, group_member_role_enum.MEMBER)
}

func (g *groupService) changeRole(actorId string, req request.MemberActionRequest, newRole int8) error {
	if _, err := g.requireRole(req.GroupId, actorId, group_member_role_enum.OWNER); err != nil {
		return err
	}
	target, err := g.memberOf(req.GroupId, req.UserId)
	if err != nil {
		return err
	}
	if target == nil {
		return errorx.New(errorx.CodeNotFound, "对方不是群成员")
	}
	if target.Role == group_member_role_enum.OWNER {
		return errorx.New(errorx.CodeForbidden, "不能变更群主角色")
	}
	if target.Role == newRole {
		return nil
	}
	if err := g.repos.GroupMember.UpdateRole(req.GroupId, req.UserId, newRole); err != nil {
		zap.L().Error("update member role error", zap.Error(err))
		return errorx.ErrServerBusy
	}

	// 通知落库失败只记日志，不影响角色变更结果
	if grp, err := g.repos.Group.FindByUuid(req.GroupId); err == nil {
		body := "تمت ترقيتك إلى مشرف"
		if newRole == group_member_role_enum.MEMBER {
			body = "تم تغيير دورك إلى عضو"
		}
		notice := &model.Notification{
			Uuid:      "N" + random.GetNowAndLenRandomString(11),
			UserUuid:  req.UserId,
			Type:      notification_type_enum.ROLE_CHANGED,
			Title:     grp.Name,
			Body:      body,
			GroupUuid: req.GroupId,
		}
		if err := g.repos.Notification.Create(notice); err != nil {
			zap.L().Error("create notification error", zap.Error(err))
		}
	}

	g.invalidateMembership(req.GroupId, req.UserId)
	g.qc.Invalidate(context.Background(), querycache.KeyNotifications(req.UserId))
	return nil
}

// MuteMember 禁言成员
func (g *groupService) MuteMember(actorId string, req request.MemberActionRequest) error {
	return g.changeMuted(actorId, req, 1)
}

// UnmuteMember 解除禁言
func (g *groupService) UnmuteMember(actorId string, req request.MemberActionRequest) error {
	return g.changeMuted(actorId, req, 0)
}

func (g *groupService) changeMuted(actorId string, req request.MemberActionRequest, muted int8) error {
	actor, err := g.requireRole(req.GroupId, actorId, group_member_role_enum.MODERATOR)
	if err != nil {
		return err
	}
	target, err := g.memberOf(req.GroupId, req.UserId)
	if err != nil {
		return err
	}
	if target == nil {
		return errorx.New(errorx.CodeNotFound, "对方不是群成员")
	}
	// 只能管理比自己角色低的成员
	if target.Role >= actor.Role {
		return errorx.ErrForbidden
	}
	if target.IsMuted == muted {
		return nil
	}
	if err := g.repos.GroupMember.UpdateMuted(req.GroupId, req.UserId, muted); err != nil {
		zap.L().Error("update member muted error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	g.invalidateMembership(req.GroupId, req.UserId)
	return nil
}

// RemoveMember 移出群组
func (g *groupService) RemoveMember(actorId string, req request.MemberActionRequest) error {
	actor, err := g.requireRole(req.GroupId, actorId, group_member_role_enum.MODERATOR)
	if err != nil {
		return err
	}
	target, err := g.memberOf(req.GroupId, req.UserId)
	if err != nil {
		return err
	}
	if target == nil {
		return errorx.New(errorx.CodeNotFound, "对方不是群成员")
	}
	if target.Role >= actor.Role {
		return errorx.ErrForbidden
	}

	err = g.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.GroupMember.Delete(req.GroupId, req.UserId); err != nil {
			zap.L().Error("delete group member error", zap.Error(err))
			return err
		}
		if err := tx.Group.DecrementMemberCount(req.GroupId); err != nil {
			zap.L().Error("decrement member count error", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return errorx.ErrServerBusy
	}
	g.invalidateMembership(req.GroupId, req.UserId)
	return nil
}

// CreateEvent 创建群组活动，群主和管理员可操作
func (g *groupService) CreateEvent(userId string, req request.CreateEventRequest) (string, error) {
	if _, err := g.requireRole(req.GroupId, userId, group_member_role_enum.MODERATOR); err != nil {
		return "", err
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return "", errorx.New(errorx.CodeInvalidParam, "开始时间格式错误")
	}
	var endAt time.Time
	if req.EndAt != "" {
		endAt, err = time.Parse(time.RFC3339, req.EndAt)
		if err != nil {
			return "", errorx.New(errorx.CodeInvalidParam, "结束时间格式错误")
		}
		if endAt.Before(startAt) {
			return "", errorx.New(errorx.CodeInvalidParam, "结束时间不能早于开始时间")
		}
	}

	eventUuid := "E" + random.GetNowAndLenRandomString(11)
	event := &model.Event{
		Uuid:        eventUuid,
		GroupUuid:   req.GroupId,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		CoverUrl:    req.CoverUrl,
		StartAt:     startAt,
		EndAt:       endAt,
		Status:      event_status_enum.APPROVED,
		CreatedBy:   userId,
	}
	if err := g.repos.Event.Create(event); err != nil {
		zap.L().Error("create event error", zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	g.notifyNewEvent(req.GroupId, userId, req.Title)

	g.qc.InvalidatePrefix(context.Background(), querycache.PrefixGroupEvents(req.GroupId))
	return eventUuid, nil
}

// notifyNewEvent 给群成员群发新活动通知，创建者本人除外
// 通知落库失败只记日志，不影响活动创建结果
func (g *groupService) notifyNewEvent(groupId, creatorId, title string) {
	members, err := g.repos.GroupMember.FindByGroupUuid(groupId)
	if err != nil {
		zap.L().Error("find group members error", zap.Error(err))
		return
	}
	grp, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		zap.L().Error("find group error", zap.Error(err))
		return
	}

	notices := make([]model.Notification, 0, len(members))
	ctx := context.Background()
	for _, member := range members {
		if member.UserUuid == creatorId {
			continue
		}
		notices = append(notices, model.Notification{
			Uuid:      "N" + random.GetNowAndLenRandomString(11),
			UserUuid:  member.UserUuid,
			Type:      notification_type_enum.NEW_EVENT,
			Title:     grp.Name,
			Body:      "فعالية جديدة: " + title,
			GroupUuid: groupId,
		})
		g.qc.Invalidate(ctx, querycache.KeyNotifications(member.UserUuid))
	}
	if err := g.repos.Notification.CreateBatch(notices); err != nil {
		zap.L().Error("create notifications error", zap.Error(err))
	}
}

// ToggleBookmark 收藏/取消收藏活动，返回操作后的收藏状态
func (g *groupService) ToggleBookmark(userId string, req request.BookmarkEventRequest) (bool, error) {
	event, err := g.repos.Event.FindByUuid(req.EventId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, errorx.New(errorx.CodeNotFound, "活动不存在")
		}
		zap.L().Error("find event error", zap.Error(err))
		return false, errorx.ErrServerBusy
	}

	bookmark, err := g.repos.Event.FindBookmark(req.EventId, userId)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find bookmark error", zap.Error(err))
		return false, errorx.ErrServerBusy
	}

	bookmarked := false
	if bookmark != nil {
		if err := g.repos.Event.DeleteBookmark(req.EventId, userId); err != nil {
			zap.L().Error("delete bookmark error", zap.Error(err))
			return false, errorx.ErrServerBusy
		}
	} else {
		newBookmark := &model.EventBookmark{
			EventUuid: req.EventId,
			UserUuid:  userId,
		}
		if err := g.repos.Event.CreateBookmark(newBookmark); err != nil {
			zap.L().Error("create bookmark error", zap.Error(err))
			return false, errorx.ErrServerBusy
		}
		bookmarked = true
	}

	g.qc.Invalidate(context.Background(), querycache.KeyGroupEvents(event.GroupUuid, userId))
	return bookmarked, nil
}
