// Package post 实现帖子与投票业务逻辑
package post

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/request"
	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/infrastructure/querycache"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/constants"
	"tajamu_group_server/pkg/enum/group_member/group_member_role_enum"
	"tajamu_group_server/pkg/enum/post/post_type_enum"
	"tajamu_group_server/pkg/errorx"
	"tajamu_group_server/pkg/util/random"
)

// pollContent 投票帖 Content 字段的 JSON 结构
type pollContent struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Type     string   `json:"type"`
}

type postService struct {
	repos *repository.Repositories
	qc    *querycache.Cache
}

func NewPostService(repos *repository.Repositories, qc *querycache.Cache) *postService {
	return &postService{
		repos: repos,
		qc:    qc,
	}
}

func (p *postService) memberOf(groupId, userId string) (*model.GroupMember, error) {
	member, err := p.repos.GroupMember.FindByGroupAndUser(groupId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, nil
		}
		zap.L().Error("find group member error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return member, nil
}

// requirePoster 校验发帖权限：必须是管理员或群主，且未被禁言
func (p *postService) requirePoster(groupId, userId string) error {
	member, err := p.memberOf(groupId, userId)
	if err != nil {
		return err
	}
	if member == nil || member.Role < group_member_role_enum.MODERATOR {
		return errorx.New(errorx.CodeForbidden, "只有管理员可以发帖")
	}
	if member.IsMuted == 1 {
		return errorx.New(errorx.CodeMuted, "已被禁言")
	}
	return nil
}

// GetGroupPosts 获取群组帖子流，带当前用户的点赞与投票状态
// 所有关联数据（点赞、选项、投票、作者资料）各一次批量查询
func (p *postService) GetGroupPosts(groupId, userId string) ([]respond.PostRespond, error) {
	opts := querycache.Options{StaleTime: constants.STALE_GROUP_POSTS, Enabled: true}
	return querycache.GetJSON(p.qc, context.Background(), querycache.KeyGroupPosts(groupId, userId), opts,
		func(ctx context.Context) ([]respond.PostRespond, error) {
			posts, err := p.repos.Post.FindByGroupUuid(groupId, constants.GROUP_POSTS_LIMIT)
			if err != nil {
				zap.L().Error("find group posts error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			if len(posts) == 0 {
				return make([]respond.PostRespond, 0), nil
			}

			postUuids := make([]string, 0, len(posts))
			authorUuids := make([]string, 0, len(posts))
			for _, post := range posts {
				postUuids = append(postUuids, post.Uuid)
				authorUuids = append(authorUuids, post.UserUuid)
			}

			likedUuids, err := p.repos.Post.FindLikedPostUuids(postUuids, userId)
			if err != nil {
				zap.L().Error("find liked posts error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			likedSet := make(map[string]struct{}, len(likedUuids))
			for _, uuid := range likedUuids {
				likedSet[uuid] = struct{}{}
			}

			options, err := p.repos.Post.FindPollOptionsByPostUuids(postUuids)
			if err != nil {
				zap.L().Error("find poll options error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			optionsByPost := make(map[string][]model.PollOption)
			for _, option := range options {
				optionsByPost[option.PostUuid] = append(optionsByPost[option.PostUuid], option)
			}

			votes, err := p.repos.Post.FindVotesByPostUuidsAndUser(postUuids, userId)
			if err != nil {
				zap.L().Error("find poll votes error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			votedOption := make(map[string]uint, len(votes))
			for _, vote := range votes {
				votedOption[vote.PostUuid] = vote.OptionId
			}

			authors, err := p.repos.User.FindByUuids(authorUuids)
			if err != nil {
				zap.L().Error("find post authors error", zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			profiles := make(map[string]model.UserProfile, len(authors))
			for _, author := range authors {
				profiles[author.Uuid] = author
			}

			rsp := make([]respond.PostRespond, 0, len(posts))
			for _, post := range posts {
				authorName := constants.PLACEHOLDER_UNKNOWN_USER
				authorAvatar := ""
				if profile, ok := profiles[post.UserUuid]; ok {
					if profile.FullName != "" {
						authorName = profile.FullName
					}
					authorAvatar = profile.AvatarUrl
				}
				_, userLiked := likedSet[post.Uuid]

				item := respond.PostRespond{
					PostId:       post.Uuid,
					GroupId:      post.GroupUuid,
					UserId:       post.UserUuid,
					AuthorName:   authorName,
					AuthorAvatar: authorAvatar,
					Type:         post.Type,
					Content:      post.Content,
					MediaUrl:     post.MediaUrl,
					LikesCount:   post.LikesCount,
					UserLiked:    userLiked,
					CreatedAt:    post.CreatedAt.Format("2006-01-02 15:04:05"),
				}
				if post.Type == post_type_enum.POLL {
					item.Poll = buildPollRespond(post, optionsByPost[post.Uuid], votedOption[post.Uuid])
					item.Content = ""
				}
				rsp = append(rsp, item)
			}
			return rsp, nil
		})
}

// buildPollRespond 从帖子内容和选项表组装投票数据
// Content 解析失败时仍返回选项，问题留空
func buildPollRespond(post model.Post, options []model.PollOption, votedOptionId uint) *respond.PollRespond {
	var content pollContent
	if err := json.Unmarshal([]byte(post.Content), &content); err != nil {
		zap.L().Warn("unmarshal poll content error",
			zap.String("post_uuid", post.Uuid), zap.Error(err))
	}

	optionRsp := make([]respond.PollOptionRespond, 0, len(options))
	for _, option := range options {
		optionRsp = append(optionRsp, respond.PollOptionRespond{
			OptionId:   option.ID,
			Text:       option.Text,
			VotesCount: option.VotesCount,
		})
	}
	return &respond.PollRespond{
		Question:          content.Question,
		Options:           optionRsp,
		UserVotedOptionId: votedOptionId,
	}
}

// CreatePost 发布帖子，仅管理员和群主可发
func (p *postService) CreatePost(userId string, req request.CreatePostRequest) (string, error) {
	if err := p.requirePoster(req.GroupId, userId); err != nil {
		return "", err
	}

	postType := post_type_enum.TEXT
	if req.MediaUrl != "" {
		postType = post_type_enum.MEDIA
	}
	postUuid := "P" + random.GetNowAndLenRandomString(11)
	post := &model.Post{
		Uuid:      postUuid,
		GroupUuid: req.GroupId,
		UserUuid:  userId,
		Type:      postType,
		Content:   req.Content,
		MediaUrl:  req.MediaUrl,
	}
	if err := p.repos.Post.Create(post); err != nil {
		zap.L().Error("create post error", zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	ctx := context.Background()
	p.qc.InvalidatePrefix(ctx, querycache.PrefixGroupPosts(req.GroupId))
	p.qc.Invalidate(ctx, querycache.KeyLeaderboard(req.GroupId))
	return postUuid, nil
}

// CreatePoll 发布投票帖
// 问题和选项同时序列化进 Content，选项另拆到选项表便于计票
func (p *postService) CreatePoll(userId string, req request.CreatePollRequest) (string, error) {
	if err := p.requirePoster(req.GroupId, userId); err != nil {
		return "", err
	}

	content, err := json.Marshal(pollContent{
		Question: req.Question,
		Options:  req.Options,
		Type:     post_type_enum.POLL,
	})
	if err != nil {
		zap.L().Error("marshal poll content error", zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	postUuid := "P" + random.GetNowAndLenRandomString(11)
	post := &model.Post{
		Uuid:      postUuid,
		GroupUuid: req.GroupId,
		UserUuid:  userId,
		Type:      post_type_enum.POLL,
		Content:   string(content),
	}
	options := make([]model.PollOption, 0, len(req.Options))
	for i, text := range req.Options {
		options = append(options, model.PollOption{
			PostUuid: postUuid,
			Text:     text,
			Position: i,
		})
	}

	err = p.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Post.Create(post); err != nil {
			zap.L().Error("create poll post error", zap.Error(err))
			return err
		}
		if err := tx.Post.CreatePollOptions(options); err != nil {
			zap.L().Error("create poll options error", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return "", errorx.ErrServerBusy
	}

	ctx := context.Background()
	p.qc.InvalidatePrefix(ctx, querycache.PrefixGroupPosts(req.GroupId))
	p.qc.Invalidate(ctx, querycache.KeyLeaderboard(req.GroupId))
	return postUuid, nil
}

// ToggleLike 点赞/取消点赞，返回操作后的点赞状态
func (p *postService) ToggleLike(userId string, req request.LikePostRequest) (bool, error) {
	post, err := p.repos.Post.FindByUuid(req.PostId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return false, errorx.New(errorx.CodeNotFound, "帖子不存在")
		}
		zap.L().Error("find post error", zap.Error(err))
		return false, errorx.ErrServerBusy
	}
	member, err := p.memberOf(post.GroupUuid, userId)
	if err != nil {
		return false, err
	}
	if member == nil {
		return false, errorx.ErrForbidden
	}

	like, err := p.repos.Post.FindLike(req.PostId, userId)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find post like error", zap.Error(err))
		return false, errorx.ErrServerBusy
	}

	liked := false
	if like != nil {
		err = p.repos.Transaction(func(tx *repository.Repositories) error {
			if err := tx.Post.DeleteLike(req.PostId, userId); err != nil {
				zap.L().Error("delete post like error", zap.Error(err))
				return err
			}
			if err := tx.Post.DecrementLikes(req.PostId); err != nil {
				zap.L().Error("decrement likes error", zap.Error(err))
				return err
			}
			return nil
		})
	} else {
		liked = true
		err = p.repos.Transaction(func(tx *repository.Repositories) error {
			newLike := &model.PostLike{
				PostUuid: req.PostId,
				UserUuid: userId,
			}
			if err := tx.Post.CreateLike(newLike); err != nil {
				zap.L().Error("create post like error", zap.Error(err))
				return err
			}
			if err := tx.Post.IncrementLikes(req.PostId); err != nil {
				zap.L().Error("increment likes error", zap.Error(err))
				return err
			}
			return nil
		})
	}
	if err != nil {
		return false, errorx.ErrServerBusy
	}

	p.qc.InvalidatePrefix(context.Background(), querycache.PrefixGroupPosts(post.GroupUuid))
	return liked, nil
}

// VoteInPoll 投票或改票
// 一人一票：已投同一选项幂等返回，改票时先删旧票再插新票，计数同步增减
func (p *postService) VoteInPoll(userId string, req request.VotePollRequest) error {
	post, err := p.repos.Post.FindByUuid(req.PostId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "帖子不存在")
		}
		zap.L().Error("find post error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if post.Type != post_type_enum.POLL {
		return errorx.New(errorx.CodeInvalidParam, "不是投票帖")
	}

	member, err := p.memberOf(post.GroupUuid, userId)
	if err != nil {
		return err
	}
	if member == nil {
		return errorx.ErrForbidden
	}

	// 选项必须属于该帖子
	options, err := p.repos.Post.FindPollOptionsByPostUuids([]string{req.PostId})
	if err != nil {
		zap.L().Error("find poll options error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	validOption := false
	for _, option := range options {
		if option.ID == req.OptionId {
			validOption = true
			break
		}
	}
	if !validOption {
		return errorx.New(errorx.CodeInvalidParam, "选项不存在")
	}

	existing, err := p.repos.Post.FindVote(req.PostId, userId)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("find poll vote error", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if existing != nil && existing.OptionId == req.OptionId {
		return nil
	}

	err = p.repos.Transaction(func(tx *repository.Repositories) error {
		if existing != nil {
			if err := tx.Post.DeleteVote(req.PostId, userId); err != nil {
				zap.L().Error("delete poll vote error", zap.Error(err))
				return err
			}
			if err := tx.Post.DecrementOptionVotes(existing.OptionId); err != nil {
				zap.L().Error("decrement option votes error", zap.Error(err))
				return err
			}
		}
		newVote := &model.PollVote{
			PostUuid: req.PostId,
			UserUuid: userId,
			OptionId: req.OptionId,
		}
		if err := tx.Post.CreateVote(newVote); err != nil {
			zap.L().Error("create poll vote error", zap.Error(err))
			return err
		}
		if err := tx.Post.IncrementOptionVotes(req.OptionId); err != nil {
			zap.L().Error("increment option votes error", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return errorx.ErrServerBusy
	}

	p.qc.InvalidatePrefix(context.Background(), querycache.PrefixGroupPosts(post.GroupUuid))
	return nil
}
