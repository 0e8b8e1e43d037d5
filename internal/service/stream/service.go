// service.go
// 核心职责：消息流业务逻辑
// 回填历史消息和发送新消息，推送本身由 Broker 完成
package stream

import (
	"context"
	"encoding/json"
	"mime/multipart"

	"go.uber.org/zap"

	"tajamu_group_server/internal/dao/mysql/repository"
	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/infrastructure/storage"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/constants"
	"tajamu_group_server/pkg/errorx"
	"tajamu_group_server/pkg/util/snowflake"
)

type streamService struct {
	repos  *repository.Repositories
	store  *storage.Store
	broker MessageBroker
}

func newStreamService(repos *repository.Repositories, store *storage.Store, broker MessageBroker) *streamService {
	return &streamService{
		repos:  repos,
		store:  store,
		broker: broker,
	}
}

func (s *streamService) memberOf(groupId, userId string) (*model.GroupMember, error) {
	member, err := s.repos.GroupMember.FindByGroupAndUser(groupId, userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, nil
		}
		zap.L().Error("find group member error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return member, nil
}

// Backfill 回填订阅者可见的历史消息
// 只返回入群时间之后的消息，最多 100 条，按时间升序
// 发送者资料用当前资料覆盖冗余字段，查不到时回落到冗余值或占位文案
func (s *streamService) Backfill(groupId, userId string) ([]respond.MessageRespond, error) {
	member, err := s.memberOf(groupId, userId)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errorx.ErrForbidden
	}

	messages, err := s.repos.Message.FindRecentByGroup(groupId, member.JoinedAt, constants.MESSAGE_BACKFILL_LIMIT)
	if err != nil {
		zap.L().Error("find recent messages error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(messages) == 0 {
		return make([]respond.MessageRespond, 0), nil
	}

	messageUuids := make([]string, 0, len(messages))
	senderUuids := make([]string, 0, len(messages))
	for _, message := range messages {
		messageUuids = append(messageUuids, message.Uuid)
		senderUuids = append(senderUuids, message.SendId)
	}

	attachments, err := s.repos.Message.FindAttachmentsByMessageUuids(messageUuids)
	if err != nil {
		zap.L().Error("find message attachments error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	attachmentsByMessage := make(map[string][]respond.AttachmentRespond)
	for _, attachment := range attachments {
		attachmentsByMessage[attachment.MessageUuid] = append(attachmentsByMessage[attachment.MessageUuid],
			respond.AttachmentRespond{
				FileUrl:  attachment.FileUrl,
				FileType: attachment.FileType,
				FileName: attachment.FileName,
				FileSize: attachment.FileSize,
			})
	}

	senders, err := s.repos.User.FindByUuids(senderUuids)
	if err != nil {
		zap.L().Error("find senders error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	profiles := make(map[string]model.UserProfile, len(senders))
	for _, sender := range senders {
		profiles[sender.Uuid] = sender
	}

	rsp := make([]respond.MessageRespond, 0, len(messages))
	for _, message := range messages {
		rsp = append(rsp, buildMessageRespond(message, attachmentsByMessage[message.Uuid], profiles))
	}
	return rsp, nil
}

// buildMessageRespond 组装消息响应
// 纯附件消息的内容替换为占位文案
func buildMessageRespond(message model.Message, attachments []respond.AttachmentRespond, profiles map[string]model.UserProfile) respond.MessageRespond {
	sendName := message.SendName
	sendAvatar := message.SendAvatar
	if profile, ok := profiles[message.SendId]; ok {
		if profile.FullName != "" {
			sendName = profile.FullName
		}
		sendAvatar = profile.AvatarUrl
	}
	if sendName == "" {
		sendName = constants.PLACEHOLDER_UNKNOWN_USER
	}

	content := message.Content
	if content == "" && len(attachments) > 0 {
		content = constants.PLACEHOLDER_ATTACHMENT
	}

	return respond.MessageRespond{
		MessageId:   message.Uuid,
		GroupId:     message.GroupUuid,
		SendId:      message.SendId,
		SendName:    sendName,
		SendAvatar:  sendAvatar,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   message.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// SendMessage 发送群消息
// 消息行先落库，附件逐个保存，单个附件失败只记录日志不回滚消息，
// 最后经 Broker 推送给订阅者
func (s *streamService) SendMessage(userId, groupId, content string, files []*multipart.FileHeader) (*respond.MessageRespond, error) {
	member, err := s.memberOf(groupId, userId)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errorx.ErrForbidden
	}
	if member.IsMuted == 1 {
		return nil, errorx.New(errorx.CodeMuted, "已被禁言")
	}
	if content == "" && len(files) == 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息不能为空")
	}

	sendName := ""
	sendAvatar := ""
	if sender, err := s.repos.User.FindByUuid(userId); err == nil {
		sendName = sender.FullName
		sendAvatar = sender.AvatarUrl
	}

	message := model.Message{
		Uuid:       snowflake.GenerateIDString(),
		GroupUuid:  groupId,
		SendId:     userId,
		Content:    content,
		SendName:   sendName,
		SendAvatar: sendAvatar,
	}
	if err := s.repos.Message.Create(&message); err != nil {
		zap.L().Error("create message error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 附件逐个保存，部分失败不影响已入库的消息
	attachments := make([]respond.AttachmentRespond, 0, len(files))
	for _, fileHeader := range files {
		saved, err := s.store.SaveAttachment(fileHeader)
		if err != nil {
			zap.L().Warn("save attachment error",
				zap.String("message", message.Uuid), zap.String("file", fileHeader.Filename), zap.Error(err))
			continue
		}
		attachment := &model.MessageAttachment{
			MessageUuid: message.Uuid,
			FileUrl:     saved.FileUrl,
			FileType:    saved.FileType,
			FileName:    saved.FileName,
			FileSize:    saved.FileSize,
		}
		if err := s.repos.Message.CreateAttachment(attachment); err != nil {
			zap.L().Warn("create attachment error",
				zap.String("message", message.Uuid), zap.Error(err))
			continue
		}
		attachments = append(attachments, respond.AttachmentRespond{
			FileUrl:  saved.FileUrl,
			FileType: saved.FileType,
			FileName: saved.FileName,
			FileSize: saved.FileSize,
		})
	}

	rsp := buildMessageRespond(message, attachments, nil)
	delivery := streamDelivery{
		GroupId: groupId,
		Message: rsp,
	}
	data, err := json.Marshal(delivery)
	if err != nil {
		zap.L().Error("marshal delivery error", zap.Error(err))
		return &rsp, nil
	}
	if err := s.broker.Publish(context.Background(), data); err != nil {
		zap.L().Error("publish message error", zap.Error(err))
	}
	return &rsp, nil
}
