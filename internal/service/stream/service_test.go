package stream

import (
	"testing"

	"tajamu_group_server/internal/dto/respond"
	"tajamu_group_server/internal/model"
	"tajamu_group_server/pkg/constants"
)

func TestBuildMessageRespondAttachmentPlaceholder(t *testing.T) {
	message := model.Message{
		Uuid:      "1001",
		GroupUuid: "G1",
		SendId:    "U1",
		SendName:  "أحمد",
		Content:   "",
	}
	attachments := []respond.AttachmentRespond{{FileUrl: "/static/media/x.jpg", FileType: "image"}}

	rsp := buildMessageRespond(message, attachments, nil)
	if rsp.Content != constants.PLACEHOLDER_ATTACHMENT {
		t.Errorf("纯附件消息应使用占位文案，得到 %q", rsp.Content)
	}
	if len(rsp.Attachments) != 1 {
		t.Errorf("附件丢失: %+v", rsp.Attachments)
	}
}

func TestBuildMessageRespondProfileOverride(t *testing.T) {
	message := model.Message{
		Uuid:       "1002",
		GroupUuid:  "G1",
		SendId:     "U1",
		SendName:   "旧昵称",
		SendAvatar: "/static/media/old.jpg",
		Content:    "مرحبا",
	}
	profiles := map[string]model.UserProfile{
		"U1": {Uuid: "U1", FullName: "اسم جديد", AvatarUrl: "/static/media/new.jpg"},
	}

	rsp := buildMessageRespond(message, nil, profiles)
	if rsp.SendName != "اسم جديد" {
		t.Errorf("应使用当前资料的昵称，得到 %q", rsp.SendName)
	}
	if rsp.SendAvatar != "/static/media/new.jpg" {
		t.Errorf("应使用当前资料的头像，得到 %q", rsp.SendAvatar)
	}
	if rsp.Content != "مرحبا" {
		t.Errorf("文本内容不应被替换，得到 %q", rsp.Content)
	}
}

func TestBuildMessageRespondUnknownSender(t *testing.T) {
	message := model.Message{
		Uuid:      "1003",
		GroupUuid: "G1",
		SendId:    "U404",
		Content:   "hi",
	}

	rsp := buildMessageRespond(message, nil, map[string]model.UserProfile{})
	if rsp.SendName != constants.PLACEHOLDER_UNKNOWN_USER {
		t.Errorf("查不到资料时应使用占位名，得到 %q", rsp.SendName)
	}
}
