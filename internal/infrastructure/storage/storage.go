// Package storage 提供本地文件内容存储
// 消息附件和群组封面保存到本地静态目录，通过 /static 路径对外提供
package storage

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tajamu_group_server/internal/config"
	"tajamu_group_server/pkg/constants"
	"tajamu_group_server/pkg/enum/attachment/attachment_type_enum"
	"tajamu_group_server/pkg/errorx"
	"tajamu_group_server/pkg/util/random"
)

// SavedFile 保存结果
type SavedFile struct {
	FileName string // 原始文件名
	FileUrl  string // 对外可访问的 URL
	FileType string // 附件类型，image/video/audio/file
	FileSize int64  // 文件大小（字节）
}

// Store 本地文件存储
type Store struct {
	mediaPath string
	coverPath string
	publicURL string
}

// NewStore 创建文件存储实例，保证目标目录存在
func NewStore(conf *config.StorageConfig) (*Store, error) {
	for _, dir := range []string{conf.MediaPath, conf.CoverPath} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errorx.Wrapf(err, errorx.CodeServerBusy, "创建存储目录 %s", dir)
		}
	}
	return &Store{
		mediaPath: conf.MediaPath,
		coverPath: conf.CoverPath,
		publicURL: strings.TrimRight(conf.PublicURL, "/"),
	}, nil
}

// SaveAttachment 保存一个消息附件
// 不限制 MIME 类型，按探测到的类型归类为 image/video/audio/file
func (s *Store) SaveAttachment(fileHeader *multipart.FileHeader) (*SavedFile, error) {
	newName, contentType, err := saveFile(fileHeader, s.mediaPath)
	if err != nil {
		return nil, err
	}
	return &SavedFile{
		FileName: fileHeader.Filename,
		FileUrl:  s.publicURL + "/static/media/" + newName,
		FileType: kindOf(contentType),
		FileSize: fileHeader.Size,
	}, nil
}

// SaveCover 保存群组或活动封面，只接受图片类型
func (s *Store) SaveCover(fileHeader *multipart.FileHeader) (string, error) {
	newName, _, err := saveFile(fileHeader, s.coverPath, "image/jpeg", "image/png", "image/gif", "image/webp")
	if err != nil {
		return "", err
	}
	return s.publicURL + "/static/covers/" + newName, nil
}

// MediaPath 附件存储目录，用于静态文件路由挂载
func (s *Store) MediaPath() string { return s.mediaPath }

// CoverPath 封面存储目录，用于静态文件路由挂载
func (s *Store) CoverPath() string { return s.coverPath }

// saveFile 通用保存文件方法，支持 Magic Bytes 类型校验
// 返回生成的文件名和探测到的 MIME 类型
func saveFile(fileHeader *multipart.FileHeader, dstDir string, allowedMimes ...string) (string, string, error) {
	if fileHeader.Size > constants.FILE_MAX_SIZE {
		return "", "", errorx.New(errorx.CodeInvalidParam, "文件大小超过限制")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	// 1. 读取前 512 字节进行 MIME 类型的 Magic Bytes 校验
	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", "", err
	}
	contentType := http.DetectContentType(buffer)

	// 重置文件指针
	if _, err := src.Seek(0, 0); err != nil {
		return "", "", err
	}

	// 2. 校验 MIME 类型
	if len(allowedMimes) > 0 {
		isAllowed := false
		for _, mime := range allowedMimes {
			if strings.HasPrefix(contentType, mime) {
				isAllowed = true
				break
			}
		}
		if !isAllowed {
			return "", "", errorx.Newf(errorx.CodeInvalidParam, "invalid file type: %s", contentType)
		}
	}

	// 3. 生成唯一文件名
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	newFileName := random.GetNowAndLenRandomString(10) + ext
	dst := filepath.Join(dstDir, newFileName)

	// 4. 保存文件
	out, err := os.Create(dst)
	if err != nil {
		return "", "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", "", err
	}

	return newFileName, contentType, nil
}

// kindOf 根据 MIME 类型归类附件类型
func kindOf(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return attachment_type_enum.IMAGE
	case strings.HasPrefix(contentType, "video/"):
		return attachment_type_enum.VIDEO
	case strings.HasPrefix(contentType, "audio/"):
		return attachment_type_enum.AUDIO
	default:
		return attachment_type_enum.FILE
	}
}
