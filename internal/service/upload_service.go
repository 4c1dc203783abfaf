package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"derm-go/internal/models"
	"derm-go/internal/repository"
	"derm-go/internal/utils"

	"github.com/google/uuid"
)

// 上传相关错误
var (
	ErrNoFile        = errors.New("请求中没有文件")
	ErrEmptyFilename = errors.New("文件名为空")
	ErrFileTooLarge  = errors.New("文件超过大小限制")
)

// UploadService 上传服务
// 文件落盘到 <uploadDir>/<userID>/<uuid>_<清洗后文件名>，不同上传永不互相覆盖
type UploadService struct {
	pictureRepo *repository.PictureRepository
	uploadDir   string
	maxSize     int64
}

// NewUploadService 创建上传服务
func NewUploadService(pictureRepo *repository.PictureRepository, uploadDir string, maxSize int64) *UploadService {
	return &UploadService{
		pictureRepo: pictureRepo,
		uploadDir:   uploadDir,
		maxSize:     maxSize,
	}
}

// Store 保存上传的图片并创建Picture记录，返回记录和落盘路径
func (s *UploadService) Store(fileHeader *multipart.FileHeader, ownerID uint) (*models.Picture, string, error) {
	if fileHeader == nil {
		return nil, "", ErrNoFile
	}

	if s.maxSize > 0 && fileHeader.Size > s.maxSize {
		return nil, "", ErrFileTooLarge
	}

	sanitized := utils.SanitizeFilename(fileHeader.Filename)
	if sanitized == "" {
		return nil, "", ErrEmptyFilename
	}

	// 按用户分目录，uuid前缀避免同名覆盖
	userDir := filepath.Join(s.uploadDir, strconv.FormatUint(uint64(ownerID), 10))
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return nil, "", fmt.Errorf("创建用户上传目录失败: %w", err)
	}

	storedName := uuid.New().String() + "_" + sanitized
	storedPath := filepath.Join(userDir, storedName)

	if err := saveFile(fileHeader, storedPath); err != nil {
		return nil, "", fmt.Errorf("保存文件失败: %w", err)
	}

	picture := &models.Picture{
		Filename: filepath.ToSlash(filepath.Join(strconv.FormatUint(uint64(ownerID), 10), storedName)),
		UserID:   ownerID,
	}
	if err := s.pictureRepo.Create(picture); err != nil {
		// 记录失败时清掉孤儿文件
		os.Remove(storedPath)
		return nil, "", fmt.Errorf("创建图片记录失败: %w", err)
	}

	return picture, storedPath, nil
}

// ListByUser 获取用户的图片列表
func (s *UploadService) ListByUser(userID uint) ([]models.Picture, error) {
	return s.pictureRepo.ListByUserID(userID)
}

// saveFile 把multipart文件写到目标路径
func saveFile(fileHeader *multipart.FileHeader, dst string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
