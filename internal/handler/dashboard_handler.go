package handler

import (
	"errors"

	"derm-go/internal/dto"
	"derm-go/internal/middleware"
	"derm-go/internal/service"
	"derm-go/internal/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 个人中心处理器
type DashboardHandler struct {
	authService   *service.AuthService
	uploadService *service.UploadService
}

// NewDashboardHandler 创建个人中心处理器
func NewDashboardHandler(authService *service.AuthService, uploadService *service.UploadService) *DashboardHandler {
	return &DashboardHandler{
		authService:   authService,
		uploadService: uploadService,
	}
}

// Show 展示个人资料和全部图片(GET /dashboard)
func (h *DashboardHandler) Show(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	userInfo, err := h.authService.GetMe(userID)
	if err != nil {
		utils.NotFound(c, err.Error())
		return
	}

	pictures, err := h.uploadService.ListByUser(userID)
	if err != nil {
		utils.InternalError(c, "获取图片列表失败")
		return
	}

	infos := make([]dto.PictureInfo, 0, len(pictures))
	for _, p := range pictures {
		infos = append(infos, dto.PictureInfo{
			ID:         p.ID,
			Filename:   p.Filename,
			UploadedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	utils.SuccessResponse(c, dto.DashboardResponse{
		User:     *userInfo,
		Pictures: infos,
	})
}

// Update 更新资料或上传图片(POST /dashboard)
// multipart表单：username/email可选，my_image可选
func (h *DashboardHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	req := dto.ProfileUpdateRequest{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
	}

	if req.Username != "" || req.Email != "" {
		if fieldErrors := utils.ValidateStruct(&req); fieldErrors != nil {
			utils.FieldErrors(c, fieldErrors)
			return
		}

		if _, err := h.authService.UpdateProfile(userID, &req); err != nil {
			switch {
			case errors.Is(err, service.ErrDuplicateUsername):
				utils.FieldErrors(c, map[string]string{"username": err.Error()})
			case errors.Is(err, service.ErrDuplicateEmail):
				utils.FieldErrors(c, map[string]string{"email": err.Error()})
			default:
				utils.InternalError(c, err.Error())
			}
			return
		}
	}

	// 可选的图片上传
	if fileHeader, err := c.FormFile("my_image"); err == nil {
		if _, _, err := h.uploadService.Store(fileHeader, userID); err != nil {
			switch {
			case errors.Is(err, service.ErrEmptyFilename),
				errors.Is(err, service.ErrFileTooLarge):
				utils.BadRequest(c, err.Error())
			default:
				utils.InternalError(c, err.Error())
			}
			return
		}
	}

	h.Show(c)
}
