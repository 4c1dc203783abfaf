package handler

import (
	"errors"
	"net/http"

	"derm-go/internal/dto"
	"derm-go/internal/middleware"
	"derm-go/internal/service"
	"derm-go/internal/utils"
	"derm-go/pkg/infer"
	"derm-go/pkg/redis_limiter"

	"github.com/gin-gonic/gin"
)

// PredictHandler 预测处理器
type PredictHandler struct {
	uploadService  *service.UploadService
	predictService *service.PredictService
}

// NewPredictHandler 创建预测处理器
func NewPredictHandler(uploadService *service.UploadService, predictService *service.PredictService) *PredictHandler {
	return &PredictHandler{
		uploadService:  uploadService,
		predictService: predictService,
	}
}

// Submit 上传图片并返回诊断与治疗建议(POST /submit)
// multipart字段名为 my_image
func (h *PredictHandler) Submit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.Unauthorized(c, "未认证")
		return
	}

	fileHeader, err := c.FormFile("my_image")
	if err != nil {
		utils.BadRequest(c, service.ErrNoFile.Error())
		return
	}

	picture, storedPath, err := h.uploadService.Store(fileHeader, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFile),
			errors.Is(err, service.ErrEmptyFilename),
			errors.Is(err, service.ErrFileTooLarge):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	label, rec, err := h.predictService.Predict(c.Request.Context(), storedPath)
	if err != nil {
		var decodeErr *infer.DecodeError
		switch {
		case errors.As(err, &decodeErr):
			// 无法识别的图片走可恢复的用户错误，不再向上抛
			utils.BadRequest(c, "无法识别的图片文件，请上传有效的皮肤照片")
		case errors.Is(err, redis_limiter.ErrSlotsFull):
			utils.ServiceUnavailable(c, "推理服务繁忙，请稍后重试")
		default:
			utils.InternalError(c, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, dto.PredictResponse{
		Prediction:     label,
		Recommendation: rec.Treatment,
		ReferenceLink:  rec.ReferenceLink,
		ProductHint:    rec.ProductHint,
		ImgPath:        picture.Filename,
	})
}
