package handler

import (
	"derm-go/internal/service"
	"derm-go/internal/utils"
	"derm-go/pkg/infer"
	"derm-go/pkg/recommend"

	"github.com/gin-gonic/gin"
)

// PageHandler 公开信息页处理器
type PageHandler struct {
	predictService *service.PredictService
}

// NewPageHandler 创建信息页处理器
func NewPageHandler(predictService *service.PredictService) *PageHandler {
	return &PageHandler{
		predictService: predictService,
	}
}

// Landing 落地页(GET /, GET /first)
func (h *PageHandler) Landing(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"service": "皮肤病变诊断服务",
		"version": "1.0.0",
	})
}

// Graph 模型信息页(GET /Graph)
func (h *PageHandler) Graph(c *gin.Context) {
	utils.SuccessResponse(c, h.predictService.GetModelInfo())
}

// Chart 图表数据页(GET /chart)
// 返回类别标签和完整的治疗建议对照表
func (h *PageHandler) Chart(c *gin.Context) {
	labels := infer.Labels()

	entries := make([]gin.H, 0, len(labels))
	for _, label := range labels {
		rec := recommend.Resolve(label)
		entries = append(entries, gin.H{
			"label":          label,
			"recommendation": rec,
		})
	}

	utils.SuccessResponse(c, gin.H{
		"classes": entries,
	})
}
