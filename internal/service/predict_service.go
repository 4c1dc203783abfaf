package service

import (
	"context"
	"fmt"

	"derm-go/pkg/infer"
	"derm-go/pkg/recommend"
	"derm-go/pkg/redis_limiter"
)

// PredictService 预测服务
// 引擎在进程启动时构造一次并注入，不经过包级全局变量
type PredictService struct {
	engine    *infer.Engine
	limiter   *redis_limiter.RedisLimiter
	modelName string
}

// NewPredictService 创建预测服务
func NewPredictService(engine *infer.Engine, limiter *redis_limiter.RedisLimiter, modelName string) *PredictService {
	return &PredictService{
		engine:    engine,
		limiter:   limiter,
		modelName: modelName,
	}
}

// Predict 对已落盘的图片做分类并给出治疗建议
func (s *PredictService) Predict(ctx context.Context, imagePath string) (infer.Label, recommend.Recommendation, error) {
	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx, s.modelName); err != nil {
			return "", recommend.Recommendation{}, err
		}
		defer s.limiter.Release(ctx, s.modelName)
	}

	label, err := s.engine.Classify(imagePath)
	if err != nil {
		return "", recommend.Recommendation{}, fmt.Errorf("图片分类失败: %w", err)
	}

	return label, recommend.Resolve(label), nil
}

// ModelInfo 模型元信息(用于Graph页)
type ModelInfo struct {
	Name       string   `json:"name"`
	InputShape []int    `json:"input_shape"`
	Classes    []string `json:"classes"`
}

// GetModelInfo 返回模型元信息
func (s *PredictService) GetModelInfo() ModelInfo {
	return ModelInfo{
		Name:       s.modelName,
		InputShape: []int{infer.ImageSize, infer.ImageSize, infer.ImageChannels},
		Classes:    infer.Labels(),
	}
}
