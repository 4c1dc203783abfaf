package infer

import (
	"encoding/json"
	"fmt"
	"os"
)

// 激活函数名
const (
	ActivationReLU    = "relu"
	ActivationSoftmax = "softmax"
	ActivationLinear  = "linear"
)

// Layer 全连接层参数
// Weights[i][j] 为第i个输入到第j个输出的权重
type Layer struct {
	Weights    [][]float32 `json:"weights"`
	Bias       []float32   `json:"bias"`
	Activation string      `json:"activation"`
}

// Artifact 冻结的模型文件
type Artifact struct {
	Name       string  `json:"name"`
	InputShape []int   `json:"input_shape"`
	Layers     []Layer `json:"layers"`
}

// LoadArtifact 从文件加载模型
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取模型文件失败: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("解析模型文件失败: %w", err)
	}

	if err := artifact.validate(); err != nil {
		return nil, fmt.Errorf("模型文件校验失败: %w", err)
	}

	return &artifact, nil
}

// validate 校验输入形状与各层维度衔接
func (a *Artifact) validate() error {
	if len(a.InputShape) != 3 {
		return fmt.Errorf("input_shape必须为[高,宽,通道], 实际: %v", a.InputShape)
	}
	if a.InputShape[0] != ImageSize || a.InputShape[1] != ImageSize || a.InputShape[2] != ImageChannels {
		return fmt.Errorf("input_shape必须为[%d,%d,%d], 实际: %v",
			ImageSize, ImageSize, ImageChannels, a.InputShape)
	}
	if len(a.Layers) == 0 {
		return fmt.Errorf("模型至少需要一层")
	}

	expectIn := ImageSize * ImageSize * ImageChannels
	for i, layer := range a.Layers {
		if len(layer.Weights) != expectIn {
			return fmt.Errorf("第%d层输入维度不匹配: 期望%d, 实际%d", i, expectIn, len(layer.Weights))
		}
		if len(layer.Weights[0]) != len(layer.Bias) {
			return fmt.Errorf("第%d层权重与偏置维度不匹配", i)
		}
		for _, row := range layer.Weights {
			if len(row) != len(layer.Bias) {
				return fmt.Errorf("第%d层权重矩阵行长度不一致", i)
			}
		}
		switch layer.Activation {
		case ActivationReLU, ActivationSoftmax, ActivationLinear:
		default:
			return fmt.Errorf("第%d层未知的激活函数: %s", i, layer.Activation)
		}
		expectIn = len(layer.Bias)
	}

	if expectIn != NumClasses {
		return fmt.Errorf("输出层维度必须为%d类, 实际%d", NumClasses, expectIn)
	}

	return nil
}
