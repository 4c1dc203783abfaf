package infer

import (
	"fmt"
	"image"
	"math"
	"os"

	// 注册常见图片解码器
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// 预处理的固定参数: 28x28 RGB, 像素归一化到[0,1]
const (
	ImageSize     = 28
	ImageChannels = 3
	NumClasses    = 15
)

// DecodeError 图片无法解码或预处理失败
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("无法解码图片 %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Engine 推理引擎
// 进程启动时构造一次，权重加载后只读，可被并发调用
type Engine struct {
	artifact *Artifact
}

// NewEngine 加载冻结模型并构造推理引擎
func NewEngine(artifactPath string) (*Engine, error) {
	artifact, err := LoadArtifact(artifactPath)
	if err != nil {
		return nil, err
	}
	return &Engine{artifact: artifact}, nil
}

// Name 模型名称
func (e *Engine) Name() string {
	return e.artifact.Name
}

// Classify 对图片文件分类，返回可读标签
func (e *Engine) Classify(imagePath string) (Label, error) {
	input, err := preprocess(imagePath)
	if err != nil {
		return "", err
	}

	probs := e.forward(input)
	return verboseNames[argmax(probs)], nil
}

// ClassIndex 对图片文件分类，返回类别编号(用于调试接口)
func (e *Engine) ClassIndex(imagePath string) (int, error) {
	input, err := preprocess(imagePath)
	if err != nil {
		return 0, err
	}
	return argmax(e.forward(input)), nil
}

// preprocess 解码图片, 缩放到28x28, RGB按255归一化, 按行展平
func preprocess(imagePath string) ([]float32, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, &DecodeError{Path: imagePath, Err: err}
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: imagePath, Err: err}
	}

	dst := image.NewRGBA(image.Rect(0, 0, ImageSize, ImageSize))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	input := make([]float32, 0, ImageSize*ImageSize*ImageChannels)
	for y := 0; y < ImageSize; y++ {
		for x := 0; x < ImageSize; x++ {
			r, g, b, _ := dst.At(x, y).RGBA()
			input = append(input,
				float32(r>>8)/255.0,
				float32(g>>8)/255.0,
				float32(b>>8)/255.0,
			)
		}
	}

	return input, nil
}

// forward 逐层前向传播，输出概率向量
func (e *Engine) forward(input []float32) []float32 {
	current := input

	for _, layer := range e.artifact.Layers {
		out := make([]float32, len(layer.Bias))
		copy(out, layer.Bias)

		for i, v := range current {
			if v == 0 {
				continue
			}
			row := layer.Weights[i]
			for j, w := range row {
				out[j] += v * w
			}
		}

		switch layer.Activation {
		case ActivationReLU:
			for j, v := range out {
				if v < 0 {
					out[j] = 0
				}
			}
		case ActivationSoftmax:
			softmax(out)
		}

		current = out
	}

	return current
}

// softmax 数值稳定的softmax，原地计算
func softmax(v []float32) {
	maxV := v[0]
	for _, x := range v[1:] {
		if x > maxV {
			maxV = x
		}
	}

	var sum float64
	for j, x := range v {
		e := math.Exp(float64(x - maxV))
		v[j] = float32(e)
		sum += e
	}
	for j := range v {
		v[j] = float32(float64(v[j]) / sum)
	}
}

// argmax 最大概率的类别，相等时取最小下标
func argmax(probs []float32) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}
