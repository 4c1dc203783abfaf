package infer

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArtifact 构造全零权重的单层模型并写入临时文件，bias决定各类得分
func writeArtifact(t *testing.T, bias []float32) string {
	t.Helper()

	inputDim := ImageSize * ImageSize * ImageChannels
	weights := make([][]float32, inputDim)
	for i := range weights {
		weights[i] = make([]float32, NumClasses)
	}

	artifact := Artifact{
		Name:       "test_model",
		InputShape: []int{ImageSize, ImageSize, ImageChannels},
		Layers: []Layer{
			{Weights: weights, Bias: bias, Activation: ActivationSoftmax},
		},
	}

	data, err := json.Marshal(&artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// writeTestImage 生成一张纯色PNG
func writeTestImage(t *testing.T, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestClassifyBiasedClass(t *testing.T) {
	// 第6类偏置最大，任何图片都应判为Melanoma
	bias := make([]float32, NumClasses)
	bias[6] = 5.0

	engine, err := NewEngine(writeArtifact(t, bias))
	require.NoError(t, err)

	imgPath := writeTestImage(t, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	label, err := engine.Classify(imgPath)
	require.NoError(t, err)
	assert.Equal(t, "Melanoma", label)
}

func TestClassifyDeterministic(t *testing.T) {
	bias := make([]float32, NumClasses)
	bias[2] = 3.0

	engine, err := NewEngine(writeArtifact(t, bias))
	require.NoError(t, err)

	imgPath := writeTestImage(t, color.RGBA{R: 120, G: 80, B: 60, A: 255})

	first, err := engine.Classify(imgPath)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := engine.Classify(imgPath)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifyTieBreaksToLowestIndex(t *testing.T) {
	// 全零权重和偏置，15类概率完全相等，取最小下标即第0类
	engine, err := NewEngine(writeArtifact(t, make([]float32, NumClasses)))
	require.NoError(t, err)

	imgPath := writeTestImage(t, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	label, err := engine.Classify(imgPath)
	require.NoError(t, err)
	assert.Equal(t, verboseNames[0], label)
}

func TestClassifyUndecodableImage(t *testing.T) {
	engine, err := NewEngine(writeArtifact(t, make([]float32, NumClasses)))
	require.NoError(t, err)

	badPath := filepath.Join(t.TempDir(), "not_an_image.jpg")
	require.NoError(t, os.WriteFile(badPath, []byte("definitely not pixels"), 0644))

	_, err = engine.Classify(badPath)
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestClassifyMissingFile(t *testing.T) {
	engine, err := NewEngine(writeArtifact(t, make([]float32, NumClasses)))
	require.NoError(t, err)

	_, err = engine.Classify(filepath.Join(t.TempDir(), "missing.png"))

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestLoadArtifactRejectsBadShape(t *testing.T) {
	artifact := Artifact{
		Name:       "bad",
		InputShape: []int{32, 32, 3},
	}
	data, err := json.Marshal(&artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = NewEngine(path)
	assert.Error(t, err)
}

func TestLoadArtifactRejectsWrongClassCount(t *testing.T) {
	inputDim := ImageSize * ImageSize * ImageChannels
	weights := make([][]float32, inputDim)
	for i := range weights {
		weights[i] = make([]float32, 10)
	}

	artifact := Artifact{
		Name:       "bad",
		InputShape: []int{ImageSize, ImageSize, ImageChannels},
		Layers: []Layer{
			{Weights: weights, Bias: make([]float32, 10), Activation: ActivationSoftmax},
		},
	}
	data, err := json.Marshal(&artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = NewEngine(path)
	assert.Error(t, err)
}

func TestLabelsClosedSet(t *testing.T) {
	labels := Labels()

	assert.Len(t, labels, NumClasses)
	assert.Equal(t, "Actinic keratoses and intraepithelial carcinomae", labels[0])
	assert.Equal(t, "STDs - Herpes/AIDS", labels[14])
}
