package usecase_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/usecase"
)

var testHSV = domain.HSVRanges{
	CloudSatMax: 40,
	CloudValMin: 144,
	BlueHueMin:  100,
	BlueHueMax:  140,
	BlueSatMin:  40,
	BlueValMin:  20,
}

var (
	cloudWhite   = color.RGBA{255, 255, 255, 255}
	oceanBlue    = color.RGBA{0, 0, 255, 255}
	turbidYellow = color.RGBA{150, 120, 60, 255}
)

func fillBlock(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fullOceanMask(w, h int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	return mask
}

func TestThresholdStrategy_ClassifiesKnownColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	fillBlock(img, image.Rect(0, 0, 1, 2), cloudWhite)
	fillBlock(img, image.Rect(1, 0, 2, 2), oceanBlue)
	fillBlock(img, image.Rect(2, 0, 3, 2), turbidYellow)

	counts, err := usecase.NewThresholdStrategy().Classify(img, fullOceanMask(3, 2), testHSV)
	require.NoError(t, err)

	assert.Equal(t, 2, counts.Cloud)
	assert.Equal(t, 2, counts.Blue)
	assert.Equal(t, 2, counts.Yellow)
	assert.Equal(t, 6, counts.Total)
}

func TestThresholdStrategy_IgnoresLandPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fillBlock(img, img.Bounds(), oceanBlue)

	mask := fullOceanMask(2, 2)
	mask.SetGray(0, 0, color.Gray{Y: 0})
	mask.SetGray(1, 1, color.Gray{Y: 0})

	counts, err := usecase.NewThresholdStrategy().Classify(img, mask, testHSV)
	require.NoError(t, err)

	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 2, counts.Blue)
}

func TestThresholdStrategy_PartitionInvariant(t *testing.T) {
	// Псевдослучайная смесь цветов: разбиение всё равно полное.
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 16),
				G: uint8(y * 16),
				B: uint8((x + y) * 8),
				A: 255,
			})
		}
	}

	counts, err := usecase.NewThresholdStrategy().Classify(img, fullOceanMask(16, 16), testHSV)
	require.NoError(t, err)
	assert.Equal(t, counts.Total, counts.Cloud+counts.Blue+counts.Yellow)
	assert.Equal(t, 256, counts.Total)
}

func TestThresholdStrategy_EmptyMask(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	mask := image.NewGray(image.Rect(0, 0, 2, 2)) // вся суша

	_, err := usecase.NewThresholdStrategy().Classify(img, mask, testHSV)
	assert.Error(t, err)
}

func TestKMeansStrategy_DominantClass(t *testing.T) {
	// 90% синей воды: как бы kmeans ни разложил минорные цвета,
	// доминирующий кластер обязан быть помечен синим.
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	fillBlock(img, img.Bounds(), oceanBlue)
	fillBlock(img, image.Rect(0, 0, 4, 5), cloudWhite)
	fillBlock(img, image.Rect(16, 0, 20, 5), turbidYellow)

	counts, err := usecase.NewKMeansStrategy(1).Classify(img, fullOceanMask(20, 20), testHSV)
	require.NoError(t, err)

	assert.Equal(t, 400, counts.Total)
	assert.Equal(t, counts.Total, counts.Cloud+counts.Blue+counts.Yellow)
	assert.GreaterOrEqual(t, counts.Blue, 320)
}

func TestKMeansStrategy_InsufficientSamples(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fillBlock(img, img.Bounds(), oceanBlue)

	// Строгое прореживание оставляет один пиксель из четырёх.
	_, err := usecase.NewKMeansStrategy(4).Classify(img, fullOceanMask(2, 2), testHSV)
	assert.Error(t, err)
}

func TestKMeansStrategy_StrideScalesBackToTotal(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	fillBlock(img, img.Bounds(), oceanBlue)
	fillBlock(img, image.Rect(0, 0, 16, 4), cloudWhite)
	fillBlock(img, image.Rect(0, 12, 16, 16), turbidYellow)

	counts, err := usecase.NewKMeansStrategy(2).Classify(img, fullOceanMask(16, 16), testHSV)
	require.NoError(t, err)

	assert.Equal(t, 256, counts.Total)
	assert.Equal(t, counts.Total, counts.Cloud+counts.Blue+counts.Yellow)
}
