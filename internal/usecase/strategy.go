package usecase

import (
	"errors"
	"image"
	"image/color"

	"github.com/oceancolor-service/internal/config"
	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/pkg/raster"
)

// errInsufficientPixels - океанских пикселей слишком мало для выбранной
// стратегии (например, меньше числа кластеров kmeans).
var errInsufficientPixels = errors.New("not enough ocean pixels to classify")

// ClassifyStrategy распределяет каждый океанский пиксель ровно в один из
// трёх классов: облако, синяя вода, жёлтая/мутная вода.
// Инвариант: Cloud + Blue + Yellow == Total.
type ClassifyStrategy interface {
	Name() string
	Classify(img *image.RGBA, mask *image.Gray, hsv domain.HSVRanges) (domain.PixelCounts, error)
}

// pixelClass - метка класса; порядок решает приоритет: облака первыми,
// синяя вода второй, жёлтая - остаток.
type pixelClass int

const (
	classCloud pixelClass = iota
	classBlue
	classYellow
)

// StrategyFromConfig выбирает стратегию по конфигурации.
// Набор стратегий закрытый и проверяется при валидации конфигурации.
func StrategyFromConfig(cfg *config.Config) ClassifyStrategy {
	if cfg.Classifier.Strategy == "kmeans" {
		return NewKMeansStrategy(cfg.Classifier.SampleStride)
	}
	return NewThresholdStrategy()
}

// classifyHSV применяет пороговые правила к одному пикселю.
func classifyHSV(h, s, v uint8, r domain.HSVRanges) pixelClass {
	if s <= r.CloudSatMax && v >= r.CloudValMin {
		return classCloud
	}
	if h >= r.BlueHueMin && h <= r.BlueHueMax && s >= r.BlueSatMin && v >= r.BlueValMin {
		return classBlue
	}
	return classYellow
}

var overlayPalette = map[pixelClass]color.RGBA{
	classCloud:  {R: 255, G: 255, B: 255, A: 255},
	classBlue:   {R: 0, G: 90, B: 200, A: 255},
	classYellow: {R: 210, G: 170, B: 60, A: 255},
}

// renderOverlay красит каждый океанский пиксель цветом его порогового
// класса; суша остаётся чёрной. Диагностический растр, на результат
// классификации не влияет.
func renderOverlay(img *image.RGBA, mask *image.Gray, hsv domain.HSVRanges) *image.RGBA {
	b := img.Bounds()
	overlay := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.GrayAt(x, y).Y == 0 {
				continue
			}
			c := img.RGBAAt(x, y)
			h, s, v := raster.RGBToHSV(c.R, c.G, c.B)
			overlay.SetRGBA(x, y, overlayPalette[classifyHSV(h, s, v, hsv)])
		}
	}
	return overlay
}
