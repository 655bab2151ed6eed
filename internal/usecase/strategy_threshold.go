package usecase

import (
	"image"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/pkg/raster"
)

// thresholdStrategy - попиксельная классификация по фиксированным
// HSV-порогам. Детерминирована и не требует настройки под сцену.
type thresholdStrategy struct{}

// NewThresholdStrategy создает пороговую стратегию классификации.
func NewThresholdStrategy() ClassifyStrategy {
	return thresholdStrategy{}
}

func (thresholdStrategy) Name() string { return "threshold" }

func (thresholdStrategy) Classify(img *image.RGBA, mask *image.Gray, hsv domain.HSVRanges) (domain.PixelCounts, error) {
	var counts domain.PixelCounts

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.GrayAt(x, y).Y == 0 {
				continue
			}

			c := img.RGBAAt(x, y)
			h, s, v := raster.RGBToHSV(c.R, c.G, c.B)

			switch classifyHSV(h, s, v, hsv) {
			case classCloud:
				counts.Cloud++
			case classBlue:
				counts.Blue++
			default:
				counts.Yellow++
			}
			counts.Total++
		}
	}

	if counts.Total == 0 {
		return counts, errInsufficientPixels
	}

	return counts, nil
}
