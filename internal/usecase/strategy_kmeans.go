package usecase

import (
	"fmt"
	"image"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/pkg/raster"
)

const kmeansClusterCount = 3

// kmeansStrategy кластеризует цвета океанских пикселей на три группы и
// помечает каждую группу по HSV центроида. Пиксели прореживаются
// SampleStride'ом: кластеризации хватает подвыборки, а счётчики
// масштабируются обратно к полному числу океанских пикселей.
type kmeansStrategy struct {
	stride int
}

// NewKMeansStrategy создает kmeans-стратегию классификации.
func NewKMeansStrategy(sampleStride int) ClassifyStrategy {
	if sampleStride < 1 {
		sampleStride = 1
	}
	return &kmeansStrategy{stride: sampleStride}
}

func (s *kmeansStrategy) Name() string { return "kmeans" }

func (s *kmeansStrategy) Classify(img *image.RGBA, mask *image.Gray, hsv domain.HSVRanges) (domain.PixelCounts, error) {
	var counts domain.PixelCounts

	b := img.Bounds()
	total := 0
	var obs clusters.Observations

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.GrayAt(x, y).Y == 0 {
				continue
			}
			total++

			if (y-b.Min.Y)%s.stride != 0 || (x-b.Min.X)%s.stride != 0 {
				continue
			}

			c := img.RGBAAt(x, y)
			obs = append(obs, clusters.Coordinates{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			})
		}
	}

	if len(obs) < kmeansClusterCount {
		return counts, errInsufficientPixels
	}

	km := kmeans.New()
	cl, err := km.Partition(obs, kmeansClusterCount)
	if err != nil {
		return counts, fmt.Errorf("kmeans partition failed: %w", err)
	}

	sampled, err := tallyClusters(cl, hsv)
	if err != nil {
		return counts, err
	}

	// Масштабирование к полному числу пикселей; жёлтый класс берёт
	// остаток, чтобы разбиение сходилось точно.
	n := len(obs)
	counts.Total = total
	counts.Cloud = total * sampled[classCloud] / n
	counts.Blue = total * sampled[classBlue] / n
	counts.Yellow = total - counts.Cloud - counts.Blue

	return counts, nil
}

// tallyClusters раскладывает размеры кластеров по классам центроидов.
// Метки выдаются по принципу "первый подошедший": облаком становится
// только первый кластер, прошедший облачный тест, синим - только первый
// из оставшихся, прошедший синий; все прочие - жёлтые. Это жёсткий
// tie-break, а не выбор лучшего совпадения: два белёсых кластера не
// должны удвоить облачность.
func tallyClusters(cl clusters.Clusters, hsv domain.HSVRanges) ([3]int, error) {
	var sampled [3]int
	cloudTaken, blueTaken := false, false

	for _, cluster := range cl {
		center := cluster.Center
		if len(center) != 3 {
			return sampled, fmt.Errorf("unexpected kmeans centroid shape")
		}

		h, s, v := raster.RGBToHSV(
			uint8(center[0]*255+0.5),
			uint8(center[1]*255+0.5),
			uint8(center[2]*255+0.5),
		)

		switch {
		case !cloudTaken && s <= hsv.CloudSatMax && v >= hsv.CloudValMin:
			cloudTaken = true
			sampled[classCloud] += len(cluster.Observations)
		case !blueTaken && h >= hsv.BlueHueMin && h <= hsv.BlueHueMax && s >= hsv.BlueSatMin && v >= hsv.BlueValMin:
			blueTaken = true
			sampled[classBlue] += len(cluster.Observations)
		default:
			sampled[classYellow] += len(cluster.Observations)
		}
	}

	return sampled, nil
}
