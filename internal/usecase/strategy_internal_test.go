package usecase

import (
	"image"
	"testing"

	"github.com/muesli/clusters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oceancolor-service/internal/domain"
)

var tieBreakHSV = domain.HSVRanges{
	CloudSatMax: 40,
	CloudValMin: 144,
	BlueHueMin:  100,
	BlueHueMax:  140,
	BlueSatMin:  40,
	BlueValMin:  20,
}

func clusterOf(size int, center ...float64) clusters.Cluster {
	return clusters.Cluster{
		Center:       clusters.Coordinates(center),
		Observations: make(clusters.Observations, size),
	}
}

func TestClassifyHSV_CloudWinsOverBlue(t *testing.T) {
	// s == 40 проходит и облачный тест (s <= 40), и синий (s >= 40);
	// приоритет за облаком.
	assert.Equal(t, classCloud, classifyHSV(120, 40, 200, tieBreakHSV))
}

func TestTallyClusters_OnlyFirstCloudCluster(t *testing.T) {
	// Белый и светло-серый центроиды оба проходят облачный тест;
	// облаком считается только первый, второй уходит в жёлтый.
	cl := clusters.Clusters{
		clusterOf(4, 1, 1, 1),
		clusterOf(3, 0.85, 0.85, 0.85),
		clusterOf(5, 0, 0, 1),
	}

	sampled, err := tallyClusters(cl, tieBreakHSV)
	require.NoError(t, err)

	assert.Equal(t, 4, sampled[classCloud])
	assert.Equal(t, 5, sampled[classBlue])
	assert.Equal(t, 3, sampled[classYellow])
}

func TestTallyClusters_OnlyFirstBlueCluster(t *testing.T) {
	cl := clusters.Clusters{
		clusterOf(6, 0, 0, 1),
		clusterOf(2, 0.1, 0.2, 1),
		clusterOf(4, 0.6, 0.45, 0.25),
	}

	sampled, err := tallyClusters(cl, tieBreakHSV)
	require.NoError(t, err)

	assert.Equal(t, 0, sampled[classCloud])
	assert.Equal(t, 6, sampled[classBlue])
	assert.Equal(t, 6, sampled[classYellow])
}

func TestTallyClusters_BadCentroidShape(t *testing.T) {
	_, err := tallyClusters(clusters.Clusters{clusterOf(1, 0.5, 0.5)}, tieBreakHSV)
	assert.Error(t, err)
}

func TestThresholdStrategy_EmptyMaskSentinel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	mask := image.NewGray(image.Rect(0, 0, 2, 2))

	_, err := NewThresholdStrategy().Classify(img, mask, tieBreakHSV)
	assert.ErrorIs(t, err, errInsufficientPixels)
}
