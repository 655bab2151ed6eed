// Package geo содержит чистую координатную математику: преобразования
// градусы ↔ индексы тайлов ↔ пиксельные смещения для slippy-map сетки и
// проекции Web Mercator. Без состояния и без I/O.
package geo

import (
	"math"

	"github.com/oceancolor-service/internal/domain"
)

// clampLat ограничивает широту рабочим диапазоном Web Mercator.
// За пределами ±85.0511° проекция уходит в сингулярность.
func clampLat(lat float64) float64 {
	if lat > domain.MaxMercatorLat {
		return domain.MaxMercatorLat
	}
	if lat < -domain.MaxMercatorLat {
		return -domain.MaxMercatorLat
	}
	return lat
}

// TileAt возвращает индексы slippy-тайла, содержащего точку (lat, lon)
// на уровне zoom. Долгота линейна, широта - через asinh(tan).
func TileAt(lat, lon float64, zoom int) (col, row int) {
	lat = clampLat(lat)
	n := math.Exp2(float64(zoom))
	latRad := lat * math.Pi / 180.0

	col = int((lon + 180.0) / 360.0 * n)
	row = int((1.0 - math.Asinh(math.Tan(latRad))/math.Pi) / 2.0 * n)

	maxTile := int(n) - 1
	if col < 0 {
		col = 0
	}
	if col > maxTile {
		col = maxTile
	}
	if row < 0 {
		row = 0
	}
	if row > maxTile {
		row = maxTile
	}
	return col, row
}

// MosaicPixel возвращает пиксельные координаты точки (lat, lon)
// относительно левого верхнего угла мозаики, собранной из тайлов начиная
// с (originCol, originRow). Тайл - 256 px.
func MosaicPixel(lat, lon float64, zoom, originCol, originRow int) (x, y int) {
	lat = clampLat(lat)
	mapSize := float64(domain.TileSizePx) * math.Exp2(float64(zoom))

	worldX := (lon + 180.0) / 360.0 * mapSize
	sinLat := math.Sin(lat * math.Pi / 180.0)
	worldY := (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * mapSize

	x = int(math.Round(worldX - float64(originCol*domain.TileSizePx)))
	y = int(math.Round(worldY - float64(originRow*domain.TileSizePx)))
	return x, y
}

// MercatorY переводит широту в координату Y проекции Меркатора,
// пригодную для линейной интерполяции.
func MercatorY(lat float64) float64 {
	latRad := clampLat(lat) * math.Pi / 180.0
	return math.Log(math.Tan(math.Pi/4 + latRad/2))
}

// RasterPixel возвращает пиксельные координаты точки (lat, lon) внутри уже
// обрезанного растра с границами b и размером width×height. Долгота
// интерполируется линейно; широта - линейно в пространстве Mercator-Y:
// интерполяция в "сырых" градусах смещала бы береговую линию на краях
// широких областей.
func RasterPixel(lat, lon float64, b domain.Bounds, width, height int) (x, y int) {
	lonFraction := (lon - b.West) / (b.East - b.West)
	x = int(math.Round(lonFraction * float64(width)))

	yNorth := MercatorY(b.North)
	ySouth := MercatorY(b.South)
	latFraction := (MercatorY(lat) - yNorth) / (ySouth - yNorth)
	y = int(math.Round(latFraction * float64(height)))
	return x, y
}
