package domain

import "math"

// TileSizePx - размер стандартного slippy-тайла в пикселях.
const TileSizePx = 256

// MaxMercatorLat - предел широты проекции Web Mercator.
const MaxMercatorLat = 85.0511

// LonLat - географическая точка в градусах.
type LonLat struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Ring - замкнутый контур полигона, координаты в порядке [lon, lat].
type Ring []LonLat

// Bounds - географический прямоугольник интересующей акватории.
// Инвариант: North > South, East > West (антимеридиан не поддерживается).
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	West  float64 `json:"west"`
	East  float64 `json:"east"`
}

// Valid проверяет инвариант границ.
func (b Bounds) Valid() bool {
	return b.North > b.South && b.East > b.West &&
		math.Abs(b.North) <= 90 && math.Abs(b.South) <= 90 &&
		math.Abs(b.West) <= 180 && math.Abs(b.East) <= 180
}

// TileAddress - адрес тайла в глобальной сетке (zoom, столбец, строка).
type TileAddress struct {
	Zoom int `json:"zoom"`
	Col  int `json:"col"`
	Row  int `json:"row"`
}
