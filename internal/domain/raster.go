package domain

import "image"

// Mosaic - склеенный из тайлов и обрезанный по Bounds растр.
// OriginCol/OriginRow - индексы левого верхнего тайла сетки, из которой
// растр был собран; нужны для вычисления пиксельных смещений.
type Mosaic struct {
	Image     *image.RGBA
	Zoom      int
	OriginCol int
	OriginRow int

	// Статистика загрузки: сколько тайлов удалось скачать из скольких.
	Downloaded int
	Total      int
}

// Width возвращает ширину растра в пикселях.
func (m *Mosaic) Width() int { return m.Image.Rect.Dx() }

// Height возвращает высоту растра в пикселях.
func (m *Mosaic) Height() int { return m.Image.Rect.Dy() }

// OceanMask - бинарная маска океана, по размеру совпадающая с мозаикой.
// 255 = океан (пригодно для анализа), 0 = суша (исключено).
type OceanMask struct {
	Gray *image.Gray
}

// OceanPixels возвращает число пикселей океана в маске.
func (m *OceanMask) OceanPixels() int {
	n := 0
	for _, v := range m.Gray.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
