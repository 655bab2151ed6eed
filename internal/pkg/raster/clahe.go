package raster

import (
	"image"
	"image/color"
)

const (
	claheGridSize  = 8   // сетка тайлов выравнивания
	claheClipLimit = 2.0 // предел усечения гистограммы (в единицах среднего)
)

// EqualizeContrast выполняет локальное выравнивание контраста (CLAHE) по
// каналу яркости: RGB → YCbCr, адаптивная эквализация Y с фиксированным
// пределом усечения и сеткой тайлов, обратная сборка. Цветность не
// трогается - классификатор опирается на оттенок, и его менять нельзя.
// Компенсирует дымку и разброс экспозиции между снимками.
func EqualizeContrast(src *image.RGBA) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return src
	}

	// Канал яркости.
	luma := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y)
			yy, _, _ := color.RGBToYCbCr(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			luma[y*w+x] = yy
		}
	}

	gw, gh := claheGridSize, claheGridSize
	if gw > w {
		gw = w
	}
	if gh > h {
		gh = h
	}
	tileW := (w + gw - 1) / gw
	tileH := (h + gh - 1) / gh

	// LUT отображения яркости для каждого тайла сетки.
	luts := make([][256]uint8, gw*gh)
	for ty := 0; ty < gh; ty++ {
		for tx := 0; tx < gw; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := x0+tileW, y0+tileH
			if x1 > w {
				x1 = w
			}
			if y1 > h {
				y1 = h
			}
			luts[ty*gw+tx] = tileLUT(luma, w, x0, y0, x1, y1)
		}
	}

	// Билинейная интерполяция между LUT соседних тайлов, чтобы на стыках
	// сетки не появлялись швы.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		fy := (float64(y) - float64(tileH)/2) / float64(tileH)
		ty0 := int(fy)
		if fy < 0 {
			ty0 = 0
			fy = 0
		}
		ty1 := ty0 + 1
		if ty1 >= gh {
			ty1 = gh - 1
		}
		wy := fy - float64(ty0)

		for x := 0; x < w; x++ {
			fx := (float64(x) - float64(tileW)/2) / float64(tileW)
			tx0 := int(fx)
			if fx < 0 {
				tx0 = 0
				fx = 0
			}
			tx1 := tx0 + 1
			if tx1 >= gw {
				tx1 = gw - 1
			}
			wx := fx - float64(tx0)

			v := luma[y*w+x]
			top := (1-wx)*float64(luts[ty0*gw+tx0][v]) + wx*float64(luts[ty0*gw+tx1][v])
			bot := (1-wx)*float64(luts[ty1*gw+tx0][v]) + wx*float64(luts[ty1*gw+tx1][v])
			eq := uint8((1-wy)*top + wy*bot + 0.5)

			i := src.PixOffset(src.Rect.Min.X+x, src.Rect.Min.Y+y)
			_, cb, cr := color.RGBToYCbCr(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
			r, g, b := color.YCbCrToRGB(eq, cb, cr)

			o := dst.PixOffset(x, y)
			dst.Pix[o] = r
			dst.Pix[o+1] = g
			dst.Pix[o+2] = b
			dst.Pix[o+3] = 255
		}
	}
	return dst
}

// tileLUT строит усечённую эквализационную таблицу для одного тайла.
func tileLUT(luma []uint8, stride, x0, y0, x1, y1 int) [256]uint8 {
	var hist [256]int
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			hist[luma[y*stride+x]]++
			n++
		}
	}

	var lut [256]uint8
	if n == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	// Усечение: избыток над порогом распределяется равномерно по всем
	// корзинам - это и отличает CLAHE от обычной эквализации.
	clip := int(claheClipLimit * float64(n) / 256.0)
	if clip < 1 {
		clip = 1
	}
	excess := 0
	for i := range hist {
		if hist[i] > clip {
			excess += hist[i] - clip
			hist[i] = clip
		}
	}
	bonus := excess / 256
	rest := excess % 256
	for i := range hist {
		hist[i] += bonus
		if i < rest {
			hist[i]++
		}
	}

	cdf := 0
	for i := range hist {
		cdf += hist[i]
		lut[i] = uint8(min(255, cdf*255/n))
	}
	return lut
}
