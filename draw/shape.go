package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(dst, a.X, a.Y, b.X, b.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w <= 0 {
		return
	}
	bresenham(dst, x, y, x+w-1, y, c)
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h <= 0 {
		return
	}
	bresenham(dst, x, y, x, y+h-1, c)
}

// Rectangle draws the outline of rect.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	w, h := rect.Dx(), rect.Dy()
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, rect.Dx(), c)
	}
}

// Generalized with integer
func bresenham(dst Image, x1, y1, x2, y2 int, c color.Color) {
	// Drawing p1 -> p2 is equivalent to drawing p2 -> p1, so only the
	// left-to-right half of the cases is handled.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy := x2-x1, y2-y1
	stepY := 1
	if dy < 0 {
		dy, stepY = -dy, -1
	}

	switch {
	case dx == 0 && dy == 0:
		dst.Set(x1, y1, c)

	case dx >= dy:
		e := dx
		for ; x1 != x2; x1++ {
			dst.Set(x1, y1, c)
			if e -= 2 * dy; e < 0 {
				y1 += stepY
				e += 2 * dx
			}
		}
		dst.Set(x2, y2, c)

	default:
		e := dy
		for ; y1 != y2; y1 += stepY {
			dst.Set(x1, y1, c)
			if e -= 2 * dx; e < 0 {
				x1++
				e += 2 * dy
			}
		}
		dst.Set(x2, y2, c)
	}
}
