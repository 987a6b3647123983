package screen

import (
	"image"
	"image/color"
)

var (
	lcdPaper = rgb(0xB1, 0xAF, 0xA8)
	lcdInk   = rgb(0x31, 0x2F, 0x28)
)

// RenderLCD draws the framebuffer the way it looks on the reflective panel:
// each pixel becomes a scale×scale cell with a faint gap on its right and
// bottom edges, and ink bleeds slightly into neighbouring paper.
func RenderLCD(fb *Framebuffer, scale int) image.Image {
	if scale < 1 {
		scale = 1
	}
	gridPaper := darken(lcdPaper, 0.04)
	gridInk := darken(lcdInk, 0.02)
	bleed := rgbMix(lcdPaper, lcdInk, 0.15)

	dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
	for sy, dy := 0, 0; sy < fb.Height; sy, dy = sy+1, dy+scale {
		for sx, dx := 0, 0; sx < fb.Width; sx, dx = sx+1, dx+scale {
			white := fb.Bit(sx, sy)
			leftInk := sx > 0 && !fb.Bit(sx-1, sy)

			for i := 0; i < scale*scale; i++ {
				ix, iy := i%scale, i/scale
				var co color.Color
				switch {
				case !white:
					co = lcdInk
				case leftInk && ix == 0 && scale > 2:
					co = bleed
				default:
					co = lcdPaper
				}

				if scale > 2 && (ix == scale-1 || iy == scale-1) {
					if white {
						co = gridPaper
					} else {
						co = gridInk
					}
				}

				dst.Set(dx+ix, dy+iy, co)
			}
		}
	}
	return dst
}
