package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
)

type gifFrame = image.Paletted

const (
	cellW = 8
	cellH = 16
)

var errNoFrames = errors.New("viz: nothing recorded")

// capture rasterizes the canvas, one block of pixels per braille dot.
func capture(c *Canvas) *gifFrame {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), color.Palette{color.Black, color.White})
	dotW, dotH := cellW/2, cellH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			bits := int(c.Grid[row][col] - blank)
			if bits <= 0 {
				continue
			}
			baseX, baseY := col*cellW, row*cellH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if bits&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	return img
}

func saveGIF(path string, frames []*gifFrame) error {
	if len(frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
