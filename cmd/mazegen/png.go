package main

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/samdwyer/mazetokens/internal/maze"
)

const pngUnit = 4

var (
	pathColor  = color.NRGBA{R: 0xe8, G: 0x8a, B: 0x1a, A: 0xff}
	startColor = color.NRGBA{R: 0x2e, G: 0xb8, B: 0x4b, A: 0xff}
	endColor   = color.NRGBA{R: 0xd6, G: 0x2f, B: 0x2f, A: 0xff}
)

// mazeImage draws the maze in grayscale with the solution cells coloured.
func mazeImage(m *maze.SolvedMaze) (*image.NRGBA, error) {
	pixels, err := m.Image(pngUnit)
	if err != nil {
		return nil, err
	}
	img := imaging.New(len(pixels[0]), len(pixels), color.Black)
	for y, row := range pixels {
		for x, v := range row {
			// Map [-1, 1] onto [0, 255].
			g := uint8((v + 1) / 2 * 255)
			img.SetNRGBA(x, y, color.NRGBA{R: g, G: g, B: g, A: 0xff})
		}
	}

	fill := func(r, c int, col color.NRGBA) {
		top, left := r*pngUnit, c*pngUnit
		for y := top + 1; y < top+pngUnit; y++ {
			for x := left + 1; x < left+pngUnit; x++ {
				img.SetNRGBA(x, y, col)
			}
		}
	}
	for _, c := range m.Solution {
		fill(c.Row, c.Col, pathColor)
	}
	fill(m.End.Row, m.End.Col, endColor)
	fill(m.Start.Row, m.Start.Col, startColor)
	return img, nil
}

func writePNG(path string, m *maze.SolvedMaze, scale int) error {
	img, err := mazeImage(m)
	if err != nil {
		return err
	}
	if scale > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	}
	return errors.Wrapf(imaging.Save(img, path), "writing %q", path)
}
