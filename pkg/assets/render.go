// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package assets

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas sizes for the fixed images
const (
	OGWidth   = 1200
	OGHeight  = 630
	LogoSize  = 512
	ogDelta   = 200
	logoRatio = 0.7
	iconPad   = 0.1
)

// ParseHex parses "#rgb" or "#rrggbb" into an opaque colour
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, errors.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// 🔺 fillTriangle rasterizes the triangle (top, bottomLeft, bottomRight) onto dst
func fillTriangle(dst draw.Image, top, left, right [2]float32, fill color.Color) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(top[0], top[1])
	r.LineTo(left[0], left[1])
	r.LineTo(right[0], right[1])
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(fill), image.Point{})
}

// Icon renders the delta triangle on a transparent square with 10% padding
func Icon(size int, fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float32(size)
	pad := s * iconPad
	fillTriangle(img,
		[2]float32{s / 2, pad},
		[2]float32{pad, s - pad},
		[2]float32{s - pad, s - pad},
		fill)
	return img
}

// Flatten composites src over an opaque background
func Flatten(src image.Image, bg color.Color) *image.RGBA {
	b := src.Bounds()
	img := image.NewRGBA(b)
	draw.Draw(img, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(img, b, src, b.Min, draw.Over)
	return img
}

// Logo renders the triangle at 70% of a white 512px canvas
func Logo(fill color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, LogoSize, LogoSize))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	side := float64(LogoSize) * logoRatio
	size := int(side)
	pad := (LogoSize - size) / 2
	fillTriangle(img,
		[2]float32{LogoSize / 2, float32(pad)},
		[2]float32{float32(pad), float32(pad + size)},
		[2]float32{float32(pad + size), float32(pad + size)},
		fill)
	return img
}

// OpenGraph renders the 1200x630 share image: triangle at the top, title and tagline below
func OpenGraph(title, tagline string, bg, fill, muted color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, OGWidth, OGHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	left := float32(OGWidth-ogDelta) / 2
	fillTriangle(img,
		[2]float32{OGWidth / 2, 0},
		[2]float32{left, ogDelta},
		[2]float32{left + ogDelta, ogDelta},
		fill)

	drawText(img, title, 350, 4, fill)
	drawText(img, tagline, 450, 2, muted)
	return img
}

// drawText renders s with the 7x13 bitmap face, scaled up and centred on (OGWidth/2, centerY)
func drawText(dst draw.Image, s string, centerY, scale int, col color.Color) {
	if s == "" {
		return
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	height := face.Height

	text := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  text,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	w, h := width*scale, height*scale
	x := (dst.Bounds().Dx() - w) / 2
	y := centerY - h/2
	xdraw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w, y+h), text, text.Bounds(), xdraw.Over, nil)
}
