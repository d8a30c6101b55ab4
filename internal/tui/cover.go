package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalf is drawn with the upper pixel as foreground and the lower pixel
// as background, so one cell shows two pixels.
const upperHalf = "▀"

// RenderHalfBlocks draws img with one terminal cell per two vertical pixels.
func RenderHalfBlocks(img image.Image) string {
	bounds := img.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img.At(x, y)))
			if y+1 < bounds.Max.Y {
				style = style.Background(hexColor(img.At(x, y+1)))
			}
			b.WriteString(style.Render(upperHalf))
		}
	}
	return b.String()
}

// placeholderCover fills a width x rows box for albums without art.
func placeholderCover(width, rows int) string {
	line := strings.Repeat("░", width)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return dimStyle.Render(strings.Join(lines, "\n"))
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
