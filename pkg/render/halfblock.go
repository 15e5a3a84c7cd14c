package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// halfBlock 上半块字符：前景色为上方像素，背景色为下方像素
const halfBlock = "▀"

// HalfBlock 将图像转换为终端字符画
//
// 每个字符单元对应图像中纵向相邻的两个像素，因此输出行数为图像高度的一半（向上取整）。
// 完全透明的像素使用 background（为 nil 时使用终端默认背景）。
func HalfBlock(img image.Image, background color.Color) string {
	bounds := img.Bounds()
	var b strings.Builder

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		if y > bounds.Min.Y {
			b.WriteByte('\n')
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := pixelHex(img.At(x, y), background)
			bottom := ""
			if y+1 < bounds.Max.Y {
				bottom = pixelHex(img.At(x, y+1), background)
			} else if background != nil {
				bottom = hexOf(background)
			}
			b.WriteString(cellStyle(top, bottom).Render(halfBlock))
		}
	}
	return b.String()
}

// HalfBlockRows 返回图像高度对应的字符行数
func HalfBlockRows(height int) int {
	return (height + 1) / 2
}

func cellStyle(top, bottom string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if top != "" {
		style = style.Foreground(lipgloss.Color(top))
	}
	if bottom != "" {
		style = style.Background(lipgloss.Color(bottom))
	}
	return style
}

// pixelHex 返回像素颜色的十六进制表示，半透明像素与背景混合
func pixelHex(c color.Color, background color.Color) string {
	_, _, _, a := c.RGBA()
	if a == 0 {
		if background == nil {
			return ""
		}
		return hexOf(background)
	}
	px, _ := colorful.MakeColor(c)
	if a < 0xffff && background != nil {
		bg, ok := colorful.MakeColor(background)
		if ok {
			px = bg.BlendRgb(px, float64(a)/0xffff)
		}
	}
	return px.Hex()
}

func hexOf(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cf.Hex()
}
