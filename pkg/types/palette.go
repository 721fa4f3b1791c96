package types

import "image/color"

// 调色板常量
// 与关卡格式中的 PaletteVersion 对应，修改色值不影响存档，
// 但调整颜色语义（如新增颜色）时必须提升 PaletteVersion
var (
	PaletteRed     = color.RGBA{R: 0xe3, G: 0x42, B: 0x62, A: 0xff}
	PaletteDarkRed = color.RGBA{R: 0x94, G: 0x35, B: 0x3d, A: 0xff}
	PaletteOrange  = color.RGBA{R: 0xd4, G: 0x6e, B: 0x33, A: 0xff}
	PaletteYellow  = color.RGBA{R: 0xf2, G: 0xb6, B: 0x3d, A: 0xff}
	PaletteLime    = color.RGBA{R: 0xb4, G: 0xba, B: 0x47, A: 0xff}
	PaletteGreen   = color.RGBA{R: 0x6d, G: 0x8c, B: 0x32, A: 0xff}
	PaletteCyan    = color.RGBA{R: 0x45, G: 0x7c, B: 0xd6, A: 0xff}
	PaletteBlue    = color.RGBA{R: 0x4b, G: 0x3b, B: 0x9c, A: 0xff}

	PaletteTan   = color.RGBA{R: 0xd1, G: 0xb4, B: 0x8c, A: 0xff}
	PaletteBrown = color.RGBA{R: 0x9c, G: 0x65, B: 0x6c, A: 0xff}
	PaletteGray  = color.RGBA{R: 0x57, G: 0x25, B: 0x3b, A: 0xff}
	PaletteBlack = color.RGBA{R: 0x2c, G: 0x1b, B: 0x2e, A: 0xff}
	PaletteWhite = color.RGBA{R: 0xff, G: 0xf4, B: 0xe0, A: 0xff}
)

// ColorPair 返回颜色的前景色和背景色
//
// 前景色用于藤蔓节点和观察者边框，背景色用于节点之间的连接桥。
// ColorNone 和未知颜色统一使用 tan/brown。
func ColorPair(c Color) (fg, bg color.RGBA) {
	switch c {
	case ColorGreen:
		return PaletteLime, PaletteGreen
	case ColorYellow:
		return PaletteYellow, PaletteOrange
	case ColorBlue:
		return PaletteCyan, PaletteBlue
	case ColorRed:
		return PaletteRed, PaletteDarkRed
	default:
		return PaletteTan, PaletteBrown
	}
}
