package scenes

import (
	"image/color"

	"github.com/decker502/grow/pkg/config"
	"github.com/decker502/grow/pkg/types"
	"github.com/decker502/grow/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Draw 绘制棋盘和 HUD
func (s *GameScene) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	screen.Fill(types.PaletteBlack)

	tr := s.boardTransform()
	tr.OffsetX += s.boardShakeOffset()

	shapes, labels := BoardShapes(s.state.Grid(), s.state.Watchers())
	for _, sh := range shapes {
		drawShape(screen, tr, sh, s.shapeAlpha(sh))
	}
	s.drawLabels(screen, tr, labels)
	s.drawHUD(screen)
}

// shapeAlpha 完成后观察者闪烁一次
func (s *GameScene) shapeAlpha(sh Shape) float64 {
	if s.pulse == nil || !sh.watcher {
		return 1
	}
	return 1 - 0.5*utils.Pulse(s.pulseProgress)
}

// drawShape 把以格子为单位的图形乘以缩放后绘制
func drawShape(screen *ebiten.Image, tr utils.BoardTransform, sh Shape, alpha float64) {
	clr := withAlpha(sh.Color, alpha)
	x, y := tr.GridToScreen(sh.X, sh.Y)
	w, h := sh.W*tr.Scale, sh.H*tr.Scale
	r := sh.Radius * tr.Scale

	switch sh.Kind {
	case ShapeDisc:
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(sh.W*tr.Scale), clr, true)
	case ShapeRect:
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, true)
	case ShapeRoundRect:
		fillRoundRect(screen, float32(x), float32(y), float32(w), float32(h), float32(r), clr)
	case ShapeOutline:
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(r), clr, true)
	}
}

// fillRoundRect 用两个矩形和四个角上的圆拼出圆角矩形
func fillRoundRect(screen *ebiten.Image, x, y, w, h, r float32, clr color.Color) {
	if r*2 > w {
		r = w / 2
	}
	if r*2 > h {
		r = h / 2
	}
	vector.DrawFilledRect(screen, x+r, y, w-2*r, h, clr, true)
	vector.DrawFilledRect(screen, x, y+r, w, h-2*r, clr, true)
	vector.DrawFilledCircle(screen, x+r, y+r, r, clr, true)
	vector.DrawFilledCircle(screen, x+w-r, y+r, r, clr, true)
	vector.DrawFilledCircle(screen, x+r, y+h-r, r, clr, true)
	vector.DrawFilledCircle(screen, x+w-r, y+h-r, r, clr, true)
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha >= 1 {
		return c
	}
	// 预乘 alpha
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

func (s *GameScene) drawLabels(screen *ebiten.Image, tr utils.BoardTransform, labels []Label) {
	if s.services.Font == nil || len(labels) == 0 {
		return
	}
	face := &text.GoTextFace{Source: s.services.Font, Size: tr.Scale * config.WatcherLabelScale}
	for _, l := range labels {
		x, y := tr.GridToScreen(l.X, l.Y)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(l.Color)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, l.Text, face, op)
	}
}

// drawHUD 左上角关卡名称和提示，底部状态栏和临时消息
func (s *GameScene) drawHUD(screen *ebiten.Image) {
	if s.services.Font == nil {
		return
	}
	title := &text.GoTextFace{Source: s.services.Font, Size: config.TitleFontSize}
	body := &text.GoTextFace{Source: s.services.Font, Size: config.BodyFontSize}

	y := config.HUDMargin
	name := s.state.Name()
	if name == "" {
		name = s.levelID
	}
	drawText(screen, name, title, config.HUDMargin, y, types.PaletteWhite)
	y += config.TitleFontSize * config.LineSpacing

	for _, line := range utils.WrapText(s.state.Hint(), body, config.HintMaxWidth()) {
		if line == "" {
			continue
		}
		drawText(screen, line, body, config.HUDMargin, y, types.PaletteTan)
		y += config.BodyLineHeight()
	}

	bottom := float64(config.GameWindowHeight) - config.HUDMargin - config.BodyLineHeight()
	drawText(screen, s.statusLine(), body, config.HUDMargin, bottom, types.PaletteWhite)
	if s.message != "" {
		drawText(screen, s.message, body, config.HUDMargin, bottom-config.BodyLineHeight(), types.PaletteYellow)
	}
}

func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}
