package game

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// HUD palette.
var (
	colText   = RGB{R: 235, G: 235, B: 235}
	colDim    = RGB{R: 140, G: 140, B: 150}
	colAccent = RGB{R: 255, G: 214, B: 64}
	colAlert  = RGB{R: 235, G: 80, B: 70}
	colOK     = RGB{R: 110, G: 220, B: 120}
)

// DrawChar queues one character as a textured quad in playfield units.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col RGB) {
	if ch < 32 || ch > 126 {
		return
	}
	idx := int(ch) - 32
	column := idx % FontCols
	row := idx / FontCols

	u0 := float32(column*FontCellW) / float32(FontAtlasW)
	v0 := float32(row*FontCellH) / float32(FontAtlasH)
	u1 := float32(column*FontCellW+5) / float32(FontAtlasW)
	v1 := float32(row*FontCellH+7) / float32(FontAtlasH)

	w := 5 * scale
	h := 7 * scale

	cr := float32(col.R) / 255.0
	cg := float32(col.G) / 255.0
	cb := float32(col.B) / 255.0

	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx+w, sy+h, u1, v1, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
	)
}

// DrawString queues a string at playfield position (sx, sy).
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col RGB) {
	advance := float32(FontCellW) * scale
	lineAdvance := float32(FontCellH) * scale
	baseX := float32(sx)
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// TextWidth returns the width of a string in playfield units.
func TextWidth(text string, scale float32) int {
	lineLen := 0
	maxLineLen := 0
	for _, ch := range text {
		if ch == '\n' {
			if lineLen > maxLineLen {
				maxLineLen = lineLen
			}
			lineLen = 0
			continue
		}
		lineLen++
	}
	if lineLen > maxLineLen {
		maxLineLen = lineLen
	}
	return int(float32(maxLineLen*FontCellW) * scale)
}

// centered queues a horizontally centred string.
func (r *Renderer) centered(text string, y int, scale float32, col RGB) {
	r.DrawString(text, (PlayfieldW-TextWidth(text, scale))/2, y, scale, col)
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	gl.Uniform2f(r.textURes, PlayfieldW, PlayfieldH)

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / textStride
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}

// hudState is what the host passes the UI beyond the frame snapshot.
type hudState struct {
	micActive bool
	micError  string
	threshold float64
	volume    float64
	proSpeed  float64
	selected  int
	spectrum  []byte
}

// RenderHUD draws the in-run overlay: timer, onset counter, volume meter.
func (r *Renderer) RenderHUD(f Frame, hud hudState) {
	r.DrawString(fmt.Sprintf("TIME %3.0f", f.TimeLeft), 16, 12, 2, colText)

	col := colAlert
	if f.Sounds >= f.Required {
		col = colOK
	}
	s := fmt.Sprintf("SOUNDS %d/%d", f.Sounds, f.Required)
	r.DrawString(s, PlayfieldW-16-TextWidth(s, 2), 12, 2, col)

	r.drawVolumeMeter(16, 34, hud.volume, hud.threshold)
}

// drawVolumeMeter draws the live level bar with a threshold marker.
func (r *Renderer) drawVolumeMeter(x, y int, volume, threshold float64) {
	const meterW, meterH = 160.0, 8.0
	fx, fy := float32(x), float32(y)
	r.DrawRect(fx, fy, meterW, meterH, RGB{R: 40, G: 40, B: 48}, 0.9)

	fill := float32(clampF(volume/255, 0, 1)) * meterW
	col := colDim
	if volume > threshold {
		col = colOK
	}
	r.DrawRect(fx, fy, fill, meterH, col, 1)

	// Threshold notch.
	tx := fx + float32(clampF(threshold/255, 0, 1))*meterW
	r.DrawRect(tx, fy-2, 2, meterH+4, colAccent, 1)
}

// RenderMenu draws the level list and microphone status.
func (r *Renderer) RenderMenu(hud hudState) {
	r.centered("NOTE JUMP", 36, 4, colAccent)
	r.centered("MAKE A SOUND TO JUMP. HOLD IT TO HOVER.", 76, 1, colDim)

	y := 110
	for i, lv := range Levels() {
		col := colText
		prefix := "  "
		if i == hud.selected {
			col = colAccent
			prefix = "> "
		}
		name := lv.Name
		if lv.Pro {
			name += " (PRO)"
		}
		r.DrawString(fmt.Sprintf("%s%-14s %3.0f BPM %4.0fS %3d SOUNDS", prefix, name, lv.BPM, lv.Duration, lv.RequiredSounds), 180, y, 2, col)
		y += 26
	}

	sel := GetLevelConfig(hud.selected + 1)
	r.centered(sel.Description, y+10, 1, colDim)

	if hud.micActive {
		r.DrawString("MIC ON", 16, PlayfieldH-56, 2, colOK)
		r.drawVolumeMeter(16, PlayfieldH-32, hud.volume, hud.threshold)
		r.drawSpectrum(200, PlayfieldH-32, hud.spectrum)
	} else {
		r.DrawString("MIC OFF - PRESS M", 16, PlayfieldH-56, 2, colAlert)
		if hud.micError != "" {
			r.DrawString(hud.micError, 16, PlayfieldH-32, 1, colAlert)
		}
	}

	help := "UP/DOWN LEVEL  ENTER START  M MIC  -/+ THRESHOLD"
	if sel.Pro {
		help += fmt.Sprintf("  </> SPEED %.2f", hud.proSpeed)
	}
	r.DrawString(help, PlayfieldW-16-TextWidth(help, 1), PlayfieldH-20, 1, colDim)
}

// drawSpectrum draws the live magnitude bins as a thin bar strip.
func (r *Renderer) drawSpectrum(x, y int, bins []byte) {
	if len(bins) == 0 {
		return
	}
	const barW, maxH = 2.0, 24.0
	for i, v := range bins {
		h := float32(v) / 255 * maxH
		if h < 1 {
			continue
		}
		bx := float32(x) + float32(i)*barW
		r.DrawRect(bx, float32(y)+8-h, barW-1, h, colOK, 0.8)
	}
}

// RenderGameOver draws the failure screen over the final frame.
func (r *Renderer) RenderGameOver(f Frame) {
	r.DrawRect(0, 0, PlayfieldW, PlayfieldH, RGB{R: 10, G: 8, B: 12}, 0.65)
	r.centered("GAME OVER", 140, 5, colAlert)
	r.centered(fmt.Sprintf("SOUNDS %d/%d", f.Sounds, f.Required), 200, 2, colText)
	r.centered("R RETRY   ENTER MENU", 240, 2, colDim)
}

// RenderWin draws the victory screen over the final frame.
func (r *Renderer) RenderWin(f Frame) {
	r.DrawRect(0, 0, PlayfieldW, PlayfieldH, RGB{R: 8, G: 12, B: 8}, 0.65)
	r.centered("LEVEL CLEAR!", 140, 5, colOK)
	r.centered(fmt.Sprintf("SOUNDS %d/%d", f.Sounds, f.Required), 200, 2, colText)
	r.centered("ENTER MENU", 240, 2, colDim)
}
