package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// glOffset converts a byte offset to unsafe.Pointer for VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

const (
	maxRects     = 1024
	maxGlows     = 256
	maxTextQuads = 1024
	rectStride   = 6 // x, y, r, g, b, a
	glowStride   = 7 // x, y, size, r, g, b, a
	textStride   = 8 // x, y, u, v, r, g, b, a
)

// Renderer draws the whole game with three screen-space programs: solid
// rects, additive glow sprites, and font-atlas text. All coordinates are in
// playfield units; the viewport scales to the framebuffer.
type Renderer struct {
	rectProg uint32
	rectVAO  uint32
	rectVBO  uint32
	rectURes int32

	glowProg     uint32
	glowVAO      uint32
	glowVBO      uint32
	glowURes     int32
	glowUPxScale int32

	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	fontTex      uint32

	// Queued vertex data, flushed once per frame per program.
	rectBuf []float32
	glowBuf []float32
	textBuf []float32
}

func NewRenderer() (*Renderer, error) {
	rectProg, err := linkProgram(rectVertSrc, rectFragSrc)
	if err != nil {
		return nil, fmt.Errorf("rect program: %w", err)
	}
	glowProg, err := linkProgram(glowVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(rectProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	r := &Renderer{rectProg: rectProg, glowProg: glowProg}

	// Rect VAO/VBO: streaming triangles.
	var rVAO, rVBO uint32
	gl.GenVertexArrays(1, &rVAO)
	gl.GenBuffers(1, &rVBO)
	gl.BindVertexArray(rVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, rVBO)
	stride := int32(rectStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxRects*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, glOffset(2*4))
	r.rectVAO = rVAO
	r.rectVBO = rVBO

	gl.UseProgram(rectProg)
	r.rectURes = gl.GetUniformLocation(rectProg, gl.Str("uResolution\x00"))

	// Glow VAO/VBO: streaming point sprites.
	var gVAO, gVBO uint32
	gl.GenVertexArrays(1, &gVAO)
	gl.GenBuffers(1, &gVBO)
	gl.BindVertexArray(gVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, gVBO)
	stride = int32(glowStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxGlows*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	r.glowVAO = gVAO
	r.glowVBO = gVBO

	gl.UseProgram(glowProg)
	r.glowURes = gl.GetUniformLocation(glowProg, gl.Str("uResolution\x00"))
	r.glowUPxScale = gl.GetUniformLocation(glowProg, gl.Str("uPxScale\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.rectVBO, r.glowVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.rectVAO, r.glowVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.rectProg, r.glowProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// InitFont builds the baked glyph atlas, uploads it, and sets up the text
// pipeline.
func (r *Renderer) InitFont() error {
	img := buildFontAtlas()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(FontAtlasW), int32(FontAtlasH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	r.fontTex = tex

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(textStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxTextQuads*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	r.rectBuf = r.rectBuf[:0]
	r.glowBuf = r.glowBuf[:0]
	r.textBuf = r.textBuf[:0]
}

// DrawRect queues a solid rectangle in playfield units.
func (r *Renderer) DrawRect(x, y, w, h float32, col RGB, alpha float32) {
	cr := float32(col.R) / 255.0
	cg := float32(col.G) / 255.0
	cb := float32(col.B) / 255.0
	r.rectBuf = append(r.rectBuf,
		x, y, cr, cg, cb, alpha,
		x+w, y, cr, cg, cb, alpha,
		x, y+h, cr, cg, cb, alpha,
		x+w, y, cr, cg, cb, alpha,
		x+w, y+h, cr, cg, cb, alpha,
		x, y+h, cr, cg, cb, alpha,
	)
}

// DrawGlow queues an additive radial glow sprite centred at (x, y). The
// color components carry brightness pre-multiplied.
func (r *Renderer) DrawGlow(x, y, size, cr, cg, cb float32) {
	r.glowBuf = append(r.glowBuf, x, y, size, cr, cg, cb, 1)
}

// FlushRects draws all queued rectangles.
func (r *Renderer) FlushRects(fbW, fbH int) {
	if len(r.rectBuf) == 0 {
		return
	}
	gl.UseProgram(r.rectProg)
	gl.BindVertexArray(r.rectVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.rectVBO)
	gl.Uniform2f(r.rectURes, PlayfieldW, PlayfieldH)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.rectBuf) / rectStride
	gl.BufferData(gl.ARRAY_BUFFER, len(r.rectBuf)*4, gl.Ptr(r.rectBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	r.rectBuf = r.rectBuf[:0]
}

// FlushGlows draws all queued glow sprites with additive blending.
func (r *Renderer) FlushGlows(fbW, fbH int) {
	if len(r.glowBuf) == 0 {
		return
	}
	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.glowVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.glowVBO)
	gl.Uniform2f(r.glowURes, PlayfieldW, PlayfieldH)
	gl.Uniform1f(r.glowUPxScale, float32(fbW)/PlayfieldW)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)

	count := len(r.glowBuf) / glowStride
	gl.BufferData(gl.ARRAY_BUFFER, len(r.glowBuf)*4, gl.Ptr(r.glowBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
	r.glowBuf = r.glowBuf[:0]
}
