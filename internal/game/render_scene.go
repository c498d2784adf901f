package game

// Scene palette.
var (
	colSky     = RGB{R: 24, G: 26, B: 38}
	colGround  = RGB{R: 52, G: 44, B: 56}
	colGrass   = RGB{R: 90, G: 170, B: 96}
	colBody    = RGB{R: 255, G: 120, B: 90}
	colEye     = RGB{R: 250, G: 250, B: 250}
	colPipe    = RGB{R: 70, G: 160, B: 86}
	colPipeLip = RGB{R: 94, G: 196, B: 110}
	colCrate   = RGB{R: 172, G: 128, B: 72}
	colCrateX  = RGB{R: 128, G: 92, B: 50}
	colPlant   = RGB{R: 220, G: 90, B: 110}
)

// RenderScene draws the playfield from a frame snapshot: backdrop, ground,
// obstacles in slice order, then the player.
func (r *Renderer) RenderScene(f Frame) {
	r.DrawRect(0, 0, PlayfieldW, PlayfieldH, colSky, 1)
	r.DrawRect(0, GroundY, PlayfieldW, PlayfieldH-GroundY, colGround, 1)
	r.DrawRect(0, GroundY, PlayfieldW, 4, colGrass, 1)

	for _, o := range f.Obstacles {
		r.drawObstacle(o)
	}

	r.drawPlayer(f)
}

func (r *Renderer) drawPlayer(f Frame) {
	x := float32(PlayerX)
	y := float32(f.PlayerY)

	if f.HoverGlow {
		r.DrawGlow(x+PlayerW/2, y+PlayerH/2, PlayerW*2.4, 0.55, 0.42, 0.12)
	}

	r.DrawRect(x, y, PlayerW, PlayerH, colBody, 1)
	// Eye looks toward the incoming obstacles.
	r.DrawRect(x+PlayerW-14, y+8, 8, 8, colEye, 1)
	r.DrawRect(x+PlayerW-10, y+10, 4, 4, RGB{R: 20, G: 20, B: 26}, 1)
}

// drawObstacle dispatches on the obstacle kind once, mirroring Bounds.
func (r *Renderer) drawObstacle(o Obstacle) {
	x, y, w, h := o.Bounds()
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)

	switch o.Kind {
	case KindPipe:
		r.DrawRect(fx, fy, fw, fh, colPipe, 1)
		r.DrawRect(fx-3, fy, fw+6, 10, colPipeLip, 1)

	case KindCrate:
		r.DrawRect(fx, fy, fw, fh, colCrate, 1)
		// Cross braces.
		r.DrawRect(fx, fy, fw, 3, colCrateX, 1)
		r.DrawRect(fx, fy+fh-3, fw, 3, colCrateX, 1)
		r.DrawRect(fx, fy+fh/2-2, fw, 3, colCrateX, 1)
		r.DrawRect(fx+fw/2-2, fy, 3, fh, colCrateX, 1)

	case KindPlantPipe:
		// Pipe body with the plant poking out above the lip.
		stemTop := fy + (fh - PipeH)
		r.DrawRect(fx, stemTop, fw, PipeH, colPipe, 1)
		r.DrawRect(fx-3, stemTop, fw+6, 10, colPipeLip, 1)
		r.DrawRect(fx+fw/2-5, fy, 10, fh-PipeH+6, colPlant, 1)
		r.DrawRect(fx+fw/2-11, fy+6, 8, 8, colPlant, 1)
		r.DrawRect(fx+fw/2+3, fy+6, 8, 8, colPlant, 1)
	}
}
