package game

// Player is the single jumping body. Y is the top edge in playfield units;
// positive VY points down.
type Player struct {
	Y        float64
	VY       float64
	Jumping  bool
	HoverFor float64 // seconds of hover lift consumed since the last onset
}

func NewPlayer() Player {
	return Player{Y: GroundY - PlayerH}
}

// Jump applies the fixed impulse and re-arms the hover budget. Called on
// every detected onset, including mid-air.
func (p *Player) Jump() {
	p.VY = JumpImpulse
	p.Jumping = true
	p.HoverFor = 0
}

// Step advances one fixed tick. While a note is still sounding after a jump
// and the hover budget isn't spent, descent is capped at HoverMaxFall after
// gravity is applied. The accumulated velocity is never re-zeroed; the cap
// and Gravity together define the felt arc.
func (p *Player) Step(sounding bool) {
	p.VY += Gravity
	if sounding && p.Jumping && p.HoverFor < HoverBudget {
		if p.VY > HoverMaxFall {
			p.VY = HoverMaxFall
		}
		p.HoverFor += TickSeconds
	}

	p.Y += p.VY

	// Ground contact ends the jump; the ceiling only kills velocity.
	if p.Y >= GroundY-PlayerH {
		p.Y = GroundY - PlayerH
		p.VY = 0
		p.Jumping = false
	}
	if p.Y < 0 {
		p.Y = 0
		p.VY = 0
	}
}

// Hovering reports whether hover lift would still apply given sound.
func (p *Player) Hovering() bool {
	return p.Jumping && p.HoverFor < HoverBudget
}

// Bounds returns the player's AABB (x, y, w, h).
func (p *Player) Bounds() (x, y, w, h float64) {
	return PlayerX, p.Y, PlayerW, PlayerH
}
