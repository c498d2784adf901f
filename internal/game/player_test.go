package game

import "testing"

func TestJumpImpulse(t *testing.T) {
	p := NewPlayer()
	p.HoverFor = 1.5 // pretend a previous hover is in progress
	p.Jump()

	if p.VY != JumpImpulse {
		t.Fatalf("VY = %v, want %v", p.VY, JumpImpulse)
	}
	if !p.Jumping {
		t.Fatal("Jump did not set Jumping")
	}
	if p.HoverFor != 0 {
		t.Fatalf("Jump did not re-arm hover budget: HoverFor = %v", p.HoverFor)
	}
}

func TestGroundClampIdempotence(t *testing.T) {
	p := NewPlayer()
	rest := GroundY - PlayerH

	// Integrating downward from rest must never drive the body below the
	// ground line, and contact keeps velocity at zero.
	for i := 0; i < 600; i++ {
		p.Step(false)
		if p.Y > rest {
			t.Fatalf("frame %d: Y = %v below ground rest %v", i, p.Y, rest)
		}
		if p.Y == rest && p.VY != 0 {
			t.Fatalf("frame %d: grounded with VY = %v, want 0", i, p.VY)
		}
		if p.Jumping {
			t.Fatalf("frame %d: grounded body reports Jumping", i)
		}
	}
}

func TestHoverPhysics(t *testing.T) {
	tests := []struct {
		name     string
		player   Player
		sounding bool
		wantVY   float64
	}{
		{
			name:     "hover caps descent after gravity",
			player:   Player{Y: 100, VY: 5, Jumping: true, HoverFor: 0},
			sounding: true,
			wantVY:   HoverMaxFall,
		},
		{
			name: "hover leaves rising velocity alone",
			// Accumulated gravity is not re-zeroed; only the downward cap
			// applies.
			player:   Player{Y: 100, VY: -6, Jumping: true, HoverFor: 0},
			sounding: true,
			wantVY:   -6 + Gravity,
		},
		{
			name:     "exhausted budget restores full gravity despite sound",
			player:   Player{Y: 100, VY: HoverMaxFall, Jumping: true, HoverFor: HoverBudget},
			sounding: true,
			wantVY:   HoverMaxFall + Gravity,
		},
		{
			name:     "silence restores full gravity",
			player:   Player{Y: 100, VY: HoverMaxFall, Jumping: true, HoverFor: 0},
			sounding: false,
			wantVY:   HoverMaxFall + Gravity,
		},
		{
			name:     "sound without a jump does not hover",
			player:   Player{Y: 100, VY: 2, Jumping: false, HoverFor: 0},
			sounding: true,
			wantVY:   2 + Gravity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.player
			p.Step(tc.sounding)
			if p.VY != tc.wantVY {
				t.Fatalf("VY = %v, want %v", p.VY, tc.wantVY)
			}
		})
	}
}

func TestHoverBudgetAccumulates(t *testing.T) {
	p := Player{Y: 50, VY: 0, Jumping: true}

	// Hold a note with the body airborne: the budget drains by one tick per
	// hover frame and then stops mattering.
	frames := int(HoverBudget/TickSeconds) + 10
	for i := 0; i < frames; i++ {
		before := p.HoverFor
		p.Step(true)
		if before < HoverBudget && p.HoverFor <= before {
			t.Fatalf("frame %d: hover timer did not accumulate (%v -> %v)", i, before, p.HoverFor)
		}
		if p.Y >= GroundY-PlayerH {
			t.Fatalf("frame %d: landed mid-test, raise the start height", i)
		}
	}
	if p.Hovering() {
		t.Fatal("Hovering() still true after the budget is spent")
	}
	if p.VY <= HoverMaxFall {
		t.Fatalf("VY = %v after budget exhausted, want gravity past the hover cap", p.VY)
	}
}

func TestCeilingClampKeepsJump(t *testing.T) {
	p := Player{Y: 0.5, VY: -5, Jumping: true}
	p.Step(false)

	if p.Y != 0 {
		t.Fatalf("Y = %v, want clamped to 0", p.Y)
	}
	if p.VY != 0 {
		t.Fatalf("VY = %v, want 0 after ceiling contact", p.VY)
	}
	// Only ground contact ends a jump.
	if !p.Jumping {
		t.Fatal("ceiling contact cleared Jumping")
	}
}
