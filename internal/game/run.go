package game

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"notejump/internal/onset"
)

// frameHost implements Scheduler on top of the GLFW loop: callbacks queued
// during a frame run exactly once on the next loop iteration, so at most
// one update is ever in flight.
type frameHost struct {
	next    []func()
	pending []func()
}

func (h *frameHost) RequestFrame(fn func()) {
	h.next = append(h.next, fn)
}

func (h *frameHost) drain() {
	h.pending, h.next = h.next, h.pending[:0]
	for _, fn := range h.pending {
		fn()
	}
}

// RunDesktop owns the window, the detector, and the frame loop. It blocks
// until the window closes.
func RunDesktop(cfg Settings, seed uint64) error {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}
	SetSFXVolume(cfg.SFXVolume)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(
		float32(colSky.R)/255.0,
		float32(colSky.G)/255.0,
		float32(colSky.B)/255.0,
		1.0,
	)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	det := onset.NewDetector()
	det.SetThreshold(cfg.Threshold)
	defer det.Stop()

	g := New(det, seed)
	g.SetProSpeed(cfg.ProSpeed)

	host := &frameHost{}
	input := NewInput()

	selected := 0
	micErr := ""
	spectrum := make([]byte, onset.BinCount)

	for !window.ShouldClose() {
		glfw.PollEvents()

		// Threshold tuning works in every state; takes effect next poll. The
		// detector holds the value, the loop never shadows it.
		if input.JustPressed(window, glfw.KeyMinus) {
			det.SetThreshold(clampF(det.Threshold()-5, 5, 100))
		}
		if input.JustPressed(window, glfw.KeyEqual) {
			det.SetThreshold(clampF(det.Threshold()+5, 5, 100))
		}

		switch g.State {
		case StateMenu:
			if input.JustPressed(window, glfw.KeyEscape) {
				window.SetShouldClose(true)
				continue
			}
			if input.JustPressed(window, glfw.KeyUp) && selected > 0 {
				selected--
				PlaySound(SoundMenuSelect)
			}
			if input.JustPressed(window, glfw.KeyDown) && selected < len(Levels())-1 {
				selected++
				PlaySound(SoundMenuSelect)
			}
			if input.JustPressed(window, glfw.KeyComma) {
				g.SetProSpeed(g.ProSpeed() - 0.25)
			}
			if input.JustPressed(window, glfw.KeyPeriod) {
				g.SetProSpeed(g.ProSpeed() + 0.25)
			}
			if input.JustPressed(window, glfw.KeyM) {
				if det.Active() {
					det.Stop()
				} else if err := det.Start(); err != nil {
					// Surfaced in the menu; the user may re-attempt with M.
					micErr = "MIC UNAVAILABLE - CHECK INPUT DEVICE"
					fmt.Fprintf(os.Stderr, "mic start: %v\n", err)
				} else {
					micErr = ""
				}
			}
			if input.JustPressed(window, glfw.KeyEnter) || input.JustPressed(window, glfw.KeySpace) {
				err := g.Start(GetLevelConfig(selected + 1))
				switch {
				case errors.Is(err, ErrNoSession):
					micErr = "START THE MIC FIRST - PRESS M"
				case err == nil:
					PlaySound(SoundMenuSelect)
					g.Run(host)
				}
			}

		case StatePlaying:
			// Leaving a run stops the frame stream; the mic session stays up.
			if input.JustPressed(window, glfw.KeyEscape) {
				g.ToMenu()
			}

		case StateGameOver:
			if input.JustPressed(window, glfw.KeyR) {
				if err := g.Retry(); err == nil {
					g.Run(host)
				}
			}
			if input.JustPressed(window, glfw.KeyEnter) {
				g.ToMenu()
			}
			if input.JustPressed(window, glfw.KeyEscape) {
				g.ToMenu()
			}

		case StateWin:
			if input.JustPressed(window, glfw.KeyEnter) || input.JustPressed(window, glfw.KeyEscape) {
				g.ToMenu()
			}
		}

		host.drain()

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		rend.BeginFrame(fbW, fbH)
		f := g.Frame()
		hud := hudState{
			micActive: det.Active(),
			micError:  micErr,
			threshold: det.Threshold(),
			proSpeed:  g.ProSpeed(),
			selected:  selected,
		}

		switch g.State {
		case StateMenu:
			hud.volume = det.Volume()
			hud.spectrum = spectrum[:det.Levels(spectrum)]
			rend.RenderMenu(hud)
		case StatePlaying:
			hud.volume = f.Volume
			rend.RenderScene(f)
			rend.RenderHUD(f, hud)
		case StateGameOver:
			rend.RenderScene(f)
			rend.RenderGameOver(f)
		case StateWin:
			rend.RenderScene(f)
			rend.RenderWin(f)
		}

		rend.FlushRects(fbW, fbH)
		rend.FlushGlows(fbW, fbH)
		rend.FlushText(fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}
