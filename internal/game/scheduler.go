package game

// Scheduler hands the core a way to ask its host for the next frame
// invocation. The host guarantees callbacks never re-enter: a frame runs to
// completion before the request it queued can fire.
type Scheduler interface {
	RequestFrame(fn func())
}

// Run schedules the per-frame update against s. Each invocation performs
// exactly one fixed tick and re-requests itself only while the run is still
// playing, so leaving StatePlaying naturally stops the frame stream.
func (g *Game) Run(s Scheduler) {
	var tick func()
	tick = func() {
		g.Update()
		if g.State == StatePlaying {
			s.RequestFrame(tick)
		}
	}
	s.RequestFrame(tick)
}
