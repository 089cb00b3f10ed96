// Package session runs one dots visualization instance.
//
// A [Session] owns the palette, the dot generator, the scene and the
// repaint timer. All of them are touched only by the goroutine executing
// [Session.Run]; the public methods hand closures to that goroutine and wait
// for them, so generate+reconcile cycles never overlap.
//
// # Lifecycle
//
//	Idle     constructed, Run not called yet
//	Loading  palette fetch in flight
//	Running  repainting every Interval
//	Stopped  timer cancelled, last frame kept
//	Failed   palette fetch failed, nothing is ever painted
//
// The fetch is started by Run. When it succeeds the session paints at once
// and re-arms a one-shot timer after every cycle. Calling Stop while the
// fetch is in flight, or before Run, keeps the session from starting on its
// own. Until Run is called the other commands return [ErrNotLoaded] and
// Snapshot reports an empty Idle frame.
package session
