/*
Package playback replays a set of recorded search traces in lockstep.

An Engine owns one global step cursor. Each algorithm's local cursor is the
global cursor clamped to that algorithm's last step, so runs that finished
early hold their terminal frame while longer runs keep animating.

The status machine is Idle -> Playing -> Paused -> Playing ..., with Reset
returning to Idle from any state. Reaching the last step while playing
pauses the engine; scrubbing stays possible afterwards.

Ticks come from a Ticker created per Play call. Every Play runs its own loop
goroutine tagged with a generation number; Pause, Reset and Close bump the
generation, so a tick already in flight can never move the cursor after
cancellation. ManualClock drives the loop deterministically in tests.

Renderers receive a Frame with one PanelFrame per algorithm. Draw calls are
serialised and a frame older than the last drawn one is skipped.
*/
package playback
