package keymap

// Binding maps keys to an action.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
}

// Default contains the viewer's key bindings, in help order.
var Default = []Binding{
	{ActionPlayPause, []string{" "}, "Play/pause"},
	{ActionSeekBack, []string{"h", "left"}, "Seek -5s"},
	{ActionSeekForward, []string{"l", "right"}, "Seek +5s"},
	{ActionPrevCue, []string{"["}, "Previous cue"},
	{ActionNextCue, []string{"]"}, "Next cue"},
	{ActionRestart, []string{"g", "home"}, "Back to start"},
	{ActionQuit, []string{"q", "esc", "ctrl+c"}, "Quit"},
}
