package screeninterfaces

// Screen is a front-end that can put a notice in front of the listener.
type Screen interface {
	EmitMsg(string)
	Fini()
}

// Emit shows s on scr. Without a screen the notice is dropped.
func Emit(scr Screen, s string) {
	if scr == nil {
		return
	}
	scr.EmitMsg(s)
}

// Close releases scr.
func Close(scr Screen) {
	if scr == nil {
		return
	}
	scr.Fini()
}
