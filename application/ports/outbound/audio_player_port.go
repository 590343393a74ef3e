package outbound

// AudioHandle is one playable piece of audio. At most one handle may be
// active per playback session; the session must release the previous
// handle before a new synthesis produces the next one.
type AudioHandle interface {
	// Pause halts playback without releasing the underlying resource.
	Pause()
	// Rewind resets the playback position to the start.
	Rewind()
	// Release frees the underlying resource. The handle must not be
	// used afterwards.
	Release()
	// Done is closed after playback finishes, delivering nil on natural
	// completion and an error on playback failure. Pausing a handle
	// also completes it.
	Done() <-chan error
}

type AudioPlayerPort interface {
	Play(audio []byte) (AudioHandle, error)
}
