package signal

// Signal makes the state of the transcription job visible somewhere outside of
// this application.
type Signal interface {
	// Ensure brings the signal into the state of the given Context. It is
	// called on every change and periodically.
	Ensure(Context) error
	// Update refreshes everything the signal discovered at initialization.
	Update() error
	Dispose() error

	GetType() Type
}
