package app

// EventKind names something that happened outside a direct call.
type EventKind string

const (
	EventFileCreated EventKind = "file_created"
	EventFileSaved   EventKind = "file_saved"
	EventScanDone    EventKind = "scan_done"
)

// Event is delivered on Dispatcher.Events.
type Event struct {
	Kind  EventKind
	Path  string
	Files []string
	Err   error
}
