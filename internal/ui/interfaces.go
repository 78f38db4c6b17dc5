package ui

import "github.com/Cyclone1070/bioview/internal/app"

// Dispatcher is the application surface the UI drives: named actions out,
// events back in.
type Dispatcher interface {
	app.Runner
	Events() <-chan app.Event
}
