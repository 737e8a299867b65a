// Package scope identifies the instrumentation library producing a piece
// of telemetry. Tracers, meters and loggers are all scoped handles.
package scope

type Scope struct {
	Name    string
	Version string
}
