// Package control connects host-facing parameters to an equalizer.
//
// A [Registry] holds the seven automatable parameters with their ranges,
// steps and display labels. A [Controller] watches the registry and, at a
// fixed rate, pushes a consistent [eq.Params] snapshot to an [Updater] such
// as *eq.Processor. Only the controller's goroutine ever recomputes
// coefficients; parameter writes from hosts or UIs just flip a flag.
package control
