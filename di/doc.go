// Package di provides small, explicit wiring helpers for the labs.
//
// It supports two approaches side by side:
//
//   - Bean[T] + Injector[T]: explicit wiring that records every reference it binds
//     (Ref for bean-to-bean references, Value for literals). Use it when a test or a
//     tool needs to ask what was wired into what, and when wiring mistakes should be
//     reported as typed errors (duplicate keys, nil beans, nil bind functions).
//
//   - Plain[T]: a construction-only holder with no tracking and no validation.
//     Collaborators are passed to constructors or assigned directly.
//
// Literal values (database labels, server hosts, greeting names) come from a
// PropertySource: MapProperties for tests and small programs, ViperProperties
// when the values live in a config file or the environment.
//
// Neither approach resolves a graph on its own. Wiring stays in the composition
// root (main, a Wire function, or an fx module) where it can be read top to bottom.
//
// Import
//
//	"github.com/sghaida/dilab/di"
package di
