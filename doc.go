// Package dilab collects small labs on explicit dependency wiring in Go.
//
// Each lab keeps its business logic trivial so the wiring is what stands out:
//
//   - examples/order: setter injection, plus declarative YAML definitions
//     decoded into typed structs and wired by hand (order.Wire)
//   - examples/notification: constructor injection and a configuration
//     driven factory (notification.NewManagerFromConfig)
//   - examples/user: struct-tag wiring through fx parameter structs
//   - examples/hello: setter vs constructor vs property driven wiring
//
// There is no reflection based container of our own. Graphs are built in a
// composition root with plain calls, with the helpers in package di, with
// builders generated by cmd/facadegen, or with fx modules.
//
// See also:
//   - di: beans, injectors and property sources
//   - config, logging: the ambient stack used by cmd/dilab
//   - cmd/facadegen: the builder generator
//   - cmd/dilab: the CLI that runs every lab
package dilab
