// Package templates renders public campaign landing pages from Liquid
// templates. The engine is sandboxed: templates get output expressions,
// control flow, and a fixed filter set, never host code or I/O.
package templates

import (
	"github.com/osteele/liquid"
)

// newEngine builds a Liquid engine with the campaign filter set registered.
// Engines are cheap to construct and carry no per-render state, so every
// render and validation gets a fresh one.
func newEngine() *liquid.Engine {
	engine := liquid.NewEngine()
	registerFilters(engine)
	return engine
}
