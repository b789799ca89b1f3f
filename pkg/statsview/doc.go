// Package statsview serves live runtime statistics (heap, goroutines, GC
// pauses) of the emulator over HTTP. It is only built with the statsview
// build tag; otherwise Launch is a no-op and Available reports false.
package statsview
