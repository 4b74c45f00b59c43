// Package runtimevalue classifies raw input values into one of three kinds:
// a fixed literal known at definition time, a runtime input placeholder that
// is supplied at execution time, or an expression resolved by the pipeline
// engine later on.
//
// Classification is a pure function of the raw value, the declared primitive
// type and the resolver configuration, so callers can re-run it on every edit.
package runtimevalue
