// Package form binds raw values to a schema and coordinates validation and
// submission. A Coordinator owns one State; every edit goes through
// Coordinator.Set, every submit runs the registered input components over
// the declarations in order and hands the resolved values to a Submitter
// only when no field reports an error.
package form
