// Package render projects a form's field descriptors into output formats.
// Renderers register by name; Build snapshots a coordinator into the Form
// value every renderer consumes.
package render
