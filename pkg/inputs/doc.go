// Package inputs maps input type tags to components that render and validate
// runtime inputs.
//
// Components are data: the built-in set is a table of Variant values, each
// naming its primitive type, field kind, reference lookup and extra format
// check. A Registry resolves tags to components; unknown tags resolve to a
// placeholder component so one unsupported field never blocks a form.
//
// Components never perform I/O. Everything they need (the runtime value
// resolver, reference snapshots, the label translator) arrives through Env.
package inputs
