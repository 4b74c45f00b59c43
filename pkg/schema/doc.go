// Package schema defines input declarations and loads them from YAML, JSON,
// HCL and OpenAPI sources. A Schema is immutable once loaded; forms bind raw
// values to its declarations by canonical path.
package schema
