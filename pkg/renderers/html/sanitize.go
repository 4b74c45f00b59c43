package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans author-supplied help text before it is emitted unescaped.
type Sanitizer interface {
	Sanitize(string) string
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(string) string

// Sanitize implements Sanitizer.
func (fn SanitizerFunc) Sanitize(s string) string { return fn(s) }

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// HelpTextPolicy allows inline formatting and links in descriptions and
// strips everything else.
func HelpTextPolicy() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.AllowElements("b", "strong", "i", "em", "code", "br", "span")
		p.AllowAttrs("href").OnElements("a")
		p.AllowURLSchemes("http", "https", "mailto")
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		helpPolicy = p
	})
	return helpPolicy
}
