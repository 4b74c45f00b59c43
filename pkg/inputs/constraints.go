package inputs

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

const (
	patternCacheSize    = 256
	patternMatchTimeout = 250 * time.Millisecond
)

var patternCache = newPatternCache()

func newPatternCache() *lru.Cache[string, *regexp2.Regexp] {
	cache, err := lru.New[string, *regexp2.Regexp](patternCacheSize)
	if err != nil {
		panic(err)
	}
	return cache
}

// compilePattern compiles an ECMAScript pattern once and reuses it across
// validations.
func compilePattern(pattern string) (*regexp2.Regexp, error) {
	if re, ok := patternCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = patternMatchTimeout
	patternCache.Add(pattern, re)
	return re, nil
}

func checkConstraints(env Env, c schema.Constraints, value runtimevalue.Value, multiple bool, result *ValidationResult) {
	if value.Empty() {
		if c.Required {
			result.add(Issue{Kind: IssueConstraint, Rule: RuleRequired, Message: env.translate("validation.required", "required")})
		}
		return
	}

	text := value.Raw
	if c.Pattern != "" {
		re, err := compilePattern(c.Pattern)
		if err != nil {
			result.add(Issue{Kind: IssueConstraint, Rule: RulePattern, Message: fmt.Sprintf("invalid pattern %q", c.Pattern)})
		} else if ok, matchErr := re.MatchString(text); matchErr != nil || !ok {
			result.add(Issue{
				Kind:    IssueConstraint,
				Rule:    RulePattern,
				Message: env.translate("validation.pattern", fmt.Sprintf("must match pattern %s", c.Pattern), c.Pattern),
			})
		}
	}

	if n, ok := value.Fixed.(float64); ok {
		if c.Min != nil && n < *c.Min {
			result.add(Issue{Kind: IssueConstraint, Rule: RuleMin, Message: env.translate("validation.min", fmt.Sprintf("must be at least %v", *c.Min), *c.Min)})
		}
		if c.Max != nil && n > *c.Max {
			result.add(Issue{Kind: IssueConstraint, Rule: RuleMax, Message: env.translate("validation.max", fmt.Sprintf("must be at most %v", *c.Max), *c.Max)})
		}
	}

	length := utf8.RuneCountInString(text)
	if c.MinLength != nil && length < *c.MinLength {
		result.add(Issue{Kind: IssueConstraint, Rule: RuleMinLength, Message: env.translate("validation.minLength", fmt.Sprintf("must be at least %d characters", *c.MinLength), *c.MinLength)})
	}
	if c.MaxLength != nil && length > *c.MaxLength {
		result.add(Issue{Kind: IssueConstraint, Rule: RuleMaxLength, Message: env.translate("validation.maxLength", fmt.Sprintf("must be at most %d characters", *c.MaxLength), *c.MaxLength)})
	}

	if len(c.AllowedValues) > 0 {
		parts := []string{strings.TrimSpace(text)}
		if multiple {
			parts = splitList(text)
		}
		for _, part := range parts {
			if !containsString(c.AllowedValues, part) {
				result.add(Issue{
					Kind:    IssueConstraint,
					Rule:    RuleAllowedValues,
					Message: env.translate("validation.allowedValues", fmt.Sprintf("%q is not one of: %s", part, strings.Join(c.AllowedValues, ", ")), part),
				})
			}
		}
	}
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
