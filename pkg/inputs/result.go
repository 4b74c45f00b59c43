package inputs

// IssueKind classifies a validation issue.
type IssueKind string

const (
	IssueTypeMismatch        IssueKind = "type_mismatch"
	IssueConstraint          IssueKind = "constraint_violation"
	IssueValueKind           IssueKind = "value_kind"
	IssueMalformedRuntimeVal IssueKind = "malformed_runtime_input"
)

// Constraint rule names reported on IssueConstraint issues.
const (
	RuleRequired      = "required"
	RulePattern       = "pattern"
	RuleMin           = "min"
	RuleMax           = "max"
	RuleMinLength     = "minLength"
	RuleMaxLength     = "maxLength"
	RuleAllowedValues = "allowedValues"
	RuleReference     = "reference"
	RuleFormat        = "format"
)

// Issue is a single field-level problem.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Rule    string    `json:"rule,omitempty"`
	Message string    `json:"message"`
}

// ValidationResult holds the ordered issues found for one path. An empty
// result is valid.
type ValidationResult struct {
	Path   string  `json:"path"`
	Issues []Issue `json:"issues,omitempty"`
}

// Valid reports whether no issues were found.
func (r ValidationResult) Valid() bool {
	return len(r.Issues) == 0
}

// Errors returns the issue messages in order.
func (r ValidationResult) Errors() []string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Message)
	}
	return out
}

// Has reports whether an issue of kind (and rule, when non-empty) exists.
func (r ValidationResult) Has(kind IssueKind, rule string) bool {
	for _, issue := range r.Issues {
		if issue.Kind == kind && (rule == "" || issue.Rule == rule) {
			return true
		}
	}
	return false
}

func (r *ValidationResult) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}
