package inputs

import (
	"github.com/goliatone/go-runtimeinputs/pkg/references"
	"github.com/goliatone/go-runtimeinputs/pkg/runtimevalue"
)

// Builtins returns the built-in variant table.
func Builtins() []Variant {
	return []Variant{
		{TypeTag: TagString, Primitive: runtimevalue.PrimitiveString, Field: FieldText},
		{TypeTag: TagNumber, Primitive: runtimevalue.PrimitiveNumber, Field: FieldNumber},
		{TypeTag: TagTextArea, Primitive: runtimevalue.PrimitiveString, Field: FieldTextArea},
		{TypeTag: TagEmail, Primitive: runtimevalue.PrimitiveString, Field: FieldEmail, Format: checkEmail},
		{TypeTag: TagURL, Primitive: runtimevalue.PrimitiveString, Field: FieldURL, Format: checkURL},
		{TypeTag: TagBoolean, Primitive: runtimevalue.PrimitiveBoolean, Field: FieldCheckbox},
		{TypeTag: TagDuration, Primitive: runtimevalue.PrimitiveString, Field: FieldText, Format: checkDuration},
		{
			TypeTag:   TagHTTPMethod,
			Primitive: runtimevalue.PrimitiveString,
			Field:     FieldSelect,
			Reference: references.LookupHTTPMethod,
			Options:   references.HTTPMethods(),
		},
		{
			TypeTag:   TagDelegateSelector,
			Primitive: runtimevalue.PrimitiveString,
			Field:     FieldMultiSelect,
			Reference: references.LookupDelegate,
			Multiple:  true,
		},
		{TypeTag: TagConnector, Primitive: runtimevalue.PrimitiveString, Field: FieldSelect, Reference: references.LookupConnector},
		{TypeTag: TagJenkinsConnector, Primitive: runtimevalue.PrimitiveString, Field: FieldSelect, Reference: references.LookupJenkinsConnector},
		{TypeTag: TagSecret, Primitive: runtimevalue.PrimitiveString, Field: FieldPassword, Reference: references.LookupSecret},
	}
}
