package forms

import (
	"net/url"

	"a11ypack/internal/form"
	"a11ypack/internal/validation"
)

// CarriedField is one hidden input holding form state across a language switch.
type CarriedField struct {
	Name  string
	Value string
}

// ValueParam names the carried value of key in formID.
func ValueParam(formID, key string) string {
	return formID + "." + key
}

// ErrorParam names the carried error reason of key in formID.
func ErrorParam(formID, key string) string {
	return formID + ".error." + key
}

// Carry lists the non-empty values and the error reasons of the view.
func (v View) Carry() []CarriedField {
	var carried []CarriedField
	for _, field := range v.Fields {
		if field.Value != "" {
			carried = append(carried, CarriedField{Name: ValueParam(v.FormID, field.Key), Value: field.Value})
		}
		if field.Reason != "" {
			carried = append(carried, CarriedField{Name: ErrorParam(v.FormID, field.Key), Value: field.Reason})
		}
	}
	return carried
}

// Restore rebuilds the state of def from carried params. Only declared fields
// are read. The state is Invalid when any error was carried, Idle otherwise.
// ok is false when params hold nothing for def.
func Restore(def form.Definition, params url.Values) (form.State, bool) {
	state := form.InitialState(def)
	carried := false
	for _, field := range def.Fields {
		if value := params.Get(ValueParam(def.ID, field.Key)); value != "" {
			state.Values[field.Key] = value
			carried = true
		}
		if err := validation.ErrorForReason(params.Get(ErrorParam(def.ID, field.Key))); err != nil {
			state.Errors[field.Key] = err
		}
	}
	if len(state.Errors) > 0 {
		state.Phase = form.PhaseInvalid
		state.Attempted = true
		carried = true
	}
	return state, carried
}
