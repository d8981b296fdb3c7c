package forms

import (
	"a11ypack/internal/form"
	"a11ypack/internal/i18n"
	"a11ypack/internal/validation"
)

// FieldView is one field ready for the form template.
type FieldView struct {
	Key         string
	ID          string
	Label       string
	Placeholder string
	Value       string
	Input       form.Input
	Required    bool
	Checked     bool
	Error       string
	ErrorID     string
	Reason      string
	Autofocus   bool
}

// View is a form ready for the form template. Error text is resolved from
// the state's error kinds in the requested language.
type View struct {
	FormID         string
	SectionID      string
	Action         string
	Language       i18n.Language
	Bundle         Bundle
	Fields         []FieldView
	Phase          form.Phase
	Submitting     bool
	Banner         string
	BannerSuccess  bool
	MailtoURI      string
	Reference      string
	DismissAfterMs int64
}

var sectionIDs = map[string]string{
	PackRequestID: "contact",
	ContactID:     "contact",
	NewsletterID:  "newsletter",
}

var fieldIDPrefix = map[string]string{
	PackRequestID: "",
	ContactID:     "contact-",
	NewsletterID:  "footer-",
}

// FieldID returns the DOM id of a field.
func FieldID(formID, key string) string {
	if key == "robot" {
		return fieldIDPrefix[formID] + "robot-check"
	}
	return fieldIDPrefix[formID] + key
}

// Render builds the view of state in lang.
func Render(def form.Definition, state form.State, lang i18n.Language) View {
	bundle := BundleFor(def.ID, lang)
	view := View{
		FormID:         def.ID,
		SectionID:      sectionIDs[def.ID],
		Action:         "/forms/" + def.ID,
		Language:       lang,
		Bundle:         bundle,
		Phase:          state.Phase,
		Submitting:     state.Phase == form.PhaseSubmitting,
		MailtoURI:      state.MailtoURI,
		Reference:      state.Reference,
		DismissAfterMs: def.DismissAfter.Milliseconds(),
	}
	switch state.Phase {
	case form.PhaseSucceeded:
		view.Banner = bundle.Success
		view.BannerSuccess = true
	case form.PhaseFailed:
		view.Banner = bundle.Failure
	}

	for _, spec := range def.Fields {
		text := bundle.Fields[spec.Key]
		value := state.Values[spec.Key]
		field := FieldView{
			Key:         spec.Key,
			ID:          FieldID(def.ID, spec.Key),
			Label:       text.Label,
			Placeholder: text.Placeholder,
			Value:       value,
			Input:       spec.Input,
			Required:    spec.Required,
			Checked:     spec.Kind == validation.KindConsent && validation.IsChecked(value),
			Autofocus:   state.Focus == spec.Key,
		}
		if err, ok := state.Errors[spec.Key]; ok {
			field.Error = bundle.ErrorMessage(spec.Key, err)
			field.ErrorID = field.ID + "-error"
			field.Reason = validation.Reason(err)
		}
		view.Fields = append(view.Fields, field)
	}
	return view
}

// Empty renders a fresh, idle form.
func Empty(def form.Definition, lang i18n.Language) View {
	return Render(def, form.InitialState(def), lang)
}
