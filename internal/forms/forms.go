// Package forms declares the lead-capture forms of the site: their fields,
// copy in every language and the message each one hands to the mail client.
package forms

import (
	"fmt"
	"strings"
	"time"

	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/form"
	"a11ypack/internal/i18n"
	"a11ypack/internal/mailto"
	"a11ypack/internal/validation"
)

// Form identifiers, used in routes and metrics.
const (
	PackRequestID = "pack-request"
	ContactID     = "contact"
	NewsletterID  = "newsletter"
)

var packRequest = form.Definition{
	ID: PackRequestID,
	Fields: []form.FieldSpec{
		{Key: "name", Required: true, Kind: validation.KindText, Input: form.InputText},
		{Key: "email", Required: true, Kind: validation.KindEmail, Input: form.InputEmail},
		{Key: "company", Kind: validation.KindText, Input: form.InputText},
		{Key: "phone", Kind: validation.KindPhone, Input: form.InputTel},
		{Key: "robot", Kind: validation.KindConsent, Input: form.InputCheckbox},
	},
	DismissAfter: 6 * time.Second,
}

var contact = form.Definition{
	ID: ContactID,
	Fields: []form.FieldSpec{
		{Key: "name", Required: true, Kind: validation.KindText, Input: form.InputText},
		{Key: "phone", Required: true, Kind: validation.KindPhone, Input: form.InputTel},
		{Key: "company", Required: true, Kind: validation.KindText, Input: form.InputText},
		{Key: "email", Required: true, Kind: validation.KindEmail, Input: form.InputEmail},
		{Key: "message", Kind: validation.KindText, Input: form.InputTextarea},
	},
	DismissAfter: 5 * time.Second,
}

var newsletter = form.Definition{
	ID: NewsletterID,
	Fields: []form.FieldSpec{
		{Key: "name", Required: true, Kind: validation.KindText, Input: form.InputText},
		{Key: "email", Required: true, Kind: validation.KindEmail, Input: form.InputEmail},
	},
	DismissAfter: 2 * time.Second,
}

func init() {
	packRequest.Payload = packRequestPayload
	contact.Payload = contactPayload
	newsletter.Payload = newsletterPayload
}

// Lookup returns the definition registered under id.
func Lookup(id string) (form.Definition, error) {
	switch id {
	case PackRequestID:
		return packRequest, nil
	case ContactID:
		return contact, nil
	case NewsletterID:
		return newsletter, nil
	default:
		return form.Definition{}, fmt.Errorf("%w: %q", a11yerrors.ErrUnknownForm, id)
	}
}

// IDs lists every form in page order.
func IDs() []string {
	return []string{PackRequestID, ContactID, NewsletterID}
}

// PackRequest, Contact and Newsletter return the definitions directly.
func PackRequest() form.Definition { return packRequest }
func Contact() form.Definition     { return contact }
func Newsletter() form.Definition  { return newsletter }

// fieldLines renders "Label: value" for every non-consent field in declared order.
func fieldLines(def form.Definition, bundle Bundle, values form.Values) []string {
	lines := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		if field.Kind == validation.KindConsent {
			continue
		}
		lines = append(lines, bundle.Fields[field.Key].BodyLabel+": "+strings.TrimSpace(values[field.Key]))
	}
	return lines
}

func packRequestPayload(lang i18n.Language, values form.Values) mailto.Message {
	bundle := BundleFor(PackRequestID, lang)
	return mailto.Message{
		To:      mailto.Address,
		Subject: bundle.Subject,
		Lines:   fieldLines(packRequest, bundle, values),
	}
}

func contactPayload(lang i18n.Language, values form.Values) mailto.Message {
	bundle := BundleFor(ContactID, lang)
	subject := strings.NewReplacer(
		"{name}", strings.TrimSpace(values["name"]),
		"{company}", strings.TrimSpace(values["company"]),
	).Replace(bundle.Subject)

	lines := append([]string{}, bundle.BodyHeader...)
	for _, field := range contact.Fields {
		if field.Key == "message" {
			continue
		}
		lines = append(lines, bundle.Fields[field.Key].BodyLabel+": "+strings.TrimSpace(values[field.Key]))
	}
	lines = append(lines, "", bundle.Fields["message"].BodyLabel+":", values["message"])
	lines = append(lines, bundle.BodyFooter...)
	return mailto.Message{To: mailto.Address, Subject: subject, Lines: lines}
}

func newsletterPayload(lang i18n.Language, values form.Values) mailto.Message {
	bundle := BundleFor(NewsletterID, lang)
	lines := append([]string{}, bundle.BodyHeader...)
	lines = append(lines, fieldLines(newsletter, bundle, values)...)
	lines = append(lines, bundle.BodyFooter...)
	return mailto.Message{To: mailto.Address, Subject: bundle.Subject, Lines: lines}
}
