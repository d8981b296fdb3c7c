package forms

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/form"
	"a11ypack/internal/i18n"
	"a11ypack/internal/mailto"
)

func TestLookup(t *testing.T) {
	for _, id := range IDs() {
		def, err := Lookup(id)
		require.NoError(t, err)
		assert.Equal(t, id, def.ID)
		assert.NotNil(t, def.Payload)
		assert.Positive(t, def.DismissAfter)
	}

	_, err := Lookup("survey")
	assert.ErrorIs(t, err, a11yerrors.ErrUnknownForm)
}

func TestDismissDelays(t *testing.T) {
	assert.Equal(t, int64(6000), PackRequest().DismissAfter.Milliseconds())
	assert.Equal(t, int64(5000), Contact().DismissAfter.Milliseconds())
	assert.Equal(t, int64(2000), Newsletter().DismissAfter.Milliseconds())
}

func TestBundlesCoverEveryField(t *testing.T) {
	for _, id := range IDs() {
		def, _ := Lookup(id)
		for _, lang := range i18n.Supported() {
			bundle := BundleFor(id, lang)
			assert.NotEmpty(t, bundle.SubmitLabel, "%s/%s submit", id, lang)
			assert.NotEmpty(t, bundle.Success, "%s/%s success", id, lang)
			assert.NotEmpty(t, bundle.Failure, "%s/%s failure", id, lang)
			assert.NotEmpty(t, bundle.Subject, "%s/%s subject", id, lang)
			for _, field := range def.Fields {
				text, ok := bundle.Fields[field.Key]
				require.True(t, ok, "%s/%s missing copy for %s", id, lang, field.Key)
				assert.NotEmpty(t, text.Label)
			}
		}
	}
}

func TestBundleFor_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, BundleFor(ContactID, i18n.LanguageEnglish), BundleFor(ContactID, i18n.Language("fr")))
	assert.Equal(t, Bundle{}, BundleFor("unknown", i18n.LanguageEnglish))
}

func TestPackRequestPayload(t *testing.T) {
	msg := PackRequest().Payload(i18n.LanguageEnglish, form.Values{
		"name": "Ana", "email": "ana@example.com", "company": "", "phone": "600 123 123", "robot": "on",
	})

	assert.Equal(t, mailto.Address, msg.To)
	assert.Equal(t, "Web Accessibility Pack Request", msg.Subject)
	assert.Equal(t, []string{
		"Name: Ana",
		"Email: ana@example.com",
		"Company: ",
		"Phone: 600 123 123",
	}, msg.Lines)
}

func TestContactPayload(t *testing.T) {
	values := form.Values{
		"name": "Ana", "phone": "600123123", "company": "ACME", "email": "ana@acme.com", "message": "Hola",
	}

	en := Contact().Payload(i18n.LanguageEnglish, values)
	assert.Equal(t, "New contact: Ana from ACME", en.Subject)
	assert.Equal(t, []string{
		"Contact information:", "",
		"Full name: Ana", "Phone: 600123123", "Company: ACME", "Email: ana@acme.com",
		"", "Message:", "Hola",
		"", "This message was sent from your website contact form.",
	}, en.Lines)

	es := Contact().Payload(i18n.LanguageSpanish, values)
	assert.Equal(t, "Nuevo contacto: Ana de ACME", es.Subject)
	assert.Equal(t, "Nombre completo: Ana", es.Lines[2])
	assert.Equal(t,
		"mailto:a11ycontact@a11ysolutions.com?subject=Nuevo%20contacto%3A%20Ana%20de%20ACME&body=Informaci%C3%B3n%20del%20contacto%3A%0D%0A%0D%0ANombre%20completo%3A%20Ana",
		mailto.BuildURI(mailto.Message{To: es.To, Subject: es.Subject, Lines: es.Lines[:3]}))
}

func TestNewsletterPayload(t *testing.T) {
	msg := Newsletter().Payload(i18n.LanguageSpanish, form.Values{"name": "Ana", "email": "ana@example.com"})
	assert.Equal(t, "Solicitud de Suscripción al Boletín", msg.Subject)
	assert.Contains(t, msg.Lines, "Nombre: Ana")
	assert.Contains(t, msg.Lines, "Email: ana@example.com")
	assert.Less(t, indexOf(msg.Lines, "Nombre: Ana"), indexOf(msg.Lines, "Email: ana@example.com"))
}

func indexOf(lines []string, want string) int {
	for i, line := range lines {
		if line == want {
			return i
		}
	}
	return -1
}

type recordingSink struct {
	messages []mailto.Message
}

func (s *recordingSink) Handoff(_ context.Context, msg mailto.Message) error {
	s.messages = append(s.messages, msg)
	return nil
}

func TestSubmit_BodyFollowsDeclaredLabelOrder(t *testing.T) {
	for _, lang := range i18n.Supported() {
		t.Run(string(lang), func(t *testing.T) {
			sink := &recordingSink{}
			c := form.NewController(PackRequest(), sink)
			defer c.Close()
			c.Fill(form.Values{"name": "Ana", "email": "ana@example.com", "company": "ACME", "phone": "+34 600", "robot": "on"})

			result := c.Submit(context.Background(), lang)
			require.Equal(t, form.PhaseSucceeded, result.Phase)
			require.Len(t, sink.messages, 1)

			bundle := BundleFor(PackRequestID, lang)
			var labels []string
			for _, line := range sink.messages[0].Lines {
				labels = append(labels, strings.SplitN(line, ":", 2)[0])
			}
			assert.Equal(t, []string{
				bundle.Fields["name"].BodyLabel,
				bundle.Fields["email"].BodyLabel,
				bundle.Fields["company"].BodyLabel,
				bundle.Fields["phone"].BodyLabel,
			}, labels)

			for _, value := range c.State().Values {
				assert.Empty(t, value)
			}
		})
	}
}

func TestRender_LocaleSwitchKeepsErrorsAndValues(t *testing.T) {
	c := form.NewController(Contact(), &recordingSink{})
	defer c.Close()
	c.Fill(form.Values{"name": "", "phone": "call me", "company": "ACME", "email": "abc"})
	c.Submit(context.Background(), i18n.LanguageEnglish)
	state := c.State()

	en := Render(Contact(), state, i18n.LanguageEnglish)
	es := Render(Contact(), state, i18n.LanguageSpanish)

	assert.Equal(t, state, c.State(), "rendering does not mutate state")
	require.Len(t, es.Fields, len(en.Fields))
	for i := range en.Fields {
		assert.Equal(t, en.Fields[i].Value, es.Fields[i].Value)
		assert.Equal(t, en.Fields[i].Reason, es.Fields[i].Reason)
		assert.Equal(t, en.Fields[i].Error == "", es.Fields[i].Error == "")
	}

	byKey := func(v View) map[string]FieldView {
		out := map[string]FieldView{}
		for _, f := range v.Fields {
			out[f.Key] = f
		}
		return out
	}
	assert.Equal(t, "Please enter a name", byKey(en)["name"].Error)
	assert.Equal(t, "Por favor, ingrese un nombre", byKey(es)["name"].Error)
	assert.Equal(t, "Por favor ingresa un teléfono válido.", byKey(es)["phone"].Error)
	assert.Equal(t, "Por favor ingresa un correo válido.", byKey(es)["email"].Error)
	assert.Equal(t, "call me", byKey(es)["phone"].Value)
	assert.True(t, byKey(es)["name"].Autofocus)
	assert.Equal(t, "contact-name-error", byKey(es)["name"].ErrorID)
}

func TestRender_Banners(t *testing.T) {
	state := form.InitialState(Newsletter())

	state.Phase = form.PhaseSucceeded
	view := Render(Newsletter(), state, i18n.LanguageEnglish)
	assert.True(t, view.BannerSuccess)
	assert.Equal(t, BundleFor(NewsletterID, i18n.LanguageEnglish).Success, view.Banner)
	assert.Equal(t, int64(2000), view.DismissAfterMs)

	state.Phase = form.PhaseFailed
	view = Render(Newsletter(), state, i18n.LanguageSpanish)
	assert.False(t, view.BannerSuccess)
	assert.Equal(t, "Error al enviar el formulario. Por favor intenta nuevamente.", view.Banner)

	state.Phase = form.PhaseIdle
	assert.Empty(t, Render(Newsletter(), state, i18n.LanguageEnglish).Banner)
}

func TestEmpty(t *testing.T) {
	view := Empty(PackRequest(), i18n.LanguageSpanish)
	assert.Equal(t, "/forms/pack-request", view.Action)
	assert.Equal(t, "contact", view.SectionID)
	assert.Equal(t, form.PhaseIdle, view.Phase)
	require.Len(t, view.Fields, 5)
	assert.Equal(t, "robot-check", view.Fields[4].ID)
	assert.Equal(t, form.InputCheckbox, view.Fields[4].Input)
	assert.Equal(t, "footer-name", FieldID(NewsletterID, "name"))
}

func TestErrorMessage_UnknownReasonFallsBack(t *testing.T) {
	bundle := BundleFor(PackRequestID, i18n.LanguageEnglish)
	assert.Empty(t, bundle.ErrorMessage("name", nil))
	assert.Equal(t, bundle.Failure, bundle.ErrorMessage("company", a11yerrors.ErrMissingValue))
}
