package page

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ypack/internal/content"
	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/form"
	"a11ypack/internal/forms"
	"a11ypack/internal/i18n"
)

func newTestBuilder() *Builder {
	b := NewBuilder(content.NewEmbeddedStore(time.Minute))
	b.now = func() time.Time { return time.Date(2025, 6, 28, 0, 0, 0, 0, time.UTC) }
	return b
}

func TestBuild_PackSectionOrder(t *testing.T) {
	layout, err := newTestBuilder().Build(KindPack, i18n.LanguageEnglish, Options{Path: "/"})
	require.NoError(t, err)

	var ids []string
	for _, section := range layout.Sections {
		ids = append(ids, section.ID)
	}
	assert.Equal(t, []string{"home", "benefits", "inclusions", "audience", "legal-reputation", "trust", "pricing"}, ids)
	assert.Equal(t, forms.PackRequestID, layout.MainForm.FormID)
	assert.Equal(t, forms.NewsletterID, layout.Newsletter.FormID)
}

func TestBuild_ChromeInLanguage(t *testing.T) {
	layout, err := newTestBuilder().Build(KindPack, i18n.LanguageSpanish, Options{Announcement: "hola"})
	require.NoError(t, err)

	assert.Equal(t, []SkipLink{
		{Label: "Saltar al contenido", Href: "#hero-title"},
		{Label: "Ir al pie de página", Href: "#footer-name"},
	}, layout.SkipLinks)
	assert.Equal(t, "© 2025 a11ySolutions. Todos los derechos reservados", layout.Copyright)
	assert.Equal(t, "hola", layout.Announcement)
	assert.Equal(t, "a11ycontact@a11ysolutions.com", layout.ContactEmail)
	require.Len(t, layout.Languages, 2)
	assert.Equal(t, LanguageOption{Code: i18n.LanguageSpanish, Label: "ESPAÑOL", Selected: true}, layout.Languages[1])
	assert.False(t, layout.Languages[0].Selected)
}

func TestBuild_ContactPage(t *testing.T) {
	layout, err := newTestBuilder().Build(KindContact, i18n.LanguageEnglish, Options{Path: "/contact"})
	require.NoError(t, err)
	assert.Empty(t, layout.Sections)
	assert.Equal(t, forms.ContactID, layout.MainForm.FormID)
	assert.True(t, layout.Anchors()[MainAnchor])
	assert.True(t, layout.Anchors()["contact-email"])
}

func TestBuild_FormOverride(t *testing.T) {
	state := form.InitialState(forms.Newsletter())
	state.Phase = form.PhaseSucceeded
	override := forms.Render(forms.Newsletter(), state, i18n.LanguageEnglish)

	layout, err := newTestBuilder().Build(KindPack, i18n.LanguageEnglish, Options{
		Forms: map[string]forms.View{forms.NewsletterID: override},
	})
	require.NoError(t, err)
	assert.Equal(t, form.PhaseSucceeded, layout.Newsletter.Phase)
	assert.Equal(t, form.PhaseIdle, layout.MainForm.Phase)
}

func TestLayoutAnchors(t *testing.T) {
	layout, err := newTestBuilder().Build(KindPack, i18n.LanguageEnglish, Options{})
	require.NoError(t, err)
	anchors := layout.Anchors()
	for _, id := range []string{"hero-title", "footer-name", "contact", "benefits", "pricing", "footer", "robot-check"} {
		assert.True(t, anchors[id], id)
	}
	assert.False(t, anchors["faq"])
}

func TestNavigator_FoundImmediately(t *testing.T) {
	nav := NewNavigator(LayoutAnchors(newTestBuilder()))
	fragment, err := nav.GoTo(context.Background(), i18n.LanguageEnglish, "#contact")
	require.NoError(t, err)
	assert.Equal(t, "#contact", fragment)
}

func TestNavigator_RetriesFailingSource(t *testing.T) {
	var calls atomic.Int32
	source := func(context.Context, i18n.Language) (map[string]bool, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("content not loaded")
		}
		return map[string]bool{"pricing": true}, nil
	}
	nav := NewNavigator(source, WithStep(time.Millisecond))

	fragment, err := nav.GoTo(context.Background(), i18n.LanguageEnglish, "pricing")
	require.NoError(t, err)
	assert.Equal(t, "#pricing", fragment)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNavigator_UnknownTargetFailsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	source := func(context.Context, i18n.Language) (map[string]bool, error) {
		calls.Add(1)
		return map[string]bool{"pricing": true}, nil
	}
	nav := NewNavigator(source, WithStep(time.Second))

	start := time.Now()
	_, err := nav.GoTo(context.Background(), i18n.LanguageEnglish, "faq")
	assert.ErrorIs(t, err, a11yerrors.ErrUnknownTarget)
	assert.Equal(t, int32(1), calls.Load())
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestNavigator_GivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	source := func(context.Context, i18n.Language) (map[string]bool, error) {
		calls.Add(1)
		return nil, errors.New("content not loaded")
	}
	nav := NewNavigator(source, WithStep(time.Millisecond))

	_, err := nav.GoTo(context.Background(), i18n.LanguageEnglish, "pricing")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, a11yerrors.ErrUnknownTarget)
	assert.Equal(t, int32(5), calls.Load())
}

func TestNavigator_EmptyTarget(t *testing.T) {
	nav := NewNavigator(func(context.Context, i18n.Language) (map[string]bool, error) {
		t.Fatal("source must not be called")
		return nil, nil
	})
	_, err := nav.GoTo(context.Background(), i18n.LanguageEnglish, " # ")
	assert.ErrorIs(t, err, a11yerrors.ErrUnknownTarget)
}

func TestNavigator_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source := func(context.Context, i18n.Language) (map[string]bool, error) {
		return nil, errors.New("layout unavailable")
	}
	nav := NewNavigator(source, WithAttempts(3), WithStep(time.Second))

	start := time.Now()
	_, err := nav.GoTo(ctx, i18n.LanguageEnglish, "contact")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
