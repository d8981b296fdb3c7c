package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/form"
	"a11ypack/internal/forms"
	"a11ypack/internal/httputil"
	"a11ypack/internal/i18n"
	"a11ypack/internal/logger"
	"a11ypack/internal/mailto"
	"a11ypack/internal/metrics"
	"a11ypack/internal/page"
	"a11ypack/internal/validation"
	"a11ypack/internal/version"
	"a11ypack/middleware"
)

// Page routes.
const (
	PathHome    = "/"
	PathPack    = "/pack-accessibility-eaa"
	PathContact = "/contact"
)

var pageKinds = map[string]page.Kind{
	PathHome:    page.KindPack,
	PathPack:    page.KindPack,
	PathContact: page.KindContact,
}

// Events sent to the browser in HX-Trigger.
const (
	EventMailtoHandoff   = "mailtoHandoff"
	EventLanguageChanged = "languageChanged"
)

// UIDependencies are the collaborators of the HTML routes.
type UIDependencies struct {
	Pages     *page.Builder
	Navigator *page.Navigator
	Metrics   *metrics.FormMetrics
	// NewSink returns the sink for one submission. Defaults to a mailto URI sink.
	NewSink func() form.Sink
	// ControllerOptions are applied to every per-request form controller.
	ControllerOptions []form.Option
}

type ui struct {
	templates *template.Template
	deps      UIDependencies
}

// pageData is the root object of page.html.
type pageData struct {
	page.Layout
	// Refresh, when set, is the mailto URI the page hands off to on load.
	Refresh    string
	AppVersion string
}

// RegisterUIRoutes parses the page templates from webFS and mounts the HTML routes.
func RegisterUIRoutes(router chi.Router, webFS fs.FS, deps UIDependencies) error {
	templates, err := template.New("").Funcs(templateFuncMap()).ParseFS(webFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	if deps.NewSink == nil {
		deps.NewSink = func() form.Sink { return mailto.NewURISink() }
	}
	h := &ui{templates: templates, deps: deps}

	for path, kind := range pageKinds {
		router.Get(path, h.servePage(kind))
	}
	router.Post("/forms/{formID}", h.submitForm)
	router.Post("/ui/language", h.selectLanguage)
	router.Get("/go/{target}", h.navigate)
	router.NotFound(h.notFound)
	return nil
}

func (h *ui) servePage(kind page.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := i18n.StoreFrom(r.Context())
		h.renderPage(w, r, http.StatusOK, kind, store.Language(), page.Options{Path: r.URL.Path}, "")
	}
}

func (h *ui) renderPage(w http.ResponseWriter, r *http.Request, status int, kind page.Kind, lang i18n.Language, opts page.Options, refresh string) {
	layout, err := h.deps.Pages.Build(kind, lang, opts)
	if err != nil {
		h.fail(w, r, err, "failed to build page layout")
		return
	}
	data := pageData{Layout: layout, Refresh: refresh, AppVersion: version.Version}
	h.execute(w, r, status, "page.html", data)
}

// execute renders into a buffer first so a template error never leaves a
// half-written page behind.
func (h *ui) execute(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.fail(w, r, err, "failed to render "+name)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *ui) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.HTTPError(r.Method, r.URL.Path, http.StatusInternalServerError, err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Msg(msg)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *ui) notFound(w http.ResponseWriter, r *http.Request) {
	messages := i18n.StoreFrom(r.Context()).Messages()
	http.Error(w, messages.NotFound, http.StatusNotFound)
}

func (h *ui) submitForm(w http.ResponseWriter, r *http.Request) {
	def, err := forms.Lookup(chi.URLParam(r, "formID"))
	if err != nil {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	lang := i18n.LanguageFrom(r.Context())

	ctrl := form.NewController(def, h.deps.NewSink(), h.deps.ControllerOptions...)
	defer ctrl.Close()
	values := make(form.Values, len(def.Fields))
	for _, field := range def.Fields {
		values[field.Key] = r.PostForm.Get(field.Key)
	}
	ctrl.Fill(values)

	start := time.Now()
	result := ctrl.Submit(r.Context(), lang)
	h.observe(def, result, time.Since(start))

	view := forms.Render(def, ctrl.State(), lang)
	status := submitStatus(result)

	if httputil.IsHTMX(r) {
		if result.Phase == form.PhaseSucceeded {
			detail := map[string]string{"uri": view.MailtoURI, "reference": view.Reference}
			if err := httputil.SetTrigger(w, EventMailtoHandoff, detail); err != nil {
				h.fail(w, r, err, "failed to encode mailto trigger")
				return
			}
		}
		h.execute(w, r, status, "form", view)
		return
	}

	kind, path := page.KindPack, PathHome
	if def.ID == forms.ContactID {
		kind, path = page.KindContact, PathContact
	}
	opts := page.Options{Path: path, Forms: map[string]forms.View{def.ID: view}}
	h.renderPage(w, r, status, kind, lang, opts, view.MailtoURI)
}

func (h *ui) observe(def form.Definition, result form.Result, elapsed time.Duration) {
	h.deps.Metrics.ObserveSubmission(def.ID, string(result.Phase))
	switch result.Phase {
	case form.PhaseInvalid:
		for _, field := range def.Fields {
			if err, ok := result.Errors[field.Key]; ok {
				h.deps.Metrics.ObserveValidationFailure(def.ID, field.Key, validation.Reason(err))
			}
		}
	case form.PhaseSucceeded, form.PhaseFailed:
		h.deps.Metrics.ObserveHandoff(def.ID, elapsed)
	}
}

func submitStatus(result form.Result) int {
	switch {
	case result.Phase == form.PhaseInvalid:
		return http.StatusUnprocessableEntity
	case result.Phase == form.PhaseFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

func (h *ui) selectLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	lang, ok := i18n.FromQueryLanguage(r.PostForm.Get("lang"))
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	path := r.PostForm.Get("path")
	kind, ok := pageKinds[path]
	if !ok {
		path, kind = PathHome, page.KindPack
	}

	store := i18n.StoreFrom(r.Context())
	unsubscribe := store.Subscribe(func(selected i18n.Language) {
		http.SetCookie(w, &http.Cookie{
			Name:     i18n.CookieName,
			Value:    string(selected),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set("Content-Language", string(selected))
	})
	defer unsubscribe()
	store.Select(lang)
	h.deps.Metrics.ObserveLanguageSelection(string(lang))

	if httputil.IsHTMX(r) {
		if err := httputil.SetTrigger(w, EventLanguageChanged, map[string]string{"lang": string(lang)}); err != nil {
			h.fail(w, r, err, "failed to encode language trigger")
			return
		}
	}
	opts := page.Options{
		Path:         path,
		Announcement: store.Announcement(),
		Forms:        carriedForms(r.PostForm, store.Language()),
	}
	h.renderPage(w, r, http.StatusOK, kind, store.Language(), opts, "")
}

// carriedForms re-renders in lang every form whose values or errors were
// posted along with the language selection.
func carriedForms(params url.Values, lang i18n.Language) map[string]forms.View {
	views := make(map[string]forms.View)
	for _, id := range forms.IDs() {
		def, err := forms.Lookup(id)
		if err != nil {
			continue
		}
		if state, ok := forms.Restore(def, params); ok {
			views[id] = forms.Render(def, state, lang)
		}
	}
	return views
}

func (h *ui) navigate(w http.ResponseWriter, r *http.Request) {
	lang := i18n.LanguageFrom(r.Context())
	fragment, err := h.deps.Navigator.GoTo(r.Context(), lang, chi.URLParam(r, "target"))
	if err != nil {
		h.deps.Metrics.ObserveNavigation("missing")
		if errors.Is(err, a11yerrors.ErrUnknownTarget) {
			h.notFound(w, r)
			return
		}
		h.fail(w, r, err, "navigation failed")
		return
	}
	h.deps.Metrics.ObserveNavigation("found")

	location := PathHome
	if code, ok := i18n.FromQueryLanguage(r.URL.Query().Get("lang")); ok {
		location += "?" + url.Values{"lang": {string(code)}}.Encode()
	}
	http.Redirect(w, r, location+fragment, http.StatusSeeOther)
}
