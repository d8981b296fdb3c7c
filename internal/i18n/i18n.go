package i18n

import (
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Language represents a supported UI language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
)

// DefaultLanguage is used when nothing in the request selects a language.
const DefaultLanguage = LanguageEnglish

// CookieName holds the browser-side language selection.
const CookieName = "lang"

// Messages contains the translatable strings of the page chrome: header,
// skip links, language selector and footer.
type Messages struct {
	AppTitle            string `json:"appTitle"`
	BannerDismiss       string `json:"bannerDismiss"`
	CloseMenu           string `json:"closeMenu"`
	ContactUs           string `json:"contactUs"`
	FooterAbout         string `json:"footerAbout"`
	FooterContact       string `json:"footerContact"`
	FooterCopyright     string `json:"footerCopyright"`
	FooterLinkedIn      string `json:"footerLinkedIn"`
	IAAPLogoAlt         string `json:"iaapLogoAlt"`
	LanguageEnglish     string `json:"languageEnglish"`
	LanguageInstruction string `json:"languageInstruction"`
	LanguageSelector    string `json:"languageSelector"`
	LanguageSpanish     string `json:"languageSpanish"`
	LanguageSubmit      string `json:"languageSubmit"`
	LogoAlt             string `json:"logoAlt"`
	MailClientFallback  string `json:"mailClientFallback"`
	Menu                string `json:"menu"`
	MetaDescription     string `json:"metaDescription"`
	NotFound            string `json:"notFound"`
	SkipToContent       string `json:"skipToContent"`
	SkipToFooter        string `json:"skipToFooter"`
}

// Response is the payload returned by the /api/i18n endpoint.
type Response struct {
	Language Language `json:"language"`
	Messages Messages `json:"messages"`
}

var englishMessages = Messages{
	AppTitle:            "Web Accessibility Pack | A11ySolutions",
	BannerDismiss:       "Dismiss",
	CloseMenu:           "Close menu",
	ContactUs:           "Contact us",
	FooterAbout:         "Making digital accessibility simple and achievable for all organizations.",
	FooterContact:       "Contact",
	FooterCopyright:     "© {{year}} a11ySolutions. All Rights Reserved",
	FooterLinkedIn:      "LinkedIn",
	IAAPLogoAlt:         "IAAP Logo",
	LanguageEnglish:     "ENGLISH",
	LanguageInstruction: "Use arrow keys to navigate options and press Enter to select",
	LanguageSelector:    "Language selector. Current language: English",
	LanguageSpanish:     "SPANISH",
	LanguageSubmit:      "Change language",
	LogoAlt:             "A11ySolutions Logo",
	MailClientFallback:  "If your email client did not open, use this link",
	Menu:                "Menu",
	MetaDescription:     "Comply with the European digital accessibility regulation in just 4 weeks.",
	NotFound:            "Page not found",
	SkipToContent:       "Skip to content",
	SkipToFooter:        "Skip to footer",
}

var spanishMessages = Messages{
	AppTitle:            "Pack Accesibilidad Web | A11ySolutions",
	BannerDismiss:       "Cerrar",
	CloseMenu:           "Cerrar menú",
	ContactUs:           "Contáctanos",
	FooterAbout:         "Haciendo la accesibilidad digital simple y alcanzable para todas las organizaciones.",
	FooterContact:       "Contacto",
	FooterCopyright:     "© {{year}} a11ySolutions. Todos los derechos reservados",
	FooterLinkedIn:      "LinkedIn",
	IAAPLogoAlt:         "Logo de IAAP",
	LanguageEnglish:     "INGLÉS",
	LanguageInstruction: "Use las flechas para navegar y presione Enter para seleccionar",
	LanguageSelector:    "Selector de idioma. Idioma actual: Español",
	LanguageSpanish:     "ESPAÑOL",
	LanguageSubmit:      "Cambiar idioma",
	LogoAlt:             "Logo de A11ysolutions",
	MailClientFallback:  "Si tu cliente de correo no se abrió, usa este enlace",
	Menu:                "Menú",
	MetaDescription:     "Cumple con la normativa europea de accesibilidad digital en solo 4 semanas.",
	NotFound:            "Página no encontrada",
	SkipToContent:       "Saltar al contenido",
	SkipToFooter:        "Ir al pie de página",
}

// MessagesForLanguage returns the chrome translations for a given language code.
func MessagesForLanguage(lang Language) Messages {
	if lang == LanguageSpanish {
		return spanishMessages
	}
	return englishMessages
}

// Name returns the display name of target as written in the language of the messages.
func (m Messages) Name(target Language) string {
	if target == LanguageSpanish {
		return m.LanguageSpanish
	}
	return m.LanguageEnglish
}

// Supported lists the selectable languages in menu order.
func Supported() []Language {
	return []Language{LanguageEnglish, LanguageSpanish}
}

// FromQueryLanguage parses a short language code coming from a query parameter.
func FromQueryLanguage(value string) (Language, bool) {
	code := strings.ToLower(strings.TrimSpace(value))
	if code == string(LanguageEnglish) {
		return LanguageEnglish, true
	}
	if code == string(LanguageSpanish) {
		return LanguageSpanish, true
	}
	return "", false
}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Spanish})

// FromAcceptLanguage picks the best supported language for an Accept-Language header.
// The second return value is false when the header names no supported language.
func FromAcceptLanguage(headerValue string) (Language, bool) {
	if strings.TrimSpace(headerValue) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(headerValue)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	if index == 1 {
		return LanguageSpanish, true
	}
	return LanguageEnglish, true
}

// ResolveLanguage selects the language for a request: the lang query parameter,
// then the htmx current URL, then the lang cookie, then Accept-Language.
func ResolveLanguage(r *http.Request, fallback Language) Language {
	if lang, ok := FromQueryLanguage(r.URL.Query().Get("lang")); ok {
		return lang
	}
	if currentURL := r.Header.Get("HX-Current-URL"); currentURL != "" {
		if parsed, err := url.Parse(currentURL); err == nil {
			if lang, ok := FromQueryLanguage(parsed.Query().Get("lang")); ok {
				return lang
			}
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		if lang, ok := FromQueryLanguage(cookie.Value); ok {
			return lang
		}
	}
	if lang, ok := FromAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return lang
	}
	if _, ok := FromQueryLanguage(string(fallback)); ok {
		return fallback
	}
	return DefaultLanguage
}
