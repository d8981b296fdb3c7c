package i18n

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestMessagesForLanguage(t *testing.T) {
	if MessagesForLanguage(LanguageEnglish).SkipToContent != "Skip to content" {
		t.Fatalf("expected English messages")
	}
	if MessagesForLanguage(LanguageSpanish).SkipToContent != "Saltar al contenido" {
		t.Fatalf("expected Spanish messages")
	}
	unknown := MessagesForLanguage(Language("xx"))
	if unknown.AppTitle != englishMessages.AppTitle {
		t.Fatalf("expected fallback to English")
	}
}

func TestMessagesComplete(t *testing.T) {
	for _, lang := range Supported() {
		value := reflect.ValueOf(MessagesForLanguage(lang))
		for i := 0; i < value.NumField(); i++ {
			if value.Field(i).String() == "" {
				t.Errorf("%s: field %s is empty", lang, value.Type().Field(i).Name)
			}
		}
	}
}

func TestMessagesName(t *testing.T) {
	es := MessagesForLanguage(LanguageSpanish)
	if es.Name(LanguageEnglish) != "INGLÉS" || es.Name(LanguageSpanish) != "ESPAÑOL" {
		t.Fatalf("unexpected Spanish language names: %q %q", es.Name(LanguageEnglish), es.Name(LanguageSpanish))
	}
}

func TestFromQueryLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
		ok       bool
	}{
		{"en", LanguageEnglish, true},
		{"es", LanguageSpanish, true},
		{" ES ", LanguageSpanish, true},
		{"fr", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := FromQueryLanguage(tt.input)
			if ok != tt.ok || got != tt.expected {
				t.Fatalf("expected (%v,%v), got (%v,%v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	tests := []struct {
		header   string
		expected Language
		ok       bool
	}{
		{"es-ES,es;q=0.9", LanguageSpanish, true},
		{"es-MX", LanguageSpanish, true},
		{"en-US,en;q=0.9", LanguageEnglish, true},
		{"de,en;q=0.5", LanguageEnglish, true},
		{"pt-BR, en-US", LanguageEnglish, true},
		{"en;q=0.2,es;q=0.8", LanguageSpanish, true},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := FromAcceptLanguage(tt.header)
			if got != tt.expected || ok != tt.ok {
				t.Fatalf("expected (%s,%v), got (%s,%v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		headers  map[string]string
		cookie   string
		fallback Language
		expected Language
	}{
		{name: "query wins", target: "/?lang=es", headers: map[string]string{"Accept-Language": "en"}, cookie: "en", fallback: LanguageEnglish, expected: LanguageSpanish},
		{name: "htmx current url", target: "/forms/contact", headers: map[string]string{"HX-Current-URL": "https://example.com/?lang=es"}, fallback: LanguageEnglish, expected: LanguageSpanish},
		{name: "cookie before header", target: "/", headers: map[string]string{"Accept-Language": "en-US"}, cookie: "es", fallback: LanguageEnglish, expected: LanguageSpanish},
		{name: "accept language", target: "/", headers: map[string]string{"Accept-Language": "es-AR,es;q=0.9"}, fallback: LanguageEnglish, expected: LanguageSpanish},
		{name: "invalid query ignored", target: "/?lang=xx", fallback: LanguageSpanish, expected: LanguageSpanish},
		{name: "invalid fallback", target: "/", fallback: Language("xx"), expected: LanguageEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if got := ResolveLanguage(req, tt.fallback); got != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
