// Package page composes the sections, forms and chrome of a rendered page.
package page

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"a11ypack/internal/content"
	"a11ypack/internal/forms"
	"a11ypack/internal/i18n"
	"a11ypack/internal/mailto"
)

// Kind selects which sections a page renders.
type Kind string

const (
	KindPack    Kind = "pack"
	KindContact Kind = "contact"
)

// SectionOrder is the fixed order of the pack page sections.
var SectionOrder = []string{
	content.SectionHero,
	content.SectionBenefits,
	content.SectionInclusions,
	content.SectionAudience,
	content.SectionLegal,
	content.SectionTrust,
	content.SectionPricing,
}

// Anchors used by the skip links.
const (
	MainAnchor   = "hero-title"
	FooterAnchor = "footer-name"
)

// SkipLink is a link jumping over the header.
type SkipLink struct {
	Label string
	Href  string
}

// LanguageOption is one entry of the language selector.
type LanguageOption struct {
	Code     i18n.Language
	Label    string
	Selected bool
}

// Layout is everything the page template needs.
type Layout struct {
	Kind         Kind
	Language     i18n.Language
	Messages     i18n.Messages
	Path         string
	Sections     []content.Section
	MainForm     forms.View
	Newsletter   forms.View
	SkipLinks    []SkipLink
	Languages    []LanguageOption
	Announcement string
	Copyright    string
	ContactEmail string
	Year         int
}

// Builder assembles layouts from the content store.
type Builder struct {
	content *content.Store
	now     func() time.Time
}

// NewBuilder returns a builder reading section copy from store.
func NewBuilder(store *content.Store) *Builder {
	return &Builder{content: store, now: time.Now}
}

// Options carries per-request state into Build.
type Options struct {
	Path         string
	Announcement string
	// Forms replaces the idle rendering of a form, keyed by form ID.
	Forms map[string]forms.View
}

// Build lays out a page of the given kind in lang.
func (b *Builder) Build(kind Kind, lang i18n.Language, opts Options) (Layout, error) {
	messages := i18n.MessagesForLanguage(lang)
	year := b.now().Year()
	layout := Layout{
		Kind:         kind,
		Language:     lang,
		Messages:     messages,
		Path:         opts.Path,
		Announcement: opts.Announcement,
		Copyright:    strings.ReplaceAll(messages.FooterCopyright, "{{year}}", strconv.Itoa(year)),
		ContactEmail: mailto.Address,
		Year:         year,
		SkipLinks: []SkipLink{
			{Label: messages.SkipToContent, Href: "#" + MainAnchor},
			{Label: messages.SkipToFooter, Href: "#" + FooterAnchor},
		},
	}
	for _, code := range i18n.Supported() {
		layout.Languages = append(layout.Languages, LanguageOption{
			Code:     code,
			Label:    messages.Name(code),
			Selected: code == lang,
		})
	}

	mainFormID := forms.PackRequestID
	if kind == KindContact {
		mainFormID = forms.ContactID
	} else {
		doc, err := b.content.Document(lang)
		if err != nil {
			return Layout{}, fmt.Errorf("load content: %w", err)
		}
		for _, key := range SectionOrder {
			section, err := doc.Section(key)
			if err != nil {
				return Layout{}, err
			}
			layout.Sections = append(layout.Sections, section)
		}
	}

	layout.MainForm = formView(mainFormID, lang, opts.Forms)
	layout.Newsletter = formView(forms.NewsletterID, lang, opts.Forms)
	return layout, nil
}

func formView(id string, lang i18n.Language, overrides map[string]forms.View) forms.View {
	if view, ok := overrides[id]; ok {
		return view
	}
	def, err := forms.Lookup(id)
	if err != nil {
		return forms.View{}
	}
	return forms.Empty(def, lang)
}

// Anchors lists every element ID the layout renders that navigation may target.
func (l Layout) Anchors() map[string]bool {
	anchors := map[string]bool{
		"main-content": true,
		"footer":       true,
	}
	for _, section := range l.Sections {
		anchors[section.ID] = true
		anchors[section.HeadingID] = true
	}
	if l.Kind == KindContact {
		anchors[MainAnchor] = true
	}
	for _, view := range []forms.View{l.MainForm, l.Newsletter} {
		if view.SectionID != "" {
			anchors[view.SectionID] = true
		}
		for _, field := range view.Fields {
			anchors[field.ID] = true
		}
	}
	return anchors
}
