// Package content loads the marketing copy of the page sections from
// embedded YAML documents, one per language.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"a11ypack/internal/cache"
	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/i18n"
)

//go:embed data/*.yaml
var embedded embed.FS

// Section IDs in the order they appear on the pack page.
const (
	SectionHero       = "hero"
	SectionBenefits   = "benefits"
	SectionInclusions = "inclusions"
	SectionAudience   = "audience"
	SectionLegal      = "legal"
	SectionTrust      = "trust"
	SectionPricing    = "pricing"
)

// Title is a heading with an optional highlighted fragment.
type Title struct {
	Before    string `yaml:"before"`
	Highlight string `yaml:"highlight"`
	After     string `yaml:"after"`
}

// String returns the heading as plain text.
func (t Title) String() string {
	return t.Before + t.Highlight + t.After
}

// Card is a titled block inside a section.
type Card struct {
	Title    string        `yaml:"title"`
	Body     string        `yaml:"body"`
	Items    []string      `yaml:"items"`
	BodyHTML template.HTML `yaml:"-"`
}

// Logo is an image in the trust strip.
type Logo struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt"`
}

// Action is a call to action pointing to an anchor on the page.
type Action struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// Price is the pricing block.
type Price struct {
	Title    string `yaml:"title"`
	Amount   string `yaml:"amount"`
	Note     string `yaml:"note"`
	Duration string `yaml:"duration"`
	Support  string `yaml:"support"`
}

// Section is the copy of one page section. Markdown fields are rendered
// into their *HTML counterparts when the document is loaded.
type Section struct {
	ID        string        `yaml:"id"`
	HeadingID string        `yaml:"heading_id"`
	Title     Title         `yaml:"title"`
	Subtitle  string        `yaml:"subtitle"`
	Intro     string        `yaml:"intro"`
	Items     []string      `yaml:"items"`
	Cards     []Card        `yaml:"cards"`
	Logos     []Logo        `yaml:"logos"`
	Price     *Price        `yaml:"price"`
	Note      string        `yaml:"note"`
	Action    *Action       `yaml:"action"`
	IntroHTML template.HTML `yaml:"-"`
	NoteHTML  template.HTML `yaml:"-"`
}

// Document is the copy of every section in one language.
type Document struct {
	Language i18n.Language      `yaml:"language"`
	Sections map[string]Section `yaml:"sections"`
}

// Section returns the section with the given key.
func (d *Document) Section(key string) (Section, error) {
	section, ok := d.Sections[key]
	if !ok {
		return Section{}, fmt.Errorf("%w: section %q in %s", a11yerrors.ErrContentNotFound, key, d.Language)
	}
	return section, nil
}

// Store loads documents on demand and keeps them in a cache.
type Store struct {
	fsys     fs.FS
	cache    *cache.Cache[*Document]
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewStore reads documents named <lang>.yaml from the root of fsys.
func NewStore(fsys fs.FS, ttl time.Duration) *Store {
	return &Store{
		fsys:     fsys,
		cache:    cache.New[*Document](ttl),
		markdown: goldmark.New(),
		policy:   newSectionPolicy(),
	}
}

// NewEmbeddedStore serves the documents compiled into the binary.
func NewEmbeddedStore(ttl time.Duration) *Store {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return NewStore(sub, ttl)
}

func newSectionPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("span", "p")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Cache exposes the document cache so callers can run its janitor.
func (s *Store) Cache() *cache.Cache[*Document] {
	return s.cache
}

// Document returns the copy for lang, falling back to the default language
// when lang has no document.
func (s *Store) Document(lang i18n.Language) (*Document, error) {
	doc, err := s.cache.GetOrLoad(string(lang), func() (*Document, error) {
		return s.load(lang)
	})
	if err == nil || lang == i18n.DefaultLanguage {
		return doc, err
	}
	return s.Document(i18n.DefaultLanguage)
}

func (s *Store) load(lang i18n.Language) (*Document, error) {
	name := string(lang) + ".yaml"
	raw, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", a11yerrors.ErrContentNotFound, name, err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if doc.Language == "" {
		doc.Language = lang
	}
	for key, section := range doc.Sections {
		if section.IntroHTML, err = s.render(section.Intro); err != nil {
			return nil, fmt.Errorf("render %s intro: %w", key, err)
		}
		if section.NoteHTML, err = s.render(section.Note); err != nil {
			return nil, fmt.Errorf("render %s note: %w", key, err)
		}
		for i := range section.Cards {
			if section.Cards[i].BodyHTML, err = s.render(section.Cards[i].Body); err != nil {
				return nil, fmt.Errorf("render %s card %d: %w", key, i, err)
			}
		}
		doc.Sections[key] = section
	}
	return &doc, nil
}

// render converts Markdown to sanitized HTML.
func (s *Store) render(source string) (template.HTML, error) {
	if source == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes())), nil
}
