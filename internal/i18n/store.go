package i18n

import (
	"context"
	"sync"
)

// Store holds the selected language for one page session and notifies
// subscribers synchronously when it changes.
type Store struct {
	mu           sync.Mutex
	language     Language
	announcement string
	nextID       int
	subscribers  []subscriber
}

type subscriber struct {
	id int
	fn func(Language)
}

// NewStore returns a store holding lang, or DefaultLanguage when lang is not supported.
func NewStore(lang Language) *Store {
	if _, ok := FromQueryLanguage(string(lang)); !ok {
		lang = DefaultLanguage
	}
	return &Store{language: lang}
}

// Language returns the current language.
func (s *Store) Language() Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Messages returns the chrome bundle for the current language.
func (s *Store) Messages() Messages {
	return MessagesForLanguage(s.Language())
}

// Set changes the language and runs every subscriber, in subscription order,
// before returning. Subscribers run outside the lock and may read the store.
func (s *Store) Set(lang Language) {
	if _, ok := FromQueryLanguage(string(lang)); !ok {
		return
	}
	s.mu.Lock()
	s.language = lang
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, sub := range subs {
		sub.fn(lang)
	}
}

// Select is Set as triggered from the language selector: it also refreshes the
// live-region announcement for assistive technology.
func (s *Store) Select(lang Language) {
	s.Set(lang)
	current := s.Language()
	messages := MessagesForLanguage(current)
	s.mu.Lock()
	s.announcement = messages.LanguageSelector + ". " + messages.Name(current)
	s.mu.Unlock()
}

// Announcement returns the text of the polite live region.
func (s *Store) Announcement() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcement
}

// Subscribe registers fn and returns a function removing it.
func (s *Store) Subscribe(fn func(Language)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

type storeKey struct{}

// WithStore returns a context carrying store.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// StoreFrom returns the store installed by the locale middleware. When none
// is present a detached store on DefaultLanguage is returned.
func StoreFrom(ctx context.Context) *Store {
	if store, ok := ctx.Value(storeKey{}).(*Store); ok && store != nil {
		return store
	}
	return NewStore(DefaultLanguage)
}

// LanguageFrom is shorthand for StoreFrom(ctx).Language().
func LanguageFrom(ctx context.Context) Language {
	return StoreFrom(ctx).Language()
}
