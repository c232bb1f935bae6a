package translation

import (
	"context"
	"sync"

	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
)

// Localizer resolves message keys from the translations table, falling back
// to French and then to the built-in messages.
type Localizer struct {
	repo Repository

	mu      sync.RWMutex
	entries map[string]Translation
}

func NewLocalizer(repo Repository) *Localizer {
	return &Localizer{repo: repo, entries: make(map[string]Translation)}
}

// Load replaces the cached translations with the stored ones.
func (l *Localizer) Load(ctx context.Context) error {
	items, err := l.repo.List(ctx)
	if err != nil {
		return err
	}
	entries := make(map[string]Translation, len(items))
	for _, t := range items {
		entries[t.Key] = t
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

func (l *Localizer) T(locale i18n.Locale, key string, vars map[string]string) string {
	l.mu.RLock()
	t, ok := l.entries[key]
	l.mu.RUnlock()

	if ok {
		if text := t.Text(locale); text != "" {
			return i18n.Interpolate(text, vars)
		}
	}
	return i18n.Static{}.T(locale, key, vars)
}

// Messages returns every cached key resolved for locale.
func (l *Localizer) Messages(locale i18n.Locale) map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]string, len(l.entries))
	for key, t := range l.entries {
		out[key] = t.Text(locale)
	}
	return out
}
