package campaign

import (
	"strings"
	"unicode"
)

// Slugify derives a URL slug from a title: lowercased, punctuation stripped,
// whitespace runs collapsed to single hyphens. Accented letters are kept, the
// upstream accepts them in slugs.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteRune('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}

// SlugTracker implements the form's slug behavior: the slug follows the title
// until the user edits it by hand, after which title changes stop touching it.
type SlugTracker struct {
	slug   string
	manual bool
}

// SetTitle updates the derived slug unless the user took over.
func (t *SlugTracker) SetTitle(title string) {
	if t.manual {
		return
	}
	t.slug = Slugify(title)
}

// Override records a manual slug edit; the tracker stops deriving after this.
func (t *SlugTracker) Override(slug string) {
	t.manual = true
	t.slug = Slugify(slug)
}

// Value returns the current slug.
func (t *SlugTracker) Value() string {
	return t.slug
}

// Manual reports whether the slug was edited by hand.
func (t *SlugTracker) Manual() bool {
	return t.manual
}
