package ticket

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const MaxApplicationNameLength = 20

// Application is the product a ticket is filed against.
type Application struct {
	id   uint
	name string
	slug string
}

func NewApplication(name string) (*Application, error) {
	a := &Application{}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	return a, nil
}

func ReconstructApplication(id uint, name, slug string) *Application {
	return &Application{id: id, name: name, slug: slug}
}

func (a *Application) ID() uint     { return a.id }
func (a *Application) Name() string { return a.name }
func (a *Application) Slug() string { return a.slug }

func (a *Application) SetID(id uint) {
	a.id = id
}

// Rename changes the name and derives a fresh slug from it.
func (a *Application) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("application name is required")
	}
	if utf8.RuneCountInString(name) > MaxApplicationNameLength {
		return fmt.Errorf("application name exceeds maximum length of %d characters", MaxApplicationNameLength)
	}
	slug := Slugify(name)
	if slug == "" {
		return fmt.Errorf("application name must contain letters or digits")
	}
	a.name = name
	a.slug = slug
	return nil
}

// Slugify folds s to lower-case ASCII, drops punctuation and joins words
// with single hyphens.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return b.String()
}
