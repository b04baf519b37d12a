// Package messages resolves user-facing strings from the embedded
// translation files.
package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	LanguageEn   = "en"
	LanguagePtBR = "pt-BR"
)

//go:embed locales/*.toml
var locales embed.FS

// NewBundle loads every embedded translation file. English is the fallback.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(locales, path.Join("locales", f.Name())); err != nil {
			return nil, fmt.Errorf("load translation %s: %w", f.Name(), err)
		}
	}
	return bundle, nil
}

// Catalog localizes message ids for one language.
type Catalog struct {
	lang      string
	localizer *i18n.Localizer
	log       *zap.Logger
}

// New builds a Catalog for lang, falling back to English for missing ids.
func New(lang string, log *zap.Logger) (*Catalog, error) {
	bundle, err := NewBundle()
	if err != nil {
		return nil, err
	}
	return NewWithBundle(bundle, lang, log), nil
}

func NewWithBundle(bundle *i18n.Bundle, lang string, log *zap.Logger) *Catalog {
	if lang == "" {
		lang = LanguageEn
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		lang:      lang,
		localizer: i18n.NewLocalizer(bundle, lang, LanguageEn),
		log:       log,
	}
}

// English is the catalog used when nothing else is configured.
func English() *Catalog {
	c, err := New(LanguageEn, nil)
	if err != nil {
		// The files are embedded; failing to parse them is a build defect.
		panic(err)
	}
	return c
}

func (c *Catalog) Lang() string { return c.lang }

// T returns the message for id. Unknown ids come back unchanged.
func (c *Catalog) T(id string) string {
	return c.TData(id, nil)
}

// TData is T with template data ({{.Name}} placeholders).
func (c *Catalog) TData(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		c.log.Warn("translation not found", zap.String("lang", c.lang), zap.String("message_id", id), zap.Error(err))
		return id
	}
	return msg
}
