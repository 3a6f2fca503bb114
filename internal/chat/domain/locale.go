package domain

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/locales.yaml
var localesYAML []byte

// QuestionText holds the localized strings of one qualification question.
// The prompt may contain a {name} placeholder.
type QuestionText struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Prompt      string `yaml:"prompt"`
}

// Triggers enumerates the phrases that flip controller flags when found in
// an assistant reply. Keeping them as data makes the intent detection
// auditable and extending a language a data change.
type Triggers struct {
	ShowProperty []string `yaml:"show_property"`
	StartLead    []string `yaml:"start_lead"`
}

// Locale is the full string table of one language.
type Locale struct {
	Welcome    string                  `yaml:"welcome"`
	NamePrompt string                  `yaml:"name_prompt"`
	Fallback   string                  `yaml:"fallback"`
	ThankYou   string                  `yaml:"thank_you"`
	Apology    string                  `yaml:"apology"`
	Greetings  []string                `yaml:"greetings"`
	Triggers   Triggers                `yaml:"triggers"`
	Questions  map[string]QuestionText `yaml:"questions"`
}

// IsGreeting reports whether the turn matches a greeting token by
// case-insensitive containment.
func (l Locale) IsGreeting(text string) bool {
	lowered := strings.ToLower(text)
	for _, g := range l.Greetings {
		if strings.Contains(lowered, strings.ToLower(g)) {
			return true
		}
	}
	return false
}

// QuestionPrompt renders the prompt for a question field, interpolating the
// user's name.
func (l Locale) QuestionPrompt(field, name string) string {
	return strings.ReplaceAll(l.Questions[field].Prompt, "{name}", name)
}

// ThankYouMessage renders the personalized post-submission message.
func (l Locale) ThankYouMessage(name, phone string) string {
	out := strings.ReplaceAll(l.ThankYou, "{name}", name)
	return strings.ReplaceAll(out, "{phone}", phone)
}

// Bundle holds the string tables of every supported language.
type Bundle struct {
	locales map[string]Locale
}

// DefaultLanguage is used when a session does not specify one.
const DefaultLanguage = "en"

// LoadBundle parses the embedded locale tables and verifies every language
// covers the full question sequence.
func LoadBundle() (*Bundle, error) {
	locales := make(map[string]Locale)
	if err := yaml.Unmarshal(localesYAML, &locales); err != nil {
		return nil, fmt.Errorf("parse locales: %w", err)
	}
	if _, ok := locales[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("locales missing default language %q", DefaultLanguage)
	}
	for lang, loc := range locales {
		for _, q := range Questions {
			text, ok := loc.Questions[q.Field]
			if !ok || text.Prompt == "" {
				return nil, fmt.Errorf("locale %q missing question %q", lang, q.Field)
			}
		}
	}
	return &Bundle{locales: locales}, nil
}

// MustLoadBundle panics on malformed embedded locales. Use at startup only.
func MustLoadBundle() *Bundle {
	b, err := LoadBundle()
	if err != nil {
		panic(err)
	}
	return b
}

// Supported reports whether the language tag has a string table.
func (b *Bundle) Supported(lang string) bool {
	_, ok := b.locales[lang]
	return ok
}

// Locale returns the string table for a language, falling back to the
// default language for unknown tags.
func (b *Bundle) Locale(lang string) Locale {
	if loc, ok := b.locales[lang]; ok {
		return loc
	}
	return b.locales[DefaultLanguage]
}

// DetectTriggers scans an assistant reply for trigger phrases across every
// supported language, case-insensitively.
func (b *Bundle) DetectTriggers(reply string) (showProperty, startLead bool) {
	lowered := strings.ToLower(reply)
	for _, loc := range b.locales {
		for _, phrase := range loc.Triggers.ShowProperty {
			if strings.Contains(lowered, strings.ToLower(phrase)) {
				showProperty = true
			}
		}
		for _, phrase := range loc.Triggers.StartLead {
			if strings.Contains(lowered, strings.ToLower(phrase)) {
				startLead = true
			}
		}
	}
	return showProperty, startLead
}
