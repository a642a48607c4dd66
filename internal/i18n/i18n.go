package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string, localesDir string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	if localesDir == "" {
		localesDir = "locales"
	}

	files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "GitHub bot that roasts pull requests with AI-generated sarcasm"

	[app_description]
	other = "truss-review listens for pull request webhooks, asks Gemini for a sarcastic code roast, pairs it with a matching GIF and posts the result as a PR comment."

	[serve_command_usage]
	other = "Start the webhook server"

	[doctor_command_usage]
	other = "Validate configuration and secrets without serving"

	[doctor_ok]
	other = "Everything looks good. Ready to roast."

	[server_starting]
	other = "Webhook server listening on {{.Addr}}"

	[server_shutting_down]
	other = "Shutting down webhook server..."

	[comment_greeting]
	other = "👋 Hey @{{.Author}}, thanks for the PR! Here's your complimentary roast:"

	[comment_fallback]
	other = "👋 Hey @{{.Author}}, I tried to roast your PR but my wit generator broke down. Consider yourself spared... this time."

	[error_missing_api_key]
	other = "Gemini API key is not configured. Set GEMINI_API_KEY in the environment."

	[error_empty_roast]
	other = "the AI returned an empty roast"

	[error_empty_search_term]
	other = "the AI returned an empty search term"

	[warning_pr_too_large]
	other = "The diff for PR #{{.PRNumber}} is too large for the raw diff endpoint"
	`
