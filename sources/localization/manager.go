package localization

import (
	"embed"
	"fmt"
	"sync"

	"chokwadi/sources/tracing"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localesFS embed.FS

type LocalizationManager struct {
	bundle   *i18n.Bundle
	detector *LanguageDetector
	config   *LocalizationConfig
	log      *tracing.Logger
	locbuff  sync.Map
}

func NewLocalizationManager(
	config *LocalizationConfig,
	detector *LanguageDetector,
	log *tracing.Logger,
) (*LocalizationManager, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, lang := range config.SupportedLanguages {
		filename := fmt.Sprintf("locales/active.%s.toml", lang)

		data, err := localesFS.ReadFile(filename)
		if err != nil {
			log.E("Failed to read locale file", "filename", filename, tracing.InnerError, err)
			return nil, fmt.Errorf("failed to read locale file %s: %w", filename, err)
		}

		if _, err := bundle.ParseMessageFileBytes(data, filename); err != nil {
			log.E("Failed to parse locale file", "filename", filename, tracing.InnerError, err)
			return nil, fmt.Errorf("failed to parse locale file %s: %w", filename, err)
		}

		log.I("Loaded locale file", "filename", filename)
	}

	log.I("LocalizationManager initialized successfully")
	return &LocalizationManager{bundle: bundle, detector: detector, config: config, log: log}, nil
}

// GetLocalizer picks a localizer from the language the user writes in, caching
// per detected language code.
func (x *LocalizationManager) GetLocalizer(userText string) *i18n.Localizer {
	lang := x.detector.DetectLanguage(userText)

	if cached, ok := x.locbuff.Load(lang); ok {
		return cached.(*i18n.Localizer)
	}

	localizer := i18n.NewLocalizer(x.bundle, lang, "en")
	x.locbuff.Store(lang, localizer)
	return localizer
}

func (x *LocalizationManager) LocalizeBy(userText string, messageID string) string {
	return x.LocalizeByTd(userText, messageID, nil)
}

func (x *LocalizationManager) LocalizeByTd(userText string, messageID string, templateData map[string]interface{}) string {
	defer tracing.ProfilePoint(x.log, "Localization completed", "localization.localize")()

	localizer := x.GetLocalizer(userText)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: templateData})
	if err != nil {
		x.log.E("Failed to localize message", "message_id", messageID, tracing.InnerError, err)
		return messageID
	}

	return msg
}
