package localization

import (
	"strings"

	"chokwadi/sources/features"
	"chokwadi/sources/texting/transform"
	"chokwadi/sources/tracing"

	"github.com/pemistahl/lingua-go"
)

const (
	MinTextLengthForDetection = 7
	MaxTextLengthForDetection = 256
)

// LanguageDetector picks the reply language for canned messages. Users write in
// Shona or English; analysis responses mirror the user's language on the
// provider side, but welcome/error/limit texts are localized here.
type LanguageDetector struct {
	detector lingua.LanguageDetector
	features *features.FeatureManager
	config   *LocalizationConfig
	log      *tracing.Logger
}

func NewLanguageDetector(features *features.FeatureManager, config *LocalizationConfig, log *tracing.Logger) *LanguageDetector {
	languages := []lingua.Language{lingua.English, lingua.Shona}
	detector := lingua.NewLanguageDetectorBuilder().FromLanguages(languages...).WithPreloadedLanguageModels().Build()

	log.I("Language detector initialized")
	return &LanguageDetector{detector: detector, features: features, config: config, log: log}
}

func (x *LanguageDetector) DetectLanguage(text string) string {
	defer tracing.ProfilePoint(x.log, "Language detection completed", "language.detect", "text_length", len(text))()

	if !x.features.IsEnabledOrDefault(features.FeatureLocalizationAuto, true) {
		x.log.D("Language detection disabled by feature flag")
		return x.config.DefaultLanguage
	}

	cleanText := strings.TrimSpace(text)

	if len(cleanText) < MinTextLengthForDetection {
		x.log.D("Text too short for detection, using default language", "text_length", len(cleanText), "min_length", MinTextLengthForDetection)
		return x.config.DefaultLanguage
	}

	truncatedText := transform.SmartTruncate(cleanText, MaxTextLengthForDetection)

	if language, exists := x.detector.DetectLanguageOf(truncatedText); exists {
		langCode := x.linguaToCode(language)
		x.log.I("Language detected", tracing.Language, langCode)
		return langCode
	}

	x.log.D("Could not detect language, using default language")
	return x.config.DefaultLanguage
}

func (x *LanguageDetector) linguaToCode(lang lingua.Language) string {
	switch lang {
	case lingua.Shona:
		return "sn"
	case lingua.English:
		return "en"
	default:
		return "en"
	}
}
