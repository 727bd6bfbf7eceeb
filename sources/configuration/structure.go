package configuration

import (
	"time"
)

type Config struct {
	Service      ServiceConfig      `yaml:"service"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Gateway      GatewayConfig      `yaml:"gateway"`
	AI           AIConfig           `yaml:"ai"`
	Routing      RoutingConfig      `yaml:"routing"`
	Network      NetworkConfig      `yaml:"network"`
	Throttler    ThrottlerConfig    `yaml:"throttler"`
	Features     FeaturesConfig     `yaml:"features"`
	Localization LocalizationConfig `yaml:"localization"`
}

type ServiceConfig struct {
	WebhookPort            int `yaml:"webhook_port"`
	StartupPort            int `yaml:"startup_port"`
	SystemMetricsPort      int `yaml:"system_metrics_port"`
	ApplicationMetricsPort int `yaml:"application_metrics_port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"ssl_mode"`
	TimeZone string `yaml:"time_zone"`
}

type RedisConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// GatewayConfig carries the WhatsApp messaging gateway credential pair. Media
// attachments hosted by the gateway are fetched with basic auth from these.
type GatewayConfig struct {
	AccountSID     string `yaml:"account_sid"`
	AuthToken      string `yaml:"auth_token"`
	WhatsAppNumber string `yaml:"whatsapp_number"`
	ReplyChunkSize int    `yaml:"reply_chunk_size"`
}

type AIConfig struct {
	AnthropicToken string `yaml:"anthropic_token"`
	AnthropicModel string `yaml:"anthropic_model"`

	OpenAIToken     string `yaml:"openai_token"`
	OpenAIChatModel string `yaml:"openai_chat_model"`
	WhisperModel    string `yaml:"whisper_model"`

	MaxResponseTokens int `yaml:"max_response_tokens"`
	PromptTokenBudget int `yaml:"prompt_token_budget"`

	Pricing map[string]ModelPricing `yaml:"pricing"`
}

// ModelPricing is kept as strings and parsed with shopspring/decimal at the
// call site, so yaml floats never round trip through float64.
type ModelPricing struct {
	InputPerM  string `yaml:"input_per_m"`
	OutputPerM string `yaml:"output_per_m"`
}

type RoutingConfig struct {
	InitialMode   string `yaml:"initial_mode"`
	AdminIdentity string `yaml:"admin_identity"`
}

type NetworkConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	ProxyEnabled   bool   `yaml:"proxy_enabled"`
	ProxyAddress   string `yaml:"proxy_address"`
	ProxyUser      string `yaml:"proxy_user"`
	ProxyPass      string `yaml:"proxy_pass"`
}

type ThrottlerConfig struct {
	MaxRequestsPerHour int `yaml:"max_requests_per_hour"`
}

type FeaturesConfig struct {
	UnleashAPIURL     string `yaml:"unleash_api_url"`
	UnleashAppName    string `yaml:"unleash_app_name"`
	UnleashInstanceID string `yaml:"unleash_instance_id"`
	RefreshInterval   int    `yaml:"refresh_interval"`
}

type LocalizationConfig struct {
	DefaultLanguage    string   `yaml:"default_language"`
	SupportedLanguages []string `yaml:"supported_languages"`
}
