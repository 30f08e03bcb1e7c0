package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Prefs     PrefsConfig     `yaml:"prefs"`
	Deepgram  DeepgramConfig  `yaml:"deepgram"`
	Inference InferenceConfig `yaml:"inference"`
	Upload    UploadConfig    `yaml:"upload"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"120s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min" env:"SERVER_RATE_LIMIT_PER_MIN" env-default:"60"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// PrefsConfig holds the local display-preferences store settings.
// Section open/closed state lives here, apart from the durable documents,
// so wiping the file just resets every section to its default (open).
type PrefsConfig struct {
	Path string `yaml:"path" env:"PREFS_PATH" env-default:"./talklens-prefs.db"`
}

// DeepgramConfig holds speech-to-text provider settings.
type DeepgramConfig struct {
	APIKey  string        `yaml:"api_key" env:"DEEPGRAM_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"DEEPGRAM_BASE_URL" env-default:"https://api.deepgram.com"`
	Model   string        `yaml:"model"    env:"DEEPGRAM_MODEL"    env-default:"nova-3"`
	Timeout time.Duration `yaml:"timeout"  env:"DEEPGRAM_TIMEOUT"  env-default:"90s"`
}

// InferenceConfig holds reasoning provider settings.
// Backend selects the provider implementation: "groq" (OpenAI-compatible
// chat completions with native JSON mode) or "anthropic".
type InferenceConfig struct {
	Backend     string        `yaml:"backend"     env:"INFERENCE_BACKEND"     env-default:"groq"`
	APIKey      string        `yaml:"api_key"     env:"INFERENCE_API_KEY"`
	BaseURL     string        `yaml:"base_url"    env:"INFERENCE_BASE_URL"    env-default:"https://api.groq.com/openai"`
	Model       string        `yaml:"model"       env:"INFERENCE_MODEL"       env-default:"meta-llama/llama-4-scout-17b-16e-instruct"`
	Temperature float64       `yaml:"temperature" env:"INFERENCE_TEMPERATURE" env-default:"0.2"`
	MaxTokens   int           `yaml:"max_tokens"  env:"INFERENCE_MAX_TOKENS"  env-default:"4096"`
	Timeout     time.Duration `yaml:"timeout"     env:"INFERENCE_TIMEOUT"     env-default:"60s"`
}

// UploadConfig holds input-size limits enforced before any provider call.
type UploadConfig struct {
	MaxAudioBytes int64 `yaml:"max_audio_bytes" env:"UPLOAD_MAX_AUDIO_BYTES" env-default:"104857600"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
