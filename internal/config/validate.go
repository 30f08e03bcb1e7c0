package config

import (
	"fmt"
	"strings"
)

const maxAudioBytesCeiling = 1 << 30 // 1 GiB sanity ceiling

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535 (got %d)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %v)", c.Server.ShutdownTimeout)
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns %d must be >= min_conns %d",
			c.Database.MaxConns, c.Database.MinConns)
	}

	switch strings.ToLower(c.Inference.Backend) {
	case "groq", "anthropic":
	default:
		return fmt.Errorf("inference.backend must be groq or anthropic (got %q)", c.Inference.Backend)
	}
	if c.Inference.Temperature < 0 || c.Inference.Temperature > 2 {
		return fmt.Errorf("inference.temperature must be 0-2 (got %v)", c.Inference.Temperature)
	}
	if c.Inference.MaxTokens <= 0 {
		return fmt.Errorf("inference.max_tokens must be > 0 (got %d)", c.Inference.MaxTokens)
	}

	if c.Upload.MaxAudioBytes <= 0 {
		return fmt.Errorf("upload.max_audio_bytes must be > 0 (got %d)", c.Upload.MaxAudioBytes)
	}
	if c.Upload.MaxAudioBytes > maxAudioBytesCeiling {
		return fmt.Errorf("upload.max_audio_bytes %d exceeds 1 GiB ceiling", c.Upload.MaxAudioBytes)
	}

	if c.Prefs.Path == "" {
		return fmt.Errorf("prefs.path must not be empty")
	}

	return nil
}
