package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
server:
  port: 19000
database:
  path: `+filepath.Join(dir, "test.db")+`
jwt:
  secret_key: test-secret
admin:
  password: test-password
ai_gateway:
  api_base: https://gateway.example.com/v1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 19000 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.AI.Model != "google/gemini-2.5-flash-lite" {
		t.Errorf("Model = %q", cfg.AI.Model)
	}
	if cfg.AI.Temperature != 0.1 {
		t.Errorf("Temperature = %v", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens != 300 {
		t.Errorf("MaxTokens = %d", cfg.AI.MaxTokens)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis must be disabled when host is empty")
	}
	if cfg.Redis.MaxConcurrent != 16 {
		t.Errorf("MaxConcurrent = %d", cfg.Redis.MaxConcurrent)
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "*" {
		t.Errorf("Origins = %v", cfg.CORS.Origins)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing jwt secret",
			content: `
admin:
  password: x
ai_gateway:
  api_base: https://gateway.example.com/v1
`,
		},
		{
			name: "missing admin password",
			content: `
jwt:
  secret_key: x
ai_gateway:
  api_base: https://gateway.example.com/v1
`,
		},
		{
			name: "missing gateway base",
			content: `
jwt:
  secret_key: x
admin:
  password: x
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Fatal("LoadConfig() expected error")
			}
		})
	}
}
