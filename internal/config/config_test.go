package config_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/vouch/internal/config"
	"github.com/JaimeStill/vouch/internal/photos"
)

const baseConfig = `
shutdown_timeout = "20s"

[server]
port = 8080

[database]
host = "localhost"
name = "vouch"
user = "vouch"
password = "vouch"

[storage]
provider = "minio"
container_name = "photos"
endpoint = "localhost:9000"
access_key = "minioadmin"
secret_key = "minioadmin"

[ocr]
languages = ["jpn", "eng"]
timeout = "15s"

[classifier]
keywords = ["運転免許証", "氏名"]

[api]
base_path = "/api"
max_upload_size = "1MB"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "db.internal"

[ocr]
timeout = "45s"
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadBase(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.ShutdownTimeoutDuration() != 20*time.Second {
		t.Errorf("shutdown_timeout: got %v, want 20s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.Storage.Provider != "minio" {
		t.Errorf("storage provider: got %s, want minio", cfg.Storage.Provider)
	}
	if cfg.OCR.TimeoutDuration() != 15*time.Second {
		t.Errorf("ocr timeout: got %v, want 15s", cfg.OCR.TimeoutDuration())
	}
	if !slices.Equal(cfg.Classifier.Keywords, []string{"運転免許証", "氏名"}) {
		t.Errorf("keywords: got %v", cfg.Classifier.Keywords)
	}
	if cfg.API.MaxUploadSizeBytes() != 1024*1024 {
		t.Errorf("max upload: got %d, want 1MB", cfg.API.MaxUploadSizeBytes())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv(config.EnvVouchEnv, "staging")

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Env() != "staging" {
		t.Errorf("env: got %s, want staging", cfg.Env())
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host: got %s, want db.internal", cfg.Database.Host)
	}
	if cfg.Database.Name != "vouch" {
		t.Errorf("db name should survive overlay: got %s", cfg.Database.Name)
	}
	if cfg.OCR.TimeoutDuration() != 45*time.Second {
		t.Errorf("ocr timeout: got %v, want 45s", cfg.OCR.TimeoutDuration())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	t.Setenv("VOUCH_SERVER_PORT", "7070")
	t.Setenv("VOUCH_DB_HOST", "pg")
	t.Setenv("VOUCH_OCR_LANGUAGES", "eng")
	t.Setenv("VOUCH_CLASSIFIER_KEYWORDS", "健康保険証,マイナンバー")
	t.Setenv("VOUCH_API_MAX_UPLOAD_SIZE", "512KB")

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("port: got %d, want 7070", cfg.Server.Port)
	}
	if cfg.Database.Host != "pg" {
		t.Errorf("db host: got %s, want pg", cfg.Database.Host)
	}
	if !slices.Equal(cfg.OCR.Languages, []string{"eng"}) {
		t.Errorf("languages: got %v, want [eng]", cfg.OCR.Languages)
	}
	if !slices.Equal(cfg.Classifier.Keywords, []string{"健康保険証", "マイナンバー"}) {
		t.Errorf("keywords: got %v", cfg.Classifier.Keywords)
	}
	if cfg.API.MaxUploadSizeBytes() != 512*1024 {
		t.Errorf("max upload: got %d, want 512KB", cfg.API.MaxUploadSizeBytes())
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("VOUCH_DB_NAME", "vouch")
	t.Setenv("VOUCH_DB_USER", "vouch")
	t.Setenv("VOUCH_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")

	cfg, err := config.LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.API.BasePath != "/api" {
		t.Errorf("base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.MaxUploadSizeBytes() != photos.MaxSize {
		t.Errorf("max upload: got %d, want %d", cfg.API.MaxUploadSizeBytes(), photos.MaxSize)
	}
	if cfg.Storage.Provider != "azure" || cfg.Storage.ContainerName != "photos" {
		t.Errorf("storage: got %s/%s, want azure/photos", cfg.Storage.Provider, cfg.Storage.ContainerName)
	}
	if !slices.Equal(cfg.OCR.Languages, []string{"jpn", "eng"}) {
		t.Errorf("languages: got %v", cfg.OCR.Languages)
	}
	if len(cfg.Classifier.Keywords) != 7 {
		t.Errorf("keywords: got %d, want 7 defaults", len(cfg.Classifier.Keywords))
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown_timeout: got %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "upload limit above 2048KB",
			mutate:  func(s string) string { return strings.Replace(s, `max_upload_size = "1MB"`, `max_upload_size = "3MB"`, 1) },
			wantErr: "api",
		},
		{
			name:    "nested base path",
			mutate:  func(s string) string { return strings.Replace(s, `base_path = "/api"`, `base_path = "/api/v1"`, 1) },
			wantErr: "api",
		},
		{
			name:    "bad ocr timeout",
			mutate:  func(s string) string { return strings.Replace(s, `timeout = "15s"`, `timeout = "soon"`, 1) },
			wantErr: "ocr",
		},
		{
			name:    "minio without credentials",
			mutate:  func(s string) string { return strings.Replace(s, `secret_key = "minioadmin"`, "", 1) },
			wantErr: "storage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.mutate(baseConfig))

			_, err := config.LoadFrom(dir)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, "[server\nport = ")

	if _, err := config.LoadFrom(dir); err == nil {
		t.Error("expected parse error")
	}
}
