package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_PORT", "LOG_LEVEL",
	"REPORT_RENDERER", "REPORT_CONVERTER", "REPORT_CHROMIUM_BIN", "REPORT_CHROMIUM_URL",
	"REPORT_GOTENBERG_URL", "REPORT_WKHTMLTOPDF_BIN", "REPORT_CONVERT_TIMEOUT",
	"REPORT_LANGUAGE", "REPORT_TIMEZONE", "REPORT_FILENAME", "REPORT_TTL", "REPORT_SWEEP_SCHEDULE",
	"ARCHIVE_BACKEND", "MONGODB_URI", "MONGODB_DB_NAME",
	"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID", "GOOGLE_SHEET_RANGE",
}

// clearEnv unsets every key; godotenv never overrides a variable that exists,
// even when empty. t.Setenv restores the previous values on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func loadFrom(t *testing.T, contents string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return Load(path)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, RendererNative, cfg.Report.Renderer)
	assert.Equal(t, "pt", cfg.Report.Language)
	assert.Equal(t, "relatorio_inmilk.pdf", cfg.Report.Filename)
	assert.Equal(t, 15*time.Minute, cfg.Report.TTL)
	assert.Equal(t, 30*time.Second, cfg.Report.ConvertTimeout)
	assert.Equal(t, ArchiveNone, cfg.Archive.Backend)
	assert.Equal(t, "America/Sao_Paulo", cfg.Report.Location().String())
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	cfg, err := loadFrom(t, "APP_PORT=9090\nREPORT_RENDERER=HTML\nREPORT_CONVERTER=gotenberg\nREPORT_GOTENBERG_URL=http://gotenberg:3000\nREPORT_TTL=2m\nREPORT_LANGUAGE=en\n")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, RendererHTML, cfg.Report.Renderer)
	assert.Equal(t, ConverterGotenberg, cfg.Report.Converter)
	assert.Equal(t, "http://gotenberg:3000", cfg.Report.GotenbergURL)
	assert.Equal(t, 2*time.Minute, cfg.Report.TTL)
	assert.Equal(t, "en", cfg.Report.Language)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		wantErr string
	}{
		{name: "unknown renderer", env: "REPORT_RENDERER=docx", wantErr: "REPORT_RENDERER"},
		{name: "unknown converter", env: "REPORT_RENDERER=html\nREPORT_CONVERTER=prince", wantErr: "REPORT_CONVERTER"},
		{name: "gotenberg without url", env: "REPORT_RENDERER=html\nREPORT_CONVERTER=gotenberg", wantErr: "REPORT_GOTENBERG_URL"},
		{name: "wkhtmltopdf without path", env: "REPORT_RENDERER=html\nREPORT_CONVERTER=wkhtmltopdf", wantErr: "REPORT_WKHTMLTOPDF_BIN"},
		{name: "bad ttl", env: "REPORT_TTL=soon", wantErr: "REPORT_TTL"},
		{name: "negative ttl", env: "REPORT_TTL=-1m", wantErr: "REPORT_TTL"},
		{name: "bad language", env: "REPORT_LANGUAGE=fr", wantErr: "REPORT_LANGUAGE"},
		{name: "bad timezone", env: "REPORT_TIMEZONE=Mars/Olympus", wantErr: "REPORT_TIMEZONE"},
		{name: "mongodb without uri", env: "ARCHIVE_BACKEND=mongodb", wantErr: "MONGODB_URI"},
		{name: "sheets without credentials", env: "ARCHIVE_BACKEND=sheets\nGOOGLE_SHEET_DATABASE_ID=abc", wantErr: "GOOGLE_SHEETS_CREDENTIALS_PATH"},
		{name: "unknown archive", env: "ARCHIVE_BACKEND=s3", wantErr: "ARCHIVE_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := loadFrom(t, tt.env+"\n")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_Nil(t *testing.T) {
	var cfg *Config
	assert.Error(t, cfg.Validate())
}
