package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":8000", cfg.HTTPAddr)
	require.Equal(t, "securecalc", cfg.Service.Name)
	require.False(t, cfg.Audit.Enable)
	require.False(t, cfg.Redis.Enable)
	require.Equal(t, 60, cfg.Limits.AddPerMinute)
	require.Equal(t, time.Minute, cfg.Limits.Window)
}

func TestLoadFromFileOverridesNonZeroFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
env: prod
http_addr: ":9000"
service:
  version: "1.2.3"
mysql:
  password: s3cret
redis:
  enable: true
  addr: "10.0.0.5:6379"
limits:
  add_per_minute: 5
  window: 30s
audit:
  enable: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg := Load()
	require.NoError(t, loadFromFile(path, &cfg))

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, ":9000", cfg.HTTPAddr)
	// 未覆盖的字段保持默认值
	require.Equal(t, "securecalc", cfg.Service.Name)
	require.Equal(t, "1.2.3", cfg.Service.Version)
	require.Equal(t, "s3cret", cfg.MySQL.Password)
	require.Equal(t, "127.0.0.1", cfg.MySQL.Host)
	require.True(t, cfg.Redis.Enable)
	require.Equal(t, "10.0.0.5:6379", cfg.Redis.Addr)
	require.Equal(t, 5, cfg.Limits.AddPerMinute)
	require.Equal(t, 30*time.Second, cfg.Limits.Window)
	require.True(t, cfg.Audit.Enable)
}

func TestDSNMasked(t *testing.T) {
	m := MySQLConfig{Host: "db", Port: 3306, User: "calc", Password: "topsecret", DBName: "securecalc"}
	if got := m.DSNMasked(); got == m.DSN() {
		t.Fatalf("masked DSN should differ from raw DSN")
	}
	masked := m.DSNMasked()
	if want := "calc:******@tcp(db:3306)/securecalc?parseTime=true&loc=Local&charset=utf8mb4,utf8"; masked != want {
		t.Fatalf("unexpected masked dsn: %s", masked)
	}
}

func TestLoadFromFileRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("env = 'prod'"), 0o600))
	cfg := Load()
	require.Error(t, loadFromFile(path, &cfg))
}
