package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults 无配置文件时使用硬件常量默认值
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 9600, cfg.Serial.Baud)
	assert.Equal(t, time.Second, cfg.Serial.ReadTimeout)
	assert.Equal(t, 6, cfg.Exchange.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Exchange.Backoff)
	assert.Equal(t, "info", cfg.Logging.Level)
}

// TestLoad_File 配置文件覆盖默认值
func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aquos.yaml")
	content := `
serial:
  port: /dev/ttyS3
  baud: 9600
  readTimeout: 500ms
exchange:
  attempts: 3
  backoff: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS3", cfg.Serial.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Serial.ReadTimeout)
	assert.Equal(t, 3, cfg.Exchange.Attempts)
	assert.Equal(t, time.Second, cfg.Exchange.Backoff)
	// 未覆盖的键保持默认
	assert.Equal(t, "console", cfg.Logging.Format)
}

// TestLoad_EnvOverride 环境变量前缀 AQUOS_ 覆盖
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AQUOS_SERIAL_PORT", "/dev/ttyS9")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS9", cfg.Serial.Port)
}

// TestLoad_InvalidRejected 配置文件里的非法取值在加载期被拒绝
func TestLoad_InvalidRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exchange:\n  attempts: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

// TestValidate 非法取值被拒绝
func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Serial:   SerialConfig{Port: "/dev/ttyUSB0", Baud: 9600, ReadTimeout: time.Second},
			Exchange: ExchangeConfig{Attempts: 6, Backoff: 2 * time.Second},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Serial.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Serial.Baud = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Serial.ReadTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Exchange.Attempts = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Exchange.Backoff = -time.Second
	assert.Error(t, cfg.Validate())
}
