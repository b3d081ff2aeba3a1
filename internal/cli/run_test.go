package cli

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/aquosctl/internal/config"
	"github.com/taoyao-code/aquosctl/internal/exchange"
)

// tvStub 回放固定应答的串口假设备；script 为空则一律读超时
type tvStub struct {
	script string
	writes []string
	cursor int
}

func (d *tvStub) Write(b []byte) (int, error) {
	d.writes = append(d.writes, string(b))
	d.cursor = 0
	return len(b), nil
}

func (d *tvStub) Read(b []byte) (int, error) {
	if len(d.writes) == 0 || d.cursor >= len(d.script) {
		return 0, nil
	}
	b[0] = d.script[d.cursor]
	d.cursor++
	return 1, nil
}

func (d *tvStub) Close() error { return nil }

type stubOpener struct {
	dev      *tvStub
	checkErr error
	checks   int
}

func (o *stubOpener) Check() error {
	o.checks++
	return o.checkErr
}

func (o *stubOpener) Open() (exchange.Port, error) { return o.dev, nil }

func testConfig() *cfgpkg.Config {
	return &cfgpkg.Config{
		Serial:   cfgpkg.SerialConfig{Port: "/dev/ttyUSB0", Baud: 9600, ReadTimeout: time.Second},
		Exchange: cfgpkg.ExchangeConfig{Attempts: 6, Backoff: 2 * time.Second},
	}
}

func runWith(t *testing.T, args []string, op exchange.Opener) (code int, stdout, stderr string, slept []time.Duration) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(args, testConfig(), Deps{
		Opener: op,
		Sleep:  func(d time.Duration) { slept = append(slept, d) },
		Stdout: &out,
		Stderr: &errOut,
		Logger: zap.NewNop(),
	})
	return code, out.String(), errOut.String(), slept
}

// TestRun_PowerOn 端到端：power on 发送 "POWR1   \r"，回显 OK，退出码 0
func TestRun_PowerOn(t *testing.T) {
	dev := &tvStub{script: "OK\r"}
	code, stdout, _, slept := runWith(t, []string{"power", "on"}, &stubOpener{dev: dev})

	assert.Equal(t, 0, code)
	assert.Equal(t, "OK\n", stdout)
	require.Len(t, dev.writes, 1)
	assert.Equal(t, "POWR1   \r", dev.writes[0])
	assert.Empty(t, slept)
}

// TestRun_VolumeSet 音量设置走参数编码
func TestRun_VolumeSet(t *testing.T) {
	dev := &tvStub{script: "OK\r"}
	code, stdout, _, _ := runWith(t, []string{"volume", "set", "30"}, &stubOpener{dev: dev})

	assert.Equal(t, 0, code)
	assert.Equal(t, "OK\n", stdout)
	require.Len(t, dev.writes, 1)
	assert.Equal(t, "VOLM30  \r", dev.writes[0])
}

// TestRun_VolumeOutOfRange 越界参数在任何设备访问前失败
func TestRun_VolumeOutOfRange(t *testing.T) {
	dev := &tvStub{script: "OK\r"}
	op := &stubOpener{dev: dev}
	code, stdout, stderr, _ := runWith(t, []string{"volume", "set", "75"}, op)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid argument")
	assert.Equal(t, 0, op.checks)
	assert.Empty(t, dev.writes)
}

// TestRun_MuteToggleExhausted 始终超时：6 次尝试后回显 ERR，退出码 1
func TestRun_MuteToggleExhausted(t *testing.T) {
	dev := &tvStub{}
	code, stdout, stderr, slept := runWith(t, []string{"mute", "toggle"}, &stubOpener{dev: dev})

	assert.Equal(t, 1, code)
	assert.Equal(t, "ERR\n", stdout)
	assert.Contains(t, stderr, "no response")
	assert.Len(t, dev.writes, 6)
	for _, w := range dev.writes {
		assert.Equal(t, "MUTE0   \r", w)
	}
	require.Len(t, slept, 5)
	for _, d := range slept {
		assert.Equal(t, 2*time.Second, d)
	}
}

// TestRun_DeviceNotFound 设备校验失败：零次写读，退出码 1
func TestRun_DeviceNotFound(t *testing.T) {
	dev := &tvStub{script: "OK\r"}
	op := &stubOpener{dev: dev, checkErr: errors.New("/dev/ttyS7 is not a character device")}
	code, stdout, stderr, _ := runWith(t, []string{"model", "get"}, op)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "device not found")
	assert.Empty(t, dev.writes)
}

// TestRun_UnknownCommand 未知子命令打印用法，不触达核心
func TestRun_UnknownCommand(t *testing.T) {
	op := &stubOpener{dev: &tvStub{}}
	code, _, stderr, _ := runWith(t, []string{"laser", "on"}, op)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "usage:")
	assert.Equal(t, 0, op.checks)
}

// TestRun_MissingArgs 参数不足打印用法
func TestRun_MissingArgs(t *testing.T) {
	op := &stubOpener{dev: &tvStub{}}
	code, _, stderr, _ := runWith(t, []string{"power"}, op)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "usage:")
}

// TestRun_FixedCommandIgnoresExtraArg 固定命令的多余参数被忽略
func TestRun_FixedCommandIgnoresExtraArg(t *testing.T) {
	dev := &tvStub{script: "OK\r"}
	code, _, _, _ := runWith(t, []string{"input", "toggle", "3"}, &stubOpener{dev: dev})

	assert.Equal(t, 0, code)
	require.Len(t, dev.writes, 1)
	assert.Equal(t, "ITGD1   \r", dev.writes[0])
}
