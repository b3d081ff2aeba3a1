package exchange

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/aquosctl/internal/config"
	"github.com/taoyao-code/aquosctl/internal/protocol/aquos"
)

// ResultErr 预算耗尽时的终态应答文本
const ResultErr = "ERR"

// Port 串口句柄的最小能力。实现方需保证 Read 超时返回 (0, nil)。
type Port interface {
	io.ReadWriteCloser
}

// Opener 端口工厂：Check 校验设备节点，Open 打开一个独立句柄。
// 生产实现见 internal/serialport；测试用假实现注入。
type Opener interface {
	Check() error
	Open() (Port, error)
}

// Exchanger 对电视执行一次"写命令-读应答"往返。
// 写读分别使用同一端点的两个独立句柄：目标硬件上共用句柄
// 的缓冲/刷新交互会导致读取不稳定，拆分是刻意的规避手段。
type Exchanger struct {
	opener   Opener
	attempts int
	backoff  time.Duration
	sleep    func(time.Duration)
	log      *zap.Logger
}

// Option Exchanger 可选项
type Option func(*Exchanger)

// WithSleep 替换重试间隔的等待实现（测试注入零延迟）
func WithSleep(fn func(time.Duration)) Option {
	return func(e *Exchanger) { e.sleep = fn }
}

// WithLogger 替换日志器
func WithLogger(l *zap.Logger) Option {
	return func(e *Exchanger) { e.log = l }
}

// New 构建 Exchanger；attempts/backoff 取自配置
func New(opener Opener, cfg cfgpkg.ExchangeConfig, opts ...Option) *Exchanger {
	e := &Exchanger{
		opener:   opener,
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
		sleep:    time.Sleep,
		log:      zap.NewNop(),
	}
	if e.attempts < 1 {
		e.attempts = 1
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do 执行一次命令交互。
// 设备校验失败立即返回 ErrDeviceNotFound，零次写读。
// 打开句柄后，在预算内反复执行完整的写+读周期，任一环节出错
// 均视为瞬时故障并等待 backoff 后重做；预算耗尽返回 ("ERR", ErrExhausted)。
// 两个句柄在所有退出路径上都会关闭。
func (e *Exchanger) Do(frame aquos.Frame) (string, error) {
	if err := e.opener.Check(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDeviceNotFound, err)
	}

	wr, err := e.opener.Open()
	if err != nil {
		return "", fmt.Errorf("open write handle: %w", err)
	}
	defer func() { _ = wr.Close() }()

	rd, err := e.opener.Open()
	if err != nil {
		return "", fmt.Errorf("open read handle: %w", err)
	}
	defer func() { _ = rd.Close() }()

	for attempt := 1; attempt <= e.attempts; attempt++ {
		resp, err := e.attemptOnce(wr, rd, frame)
		if err == nil {
			e.log.Debug("exchange ok",
				zap.String("command", frame.Body),
				zap.Int("attempt", attempt),
				zap.String("response", resp))
			return resp, nil
		}
		e.log.Warn("exchange attempt failed",
			zap.String("command", frame.Body),
			zap.Int("attempt", attempt),
			zap.Int("remaining", e.attempts-attempt),
			zap.Error(err))
		if attempt < e.attempts {
			e.sleep(e.backoff)
		}
	}
	return ResultErr, ErrExhausted
}

// attemptOnce 单次写+读周期；任何错误都让调用方整体重做
func (e *Exchanger) attemptOnce(wr io.Writer, rd io.Reader, frame aquos.Frame) (string, error) {
	if _, err := wr.Write(frame.Bytes()); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	line, err := readLine(rd)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	return line, nil
}

// readLine 逐字节读取直至回车帧尾。
// Read 返回 0 字节视为超时；超时丢弃已积累的半行，不向上层外泄。
func readLine(rd io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := rd.Read(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", ErrReadTimeout
		}
		if buf[0] == aquos.Terminator {
			return strings.TrimRight(string(line), "\r\n"), nil
		}
		line = append(line, buf[0])
	}
}
