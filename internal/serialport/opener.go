package serialport

import (
	"fmt"
	"os"

	"go.bug.st/serial"

	cfgpkg "github.com/taoyao-code/aquosctl/internal/config"
	"github.com/taoyao-code/aquosctl/internal/exchange"
)

// Opener 基于 go.bug.st/serial 的端口工厂。
// 同一配置可多次 Open，以获得写/读各自独立的句柄。
type Opener struct {
	cfg cfgpkg.SerialConfig
}

// New 构建 Opener
func New(cfg cfgpkg.SerialConfig) *Opener {
	return &Opener{cfg: cfg}
}

// Check 校验配置的端口路径指向字符设备。
// 非字符设备（普通文件、目录、不存在的路径）直接失败，不进入重试。
func (o *Opener) Check() error {
	fi, err := os.Stat(o.cfg.Port)
	if err != nil {
		return fmt.Errorf("stat %s: %w", o.cfg.Port, err)
	}
	if fi.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("%s is not a character device", o.cfg.Port)
	}
	return nil
}

// Open 打开一个串口句柄：9600 波特率按配置，8 数据位、1 停止位、无校验，
// 并设置固定读超时。超时后 Read 返回 (0, nil)，由交互层识别。
func (o *Opener) Open() (exchange.Port, error) {
	mode := &serial.Mode{
		BaudRate: o.cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(o.cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.cfg.Port, err)
	}
	if err := port.SetReadTimeout(o.cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return port, nil
}
