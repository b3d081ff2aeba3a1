package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cfgpkg "github.com/taoyao-code/aquosctl/internal/config"
	"github.com/taoyao-code/aquosctl/internal/exchange"
	"github.com/taoyao-code/aquosctl/internal/protocol/aquos"
	"github.com/taoyao-code/aquosctl/internal/serialport"
)

// invocation 子命令解析结果：显式传入核心的 (domain, action) 对
type invocation struct {
	domain aquos.Domain
	action aquos.Action
}

// dispatch 子命令 → 命令域/动作 对照表
var dispatch = map[string]map[string]invocation{
	"power": {
		"on":  {aquos.DomainPower, aquos.ActionOn},
		"off": {aquos.DomainPower, aquos.ActionOff},
	},
	"volume": {
		"set": {aquos.DomainVolume, aquos.ActionSet},
	},
	"name": {
		"get": {aquos.DomainName, aquos.ActionGet},
	},
	"model": {
		"get": {aquos.DomainModel, aquos.ActionGet},
	},
	"mute": {
		"on":     {aquos.DomainMute, aquos.ActionOn},
		"off":    {aquos.DomainMute, aquos.ActionOff},
		"toggle": {aquos.DomainMute, aquos.ActionToggle},
	},
	"input": {
		"toggle": {aquos.DomainInput, aquos.ActionToggle},
	},
}

// Deps 可注入的外部依赖；零值字段在 Run 内补默认实现
type Deps struct {
	// Opener 端口工厂；为 nil 时按配置构建串口 Opener
	Opener exchange.Opener
	// Sleep 重试等待实现；为 nil 时使用 time.Sleep
	Sleep func(time.Duration)
	// Stdout 设备应答输出通道
	Stdout io.Writer
	// Stderr 错误与用法输出通道
	Stderr io.Writer
	// Logger 为 nil 时使用全局 zap
	Logger *zap.Logger
}

// Run 解析子命令并执行一次命令交互，返回进程退出码。
// args 为去掉全局选项后的位置参数，如 ["volume", "set", "30"]。
func Run(args []string, cfg *cfgpkg.Config, deps Deps) int {
	if deps.Logger == nil {
		deps.Logger = zap.L()
	}
	log := deps.Logger.With(zap.String("invocation", uuid.NewString()))

	if len(args) < 2 {
		Usage(deps.Stderr)
		return 1
	}
	actions, ok := dispatch[args[0]]
	if !ok {
		fmt.Fprintf(deps.Stderr, "unknown command %q\n", args[0])
		Usage(deps.Stderr)
		return 1
	}
	inv, ok := actions[args[1]]
	if !ok {
		fmt.Fprintf(deps.Stderr, "unknown action %q for %q\n", args[1], args[0])
		Usage(deps.Stderr)
		return 1
	}
	arg := ""
	if len(args) > 2 {
		arg = args[2]
		if !aquos.RequiresArgument(inv.domain, inv.action) {
			log.Warn("argument ignored for fixed command",
				zap.String("domain", string(inv.domain)),
				zap.String("action", string(inv.action)),
				zap.String("arg", arg))
		}
	}

	frame, err := aquos.Encode(inv.domain, inv.action, arg)
	if err != nil {
		fmt.Fprintln(deps.Stderr, err)
		log.Error("encode failed", zap.Error(err))
		return 1
	}

	opener := deps.Opener
	if opener == nil {
		opener = serialport.New(cfg.Serial)
	}
	opts := []exchange.Option{exchange.WithLogger(log)}
	if deps.Sleep != nil {
		opts = append(opts, exchange.WithSleep(deps.Sleep))
	}
	ex := exchange.New(opener, cfg.Exchange, opts...)

	resp, err := ex.Do(frame)
	switch {
	case err == nil:
		fmt.Fprintln(deps.Stdout, resp)
		return 0
	case errors.Is(err, exchange.ErrExhausted):
		// 终态 "ERR" 仍回显到应答通道，同时以失败码退出
		fmt.Fprintln(deps.Stdout, resp)
		fmt.Fprintf(deps.Stderr, "%s %s: no response from device\n", args[0], args[1])
		return 1
	default:
		fmt.Fprintln(deps.Stderr, err)
		return 1
	}
}

// Usage 打印子命令用法
func Usage(w io.Writer) {
	fmt.Fprint(w, `usage: aquosctl [options] <command> <action> [value]

commands:
  power  on|off            turn the TV on or off
  volume set <0-60>        set the volume level
  name   get               query the TV name
  model  get               query the model name
  mute   on|off|toggle     control mute
  input  toggle            cycle to the next input

options:
  -config <path>   config file (default: ./configs/example.yaml)
  -port <path>     serial device (default: /dev/ttyUSB0)
  -verbose         debug logging
`)
}
