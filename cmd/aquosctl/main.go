package main

import (
	"flag"
	"os"

	"github.com/taoyao-code/aquosctl/internal/cli"
	cfgpkg "github.com/taoyao-code/aquosctl/internal/config"
	"github.com/taoyao-code/aquosctl/internal/logging"

	"go.uber.org/zap"
)

func main() {
	fs := flag.NewFlagSet("aquosctl", flag.ExitOnError)
	fs.Usage = func() { cli.Usage(os.Stderr) }
	configPath := fs.String("config", "", "config file path")
	portPath := fs.String("port", "", "serial device path override")
	verbose := fs.Bool("verbose", false, "debug logging")
	_ = fs.Parse(os.Args[1:])

	// 1) 加载配置
	cfg, err := cfgpkg.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if *portPath != "" {
		cfg.Serial.Port = *portPath
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	// 2) 初始化日志
	logger, err := logging.InitLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// 3) 执行一次命令交互并按结果退出
	code := cli.Run(fs.Args(), cfg, cli.Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	})
	os.Exit(code)
}
