package exchange

import "errors"

var (
	// ErrDeviceNotFound 配置的端口不是字符设备；致命，不重试
	ErrDeviceNotFound = errors.New("exchange: device not found")
	// ErrExhausted 重试预算耗尽仍无成功交互
	ErrExhausted = errors.New("exchange: retry budget exhausted")
	// ErrReadTimeout 单次尝试内读超时；属瞬时错误，由重试环吸收
	ErrReadTimeout = errors.New("exchange: read timed out")
)
