package aquos

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode 将 (domain, action, arg) 编码为 8 字节定宽命令帧。
// 固定字面量动作忽略 arg；参数型动作（音量设置）要求 arg 为
// [Min, Max] 内的十进制整数，否则返回 ErrInvalidArgument 且不产生帧。
// 纯函数：相同输入产生字节级相同的帧。
func Encode(d Domain, a Action, arg string) (Frame, error) {
	spec, act, err := Lookup(d, a)
	if err != nil {
		return Frame{}, err
	}

	var payload string
	switch act.Kind {
	case payloadLiteral:
		payload = act.Literal
	case payloadArgument:
		if arg == "" {
			return Frame{}, fmt.Errorf("%w: %s %s requires a value", ErrInvalidArgument, d, a)
		}
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return Frame{}, fmt.Errorf("%w: %q is not an integer", ErrInvalidArgument, arg)
		}
		if n < act.Min || n > act.Max {
			return Frame{}, fmt.Errorf("%w: %d out of range [%d, %d]", ErrInvalidArgument, n, act.Min, act.Max)
		}
		payload = strconv.Itoa(n)
	}

	body := spec.Prefix + payload
	if len(body) > FrameWidth {
		// 总表中的前缀与载荷均不超宽，这里仅防御总表被改坏
		return Frame{}, fmt.Errorf("%w: body %q exceeds frame width", ErrUnknownCommand, body)
	}
	body += strings.Repeat(" ", FrameWidth-len(body))
	return Frame{Body: body}, nil
}
