package aquos

// Frame Aquos 命令帧（固定宽度 ASCII）
// 布局：prefix[4] + payload[0..4]，空格右填充到恰好 8 字节，帧尾 '\r'。
// 该 8 字节定宽由电视硬件协议固定，编码时不得多也不得少。
type Frame struct {
	// Body 8 字节命令体（不含帧尾），如 "POWR1   "
	Body string
}

const (
	// PrefixLen 命令前缀长度
	PrefixLen = 4
	// FrameWidth 命令体定宽（不含帧尾）
	FrameWidth = 8
	// Terminator 帧尾：命令与应答均以回车结束
	Terminator = '\r'
)

// Bytes 返回写入串口的完整帧字节（含帧尾）
func (f Frame) Bytes() []byte {
	b := make([]byte, 0, FrameWidth+1)
	b = append(b, f.Body...)
	b = append(b, Terminator)
	return b
}

// Prefix 返回命令体的 4 字节前缀
func (f Frame) Prefix() string {
	if len(f.Body) < PrefixLen {
		return f.Body
	}
	return f.Body[:PrefixLen]
}
