package aquos

import "errors"

// Domain 命令所属域（电源/音量/静音等）
type Domain string

const (
	DomainPower  Domain = "power"
	DomainVolume Domain = "volume"
	DomainName   Domain = "name"
	DomainModel  Domain = "model"
	DomainMute   Domain = "mute"
	DomainInput  Domain = "input"
)

// Action 域内动作
type Action string

const (
	ActionOn     Action = "on"
	ActionOff    Action = "off"
	ActionSet    Action = "set"
	ActionGet    Action = "get"
	ActionToggle Action = "toggle"
)

var (
	// ErrUnknownCommand 未知的 (domain, action) 组合
	ErrUnknownCommand = errors.New("aquos: unknown command")
	// ErrInvalidArgument 参数缺失、非整数或超出取值范围
	ErrInvalidArgument = errors.New("aquos: invalid argument")
)

// payloadKind 载荷类别：固定字面量或调用方参数
type payloadKind int

const (
	payloadLiteral payloadKind = iota
	payloadArgument
)

// ActionSpec 单个动作的编码描述。
// Kind 为 payloadLiteral 时 Literal 固定；为 payloadArgument 时
// 载荷取调用方参数，整数且必须落在 [Min, Max] 闭区间内。
type ActionSpec struct {
	Desc    string
	Kind    payloadKind
	Literal string
	Min     int
	Max     int
}

// CommandSpec 命令域描述：4 字节协议前缀与域内动作表。
// 进程启动即定型，只读，无需同步即可复用。
type CommandSpec struct {
	Domain  Domain
	Prefix  string
	Actions map[Action]ActionSpec
}

// catalog Aquos RS-232 命令总表
var catalog = map[Domain]CommandSpec{
	DomainPower: {
		Domain: DomainPower,
		Prefix: "POWR",
		Actions: map[Action]ActionSpec{
			ActionOn:  {Desc: "turn the TV on", Kind: payloadLiteral, Literal: "1"},
			ActionOff: {Desc: "turn the TV off", Kind: payloadLiteral, Literal: "0"},
		},
	},
	DomainVolume: {
		Domain: DomainVolume,
		Prefix: "VOLM",
		Actions: map[Action]ActionSpec{
			ActionSet: {Desc: "set volume level", Kind: payloadArgument, Min: 0, Max: 60},
		},
	},
	DomainName: {
		Domain: DomainName,
		Prefix: "TVNM",
		Actions: map[Action]ActionSpec{
			ActionGet: {Desc: "query the TV name", Kind: payloadLiteral, Literal: "1"},
		},
	},
	DomainModel: {
		Domain: DomainModel,
		Prefix: "MNRD",
		Actions: map[Action]ActionSpec{
			ActionGet: {Desc: "query the model name", Kind: payloadLiteral, Literal: "1"},
		},
	},
	DomainMute: {
		Domain: DomainMute,
		Prefix: "MUTE",
		Actions: map[Action]ActionSpec{
			ActionOn:     {Desc: "mute", Kind: payloadLiteral, Literal: "1"},
			ActionOff:    {Desc: "unmute", Kind: payloadLiteral, Literal: "2"},
			ActionToggle: {Desc: "toggle mute", Kind: payloadLiteral, Literal: "0"},
		},
	},
	DomainInput: {
		Domain: DomainInput,
		Prefix: "ITGD",
		Actions: map[Action]ActionSpec{
			ActionToggle: {Desc: "cycle to the next input", Kind: payloadLiteral, Literal: "1"},
		},
	},
}

// Lookup 查询动作描述；组合未知时返回 ErrUnknownCommand
func Lookup(d Domain, a Action) (CommandSpec, ActionSpec, error) {
	spec, ok := catalog[d]
	if !ok {
		return CommandSpec{}, ActionSpec{}, ErrUnknownCommand
	}
	act, ok := spec.Actions[a]
	if !ok {
		return CommandSpec{}, ActionSpec{}, ErrUnknownCommand
	}
	return spec, act, nil
}

// RequiresArgument 判断动作是否需要调用方参数
func RequiresArgument(d Domain, a Action) bool {
	_, act, err := Lookup(d, a)
	return err == nil && act.Kind == payloadArgument
}
