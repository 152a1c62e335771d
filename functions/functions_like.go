package functions

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// LikeFunction 实现 LIKE 模式匹配，%匹配任意字符序列，_匹配单个字符
type LikeFunction struct {
	*BaseFunction
}

func NewLikeFunction() *LikeFunction {
	return &LikeFunction{
		BaseFunction: NewBaseFunction("like", TypePredicate, "谓词函数", "LIKE 模式匹配", 2, 2,
			new(func(string, string) bool)),
	}
}

func (f *LikeFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *LikeFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	text, pattern, err := likeOperands(args)
	if err != nil {
		return nil, err
	}
	tokens, err := compileLikePattern(pattern, 0)
	if err != nil {
		return nil, err
	}
	return likeMatch([]rune(text), tokens), nil
}

// LikeEscapeFunction 带 ESCAPE 字符的 LIKE 匹配
type LikeEscapeFunction struct {
	*BaseFunction
}

func NewLikeEscapeFunction() *LikeEscapeFunction {
	return &LikeEscapeFunction{
		BaseFunction: NewBaseFunction("like_escape", TypePredicate, "谓词函数", "带转义字符的 LIKE 模式匹配", 3, 3,
			new(func(string, string, string) bool)),
	}
}

func (f *LikeEscapeFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *LikeEscapeFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	text, pattern, err := likeOperands(args)
	if err != nil {
		return nil, err
	}
	escape, err := cast.ToStringE(args[2])
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(escape) != 1 {
		return nil, fmt.Errorf("escape string must be a single character, got %q", escape)
	}
	esc, _ := utf8.DecodeRuneInString(escape)
	tokens, err := compileLikePattern(pattern, esc)
	if err != nil {
		return nil, err
	}
	return likeMatch([]rune(text), tokens), nil
}

func likeOperands(args []any) (string, string, error) {
	text, err := cast.ToStringE(args[0])
	if err != nil {
		return "", "", err
	}
	pattern, err := cast.ToStringE(args[1])
	if err != nil {
		return "", "", err
	}
	return text, pattern, nil
}

type likeKind int

const (
	likeLiteral likeKind = iota
	likeOne              // _
	likeAny              // %
)

type likeToken struct {
	kind likeKind
	r    rune
}

// compileLikePattern 把模式拆成匹配单元。escape 为 0 表示没有转义字符；
// 转义字符之后只能跟 %、_ 或转义字符本身
func compileLikePattern(pattern string, escape rune) ([]likeToken, error) {
	runes := []rune(pattern)
	tokens := make([]likeToken, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case escape != 0 && r == escape:
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("LIKE pattern %q ends with the escape character", pattern)
			}
			next := runes[i+1]
			if next != '%' && next != '_' && next != escape {
				return nil, fmt.Errorf("LIKE pattern %q escapes %q, only %%, _ and the escape character can be escaped", pattern, next)
			}
			tokens = append(tokens, likeToken{kind: likeLiteral, r: next})
			i++
		case r == '%':
			// 连续的 % 等价于一个
			if len(tokens) > 0 && tokens[len(tokens)-1].kind == likeAny {
				continue
			}
			tokens = append(tokens, likeToken{kind: likeAny})
		case r == '_':
			tokens = append(tokens, likeToken{kind: likeOne})
		default:
			tokens = append(tokens, likeToken{kind: likeLiteral, r: r})
		}
	}
	return tokens, nil
}

// likeMatch 回溯匹配，只回退到最近的 %
func likeMatch(text []rune, pattern []likeToken) bool {
	t, p := 0, 0
	star, mark := -1, 0
	for t < len(text) {
		if p < len(pattern) {
			tok := pattern[p]
			if tok.kind == likeOne || (tok.kind == likeLiteral && tok.r == text[t]) {
				t++
				p++
				continue
			}
			if tok.kind == likeAny {
				star, mark = p, t
				p++
				continue
			}
		}
		if star < 0 {
			return false
		}
		// 让最近的 % 多吞一个字符
		mark++
		t, p = mark, star+1
	}
	for p < len(pattern) && pattern[p].kind == likeAny {
		p++
	}
	return p == len(pattern)
}
