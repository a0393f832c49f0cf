// Package textnorm 把自由文本化简为词形还原后的实词序列
package textnorm

import (
	"strings"
	"sync"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

type Normalizer struct {
	once  sync.Once
	lem   *golem.Lemmatizer
	err   error
	stops map[string]struct{}
}

var defaultNormalizer = New()

func New() *Normalizer {
	return &Normalizer{stops: stopWords}
}

// Normalize 使用包级默认实例
func Normalize(text string) string { return defaultNormalizer.Normalize(text) }

func Tokens(text string) []string { return defaultNormalizer.Tokens(text) }

func (n *Normalizer) lemmatizer() *golem.Lemmatizer {
	n.once.Do(func() {
		n.lem, n.err = golem.New(en.New())
	})
	if n.err != nil {
		return nil
	}
	return n.lem
}

// Normalize 小写、去标点和停用词、词形还原，以单个空格连接。
// 全是停用词时返回 ""。
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

func (n *Normalizer) Tokens(text string) []string {
	raw := split(strings.ToLower(text))
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := n.stops[tok]; stop {
			continue
		}
		tok = n.lemma(tok)
		if _, stop := n.stops[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// lemma 只采用稳定的还原结果：必须是单个词，且再次还原不变，
// 否则保留原词。这样 Normalize(Normalize(x)) == Normalize(x)。
// 例如 dryer -> dry -> spin-dry 不稳定，保留 dryer。
func (n *Normalizer) lemma(tok string) string {
	lem := n.lemmatizer()
	if lem == nil {
		return tok
	}
	l := strings.ToLower(lem.Lemma(tok))
	if l == "" || l == tok {
		return tok
	}
	if parts := split(l); len(parts) != 1 || parts[0] != l {
		return tok
	}
	if strings.ToLower(lem.Lemma(l)) != l {
		return tok
	}
	return l
}

// split 以非字母数字字符切分；撇号也切开，"what's" -> "what" + "s"
func split(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
