// Package classifier judges whether OCR text comes from an identity document.
// The rule is an ordered keyword scan: the first keyword found as a substring
// of the text is the evidence, and its presence marks the text as identified.
package classifier

import "strings"

// Labels reported for a judgement.
const (
	LabelIdentified = "identity-document"
	LabelUnknown    = "unknown"
)

// DefaultKeywords are Japanese terms printed on driver's licenses, health
// insurance cards, and My Number cards.
var DefaultKeywords = []string{
	"運転免許証",
	"健康保険証",
	"マイナンバー",
	"個人番号",
	"有効期限",
	"氏名",
	"生年月日",
}

// Judgement is the outcome of classifying a text. Evidence is the keyword
// that decided the outcome and is nil when nothing matched.
type Judgement struct {
	Matched  bool    `json:"matched"`
	Evidence *string `json:"evidence"`
}

// Label returns the public classification label.
func (j Judgement) Label() string {
	if j.Matched {
		return LabelIdentified
	}
	return LabelUnknown
}

// Classifier holds an immutable ordered keyword list and is safe for concurrent use.
type Classifier struct {
	keywords []string
}

// New creates a Classifier over keywords, falling back to DefaultKeywords
// when none are given. Empty keywords are dropped since they would match any text.
func New(keywords ...string) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}

	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k != "" {
			kw = append(kw, k)
		}
	}
	return &Classifier{keywords: kw}
}

// Keywords returns a copy of the keyword list in match order.
func (c *Classifier) Keywords() []string {
	return append([]string(nil), c.keywords...)
}

// Classify reports the first keyword, in list order, contained in text.
// Matching is case-sensitive with no normalization.
func (c *Classifier) Classify(text string) Judgement {
	if text == "" {
		return Judgement{}
	}

	for _, k := range c.keywords {
		if strings.Contains(text, k) {
			return Judgement{Matched: true, Evidence: &k}
		}
	}
	return Judgement{}
}
