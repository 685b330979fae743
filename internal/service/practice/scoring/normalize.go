package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// maxLineBreakPasses bounds how many escaping layers are peeled off.
const maxLineBreakPasses = 3

var (
	// escapedEntity unwraps one level of HTML entity escaping of "<" and ">".
	escapedEntity = regexp.MustCompile(`&amp;(lt|gt);`)
	// htmlBreak matches <br>, <br/>, <br /> and their entity-escaped forms.
	htmlBreak = regexp.MustCompile(`(?i)(?:<|&lt;)br\s*/?(?:>|&gt;)`)
	// literalBreak matches backslash escapes such as \n, \\n or \r\n written
	// out as text.
	literalBreak = regexp.MustCompile(`\\+r\\+n|\\+n|\\+r`)
	// speakerMarker matches a leading single capital letter followed by a
	// colon. Full-width letters and colons count as well.
	speakerMarker = regexp.MustCompile(`^([A-ZＡ-Ｚ])\s*[:：]\s*`)
)

// NormalizeLineBreaks rewrites every line-break encoding (literal backslash
// escapes, HTML break tags, CR and CRLF) to "\n". Each pass peels one layer
// of escaping; at most maxLineBreakPasses passes run.
func NormalizeLineBreaks(text string) string {
	for range maxLineBreakPasses {
		next := escapedEntity.ReplaceAllString(text, "&$1;")
		next = htmlBreak.ReplaceAllString(next, "\n")
		next = literalBreak.ReplaceAllString(next, "\n")
		next = strings.ReplaceAll(next, "\r\n", "\n")
		next = strings.ReplaceAll(next, "\r", "\n")
		if next == text {
			break
		}
		text = next
	}
	return text
}

// Canonicalize applies NFKC (full-width Latin letters and punctuation fold to
// their ASCII forms) and line-break normalization.
func Canonicalize(text string) string {
	return NormalizeLineBreaks(norm.NFKC.String(text))
}

// DetectScript returns ScriptCJK when text holds any Han, Hiragana or
// Katakana code point.
func DetectScript(text string) domain.ScriptClass {
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return domain.ScriptCJK
		}
	}
	return domain.ScriptSpaced
}

// StripSpeaker removes one leading "X:" speaker marker. speaker is empty when
// the utterance carries no marker; a full-width marker letter is reported in
// its ASCII form. body keeps its original characters.
func StripSpeaker(utterance string) (speaker, body string) {
	utterance = strings.TrimSpace(utterance)
	m := speakerMarker.FindStringSubmatchIndex(utterance)
	if m == nil {
		return "", utterance
	}
	return norm.NFKC.String(utterance[m[2]:m[3]]), strings.TrimSpace(utterance[m[1]:])
}

// Tokenize splits text into comparison tokens for the given script class.
// CJK yields one token per character; spaced scripts yield case-folded words.
// Punctuation never produces a token.
func Tokenize(text string, script domain.ScriptClass) []string {
	if script == domain.ScriptCJK {
		return tokenizeCJK(text)
	}
	return tokenizeSpaced(text)
}

func tokenizeCJK(text string) []string {
	fold := cases.Fold()
	tokens := make([]string, 0, len(text)/3)
	for _, r := range text {
		if unicode.IsSpace(r) || isBreakingPunct(r) || r == '\'' || r == '-' {
			continue
		}
		tokens = append(tokens, fold.String(string(r)))
	}
	return tokens
}

func tokenizeSpaced(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '’' || r == '‘':
			return '\''
		case unicode.IsSpace(r) || isBreakingPunct(r):
			return ' '
		}
		return r
	}, text)

	fold := cases.Fold()
	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'-")
		if f == "" {
			continue
		}
		tokens = append(tokens, fold.String(f))
	}
	return tokens
}

// isBreakingPunct reports punctuation that separates tokens. Apostrophes and
// hyphens stay inside words ("don't", "well-known").
func isBreakingPunct(r rune) bool {
	if r == '\'' || r == '-' {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
