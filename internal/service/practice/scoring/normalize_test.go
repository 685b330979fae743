package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

func TestNormalizeLineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain newline kept", input: "a\nb", want: "a\nb"},
		{name: "crlf", input: "a\r\nb", want: "a\nb"},
		{name: "bare cr", input: "a\rb", want: "a\nb"},
		{name: "literal backslash n", input: `a\nb`, want: "a\nb"},
		{name: "doubly escaped backslash n", input: `a\\nb`, want: "a\nb"},
		{name: "literal crlf", input: `a\r\nb`, want: "a\nb"},
		{name: "br tag", input: "a<br>b", want: "a\nb"},
		{name: "self-closing br any case", input: "a<BR />b<br/>c", want: "a\nb\nc"},
		{name: "entity escaped br", input: "a&lt;br&gt;b", want: "a\nb"},
		{name: "double entity escaped br", input: "a&amp;lt;br&amp;gt;b", want: "a\nb"},
		{name: "no breaks", input: "hello there", want: "hello there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeLineBreaks(tt.input))
		})
	}
}

func TestDetectScript(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.ScriptCJK, DetectScript("今天天气很好"))
	assert.Equal(t, domain.ScriptCJK, DetectScript("A: こんにちは"))
	assert.Equal(t, domain.ScriptCJK, DetectScript("カタカナ"))
	assert.Equal(t, domain.ScriptCJK, DetectScript("I like 寿司"))
	assert.Equal(t, domain.ScriptSpaced, DetectScript("Hello there"))
	assert.Equal(t, domain.ScriptSpaced, DetectScript("안녕하세요 여러분"))
	assert.Equal(t, domain.ScriptSpaced, DetectScript(""))
}

func TestStripSpeaker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input       string
		wantSpeaker string
		wantBody    string
	}{
		{input: "A: Hello there", wantSpeaker: "A", wantBody: "Hello there"},
		{input: "  B:Hi  ", wantSpeaker: "B", wantBody: "Hi"},
		{input: "B : Hi", wantSpeaker: "B", wantBody: "Hi"},
		{input: "A:", wantSpeaker: "A", wantBody: ""},
		{input: "Hello: world", wantSpeaker: "", wantBody: "Hello: world"},
		{input: "a: lower case is not a marker", wantSpeaker: "", wantBody: "a: lower case is not a marker"},
		{input: "no marker", wantSpeaker: "", wantBody: "no marker"},
		{input: "Ｂ：你好！", wantSpeaker: "B", wantBody: "你好！"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			speaker, body := StripSpeaker(tt.input)
			assert.Equal(t, tt.wantSpeaker, speaker)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestTokenize_Spaced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "case folded", input: "Hello There", want: []string{"hello", "there"}},
		{name: "terminal punctuation", input: "Hi, how are you?!", want: []string{"hi", "how", "are", "you"}},
		{name: "apostrophe kept", input: "Don't stop", want: []string{"don't", "stop"}},
		{name: "curly apostrophe", input: "Don’t stop", want: []string{"don't", "stop"}},
		{name: "hyphenated word", input: "a well-known fact.", want: []string{"a", "well-known", "fact"}},
		{name: "quotes stripped", input: `"Yes" - she said`, want: []string{"yes", "she", "said"}},
		{name: "collapsed whitespace", input: "one\t two\n\nthree", want: []string{"one", "two", "three"}},
		{name: "empty", input: "", want: []string{}},
		{name: "punctuation only", input: "...!?", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Tokenize(tt.input, domain.ScriptSpaced))
		})
	}
}

func TestTokenize_CJK(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"今", "天", "天", "气", "很", "好"}, Tokenize("今天天气很好。", domain.ScriptCJK))
	assert.Equal(t, []string{"你", "好", "吗"}, Tokenize("你 好， 吗？", domain.ScriptCJK))
	assert.Equal(t, []string{}, Tokenize("。！？", domain.ScriptCJK))
}

func TestCanonicalize_FullWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A:Hello", Canonicalize("Ａ：Ｈｅｌｌｏ"))
}
