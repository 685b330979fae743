package scoring

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// inlineSpeaker finds "X:" markers embedded in a single line. A marker must
// not follow a letter or digit so that "OK:" is not a turn boundary.
var inlineSpeaker = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])([A-ZＡ-Ｚ])\s*[:：]`)

// Turn is one scored unit of the reference, usually one speaker's utterance.
// Text is the utterance as written, minus the speaker marker; Tokens come
// from its NFKC form.
type Turn struct {
	Speaker string
	Text    string
	Tokens  []string
}

// Segment splits a reference passage into ordered turns:
//
//  1. text with line breaks: one turn per non-blank line;
//  2. otherwise, inline "X:" speaker markers: one turn per speaker group
//     (text before the first marker is kept as its own turn);
//  3. otherwise the whole text is a single turn.
//
// Empty input yields no turns. Tokens use the script class of the whole
// reference so that every turn is compared the same way.
func Segment(reference string) []Turn {
	text := strings.TrimSpace(NormalizeLineBreaks(reference))
	if text == "" {
		return []Turn{}
	}
	script := scriptOf(reference)

	var utterances []string
	switch {
	case strings.Contains(text, "\n"):
		utterances = strings.Split(text, "\n")
	default:
		utterances = splitSpeakers(text)
	}

	turns := make([]Turn, 0, len(utterances))
	for _, u := range utterances {
		speaker, body := StripSpeaker(u)
		if body == "" {
			continue
		}
		turns = append(turns, Turn{
			Speaker: speaker,
			Text:    body,
			Tokens:  Tokenize(norm.NFKC.String(body), script),
		})
	}
	return turns
}

// splitSpeakers cuts a single line at each inline speaker marker. When fewer
// than two non-empty parts result the line is returned whole.
func splitSpeakers(line string) []string {
	idx := inlineSpeaker.FindAllStringSubmatchIndex(line, -1)
	if len(idx) == 0 {
		return []string{line}
	}

	var parts []string
	if pre := strings.TrimSpace(line[:idx[0][2]]); pre != "" {
		parts = append(parts, pre)
	}
	for i, m := range idx {
		end := len(line)
		if i+1 < len(idx) {
			end = idx[i+1][2]
		}
		part := strings.TrimSpace(line[m[2]:end])
		if _, body := StripSpeaker(part); body == "" {
			continue
		}
		parts = append(parts, part)
	}

	if len(parts) < 2 {
		return []string{line}
	}
	return parts
}

// scriptOf is a convenience used by Score to keep reference and
// transcription on the same tokenization.
func scriptOf(reference string) domain.ScriptClass {
	return DetectScript(Canonicalize(reference))
}
