package songbook

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchThreshold is the score a line must stay under to count as a match.
const MatchThreshold = 0.5

// LyricLine is a sung line addressed as "<sectionId>-<lineIndex>".
type LyricLine struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Match struct {
	LyricLine
	Score float64 `json:"score"`
}

// Flatten walks the song in sung order and returns its non-blank lines.
// Unknown section ids are skipped.
func (s *Song) Flatten() []LyricLine {
	sections := make(map[string]Section, len(s.Lyrics))
	for _, sec := range s.Lyrics {
		sections[sec.ID] = sec
	}
	var out []LyricLine
	for _, id := range s.Order {
		sec, ok := sections[id]
		if !ok {
			continue
		}
		for i, l := range sec.Lines {
			if strings.TrimSpace(l.Lyrics) == "" {
				continue
			}
			out = append(out, LyricLine{ID: id + "-" + strconv.Itoa(i), Text: l.Lyrics})
		}
	}
	return out
}

// BestMatch scores every line against the transcript and returns the lowest
// scoring one when it is under MatchThreshold.  Score is the Levenshtein
// distance divided by the longer normalised length, 0 meaning identical.
func BestMatch(lines []LyricLine, transcript string) (Match, bool) {
	t := normalize(transcript)
	if t == "" {
		return Match{}, false
	}
	best, found := Match{Score: 1}, false
	for _, l := range lines {
		score := distance(t, normalize(l.Text))
		if !found || score < best.Score {
			best, found = Match{LyricLine: l, Score: score}, true
		}
	}
	if !found || best.Score >= MatchThreshold {
		return Match{}, false
	}
	return best, true
}

func distance(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return float64(fuzzy.LevenshteinDistance(a, b)) / float64(longest)
}

// normalize lower-cases, drops punctuation and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}
