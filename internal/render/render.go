package render

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatimport/internal/parse"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// authorColors cycles bold foreground colors so each author keeps one color.
var authorColors = []string{
	"\033[1;34m", // blue
	"\033[1;32m", // green
	"\033[1;35m", // magenta
	"\033[1;36m", // cyan
	"\033[1;33m", // yellow
}

type Options struct {
	HitID   int    // message id to highlight, <= 0 for none
	Context int    // messages before/after hit to show, < 0 = all
	Width   int    // wrap width (0 = no wrap)
	Query   string // keywords to highlight
	Title   string
	Plain   bool // no ANSI escapes
}

// searchOperators are FTS5 operators that should not be highlighted as keywords.
var searchOperators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
}

func authorColor(authorID string) string {
	h := fnv.New32a()
	h.Write([]byte(authorID))
	return authorColors[h.Sum32()%uint32(len(authorColors))]
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	var terms []string
	for _, t := range strings.Fields(query) {
		if !searchOperators[strings.ToUpper(t)] {
			terms = append(terms, strings.Trim(t, `"*`))
		}
	}
	for _, term := range terms {
		if term == "" {
			continue
		}
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// window returns the slice of msgs to show around the hit, the index of the
// hit within it (-1 if absent) and the number of messages skipped before it.
func window(msgs []parse.Message, hitID, context int) ([]parse.Message, int, int) {
	hitPos := -1
	for i, m := range msgs {
		if m.ID == hitID {
			hitPos = i
			break
		}
	}
	if hitPos < 0 || context < 0 {
		return msgs, hitPos, 0
	}

	start := max(hitPos-context, 0)
	end := min(hitPos+context+1, len(msgs))
	return msgs[start:end], hitPos - start, start
}

// RenderMessages renders a transcript and returns the content and the
// 0-based line number of the hit message header (-1 if no hit).
func RenderMessages(msgs []parse.Message, opts Options) (string, int) {
	if len(msgs) == 0 {
		return "(no messages)\n", -1
	}

	shown, hitIdx, skipBefore := window(msgs, opts.HitID, opts.Context)
	skipAfter := len(msgs) - skipBefore - len(shown)

	paint := func(color, s string) string {
		if opts.Plain {
			return s
		}
		return color + s + colorReset
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	if opts.Title != "" {
		writeLine(paint(colorDim, fmt.Sprintf("--- %s (%d messages) ---", opts.Title, len(msgs))))
	}
	if skipBefore > 0 {
		writeLine(paint(colorDim, fmt.Sprintf("... (%d messages before) ...", skipBefore)))
	}

	for i, m := range shown {
		if i == hitIdx {
			hitLine = lineCount
			writeLine(paint(colorHit, fmt.Sprintf(">> #%d %s > %s <<", m.ID, m.AuthorID, m.Timestamp)))
		} else {
			writeLine(fmt.Sprintf("%s %s", paint(authorColor(m.AuthorID), fmt.Sprintf("#%d %s", m.ID, m.AuthorID)), paint(colorDim, m.Timestamp)))
		}

		text := m.Content
		if !opts.Plain {
			text = highlightKeywords(text, opts.Query)
		}
		writeLine("  " + text)
	}

	if skipAfter > 0 {
		writeLine(paint(colorDim, fmt.Sprintf("... (%d messages after) ...", skipAfter)))
	}

	return b.String(), hitLine
}
