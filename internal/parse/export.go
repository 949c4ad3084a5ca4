package parse

import (
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	imageMarker = "Image"
	opMarker    = "OP"
)

var (
	// [8:41 PM]nickbg: hello there
	inlineRe = regexp.MustCompile(`^\[([^\]]+)\]([^:]+):\s*(.*)$`)
	// [8:41 PM] or 8:41 PM] (leading bracket lost in the copy)
	timestampRe = regexp.MustCompile(`^\[?([^\]]+)\]$`)
	// nickbg: hello there
	authorLineRe = regexp.MustCompile(`^([^:]+):\s*(.*)$`)
	// " Sato: welcome back" after an OP marker
	opAuthorLineRe = regexp.MustCompile(`^\s*([^:]+):\s*(.*)$`)
)

func ParseExportFile(filePath string) (*ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseExportReader(f)
}

func ParseExportReader(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseExport(string(data)), nil
}

// ParseExport turns the text of a copy-pasted chat export into messages.
// Lines that fit none of the known shapes are dropped and reported as
// warnings; parsing never fails.
func ParseExport(text string) *ParseResult {
	p := &exportParser{lines: strings.Split(text, "\n")}
	p.run()
	return &ParseResult{
		Messages: p.messages,
		Warnings: p.warnings,
		Lines:    len(p.lines),
	}
}

type exportParser struct {
	lines    []string
	i        int
	messages []Message
	warnings []Warning
}

func (p *exportParser) line(i int) string {
	return strings.TrimSpace(p.lines[i])
}

func (p *exportParser) run() {
	for p.i < len(p.lines) {
		line := p.line(p.i)

		if line == "" || line == imageMarker {
			p.i++
			continue
		}

		if m := inlineRe.FindStringSubmatch(line); m != nil {
			header := p.i
			p.i++
			p.emit(header, m[1], m[2], m[3])
			continue
		}

		if m := timestampRe.FindStringSubmatch(line); m != nil {
			p.timestampHeader(m[1])
			continue
		}

		p.warn(p.i, "unrecognized line")
		p.i++
	}
}

// timestampHeader handles a header line holding only a timestamp. The author
// and content live on the next line, or on the one after an OP marker.
func (p *exportParser) timestampHeader(ts string) {
	header := p.i
	p.i++

	if p.i >= len(p.lines) {
		p.warn(header, "timestamp at end of input")
		return
	}

	re := authorLineRe
	if p.line(p.i) == opMarker {
		p.i++
		re = opAuthorLineRe
		if p.i >= len(p.lines) {
			p.warn(header, "OP marker at end of input")
			return
		}
	}

	next := p.line(p.i)
	if looksLikeHeader(next) {
		p.warn(header, "timestamp followed by another header")
		return
	}
	m := re.FindStringSubmatch(next)
	if m == nil {
		p.warn(header, "timestamp without author line")
		return
	}
	p.i++
	p.emit(header, ts, m[1], m[2])
}

// emit appends a message and absorbs continuation lines following the
// cursor into its content.
func (p *exportParser) emit(header int, ts, author, content string) {
	parts := make([]string, 0, 1)
	if c := strings.TrimSpace(content); c != "" {
		parts = append(parts, c)
	}

	end := p.i - 1
	for p.i < len(p.lines) {
		next := p.line(p.i)
		if next == "" || strings.HasPrefix(next, "[") || startsWithDigit(next) {
			break
		}
		if !isNoise(next) {
			parts = append(parts, next)
			end = p.i
		}
		p.i++
	}

	author = strings.TrimSpace(author)
	p.messages = append(p.messages, Message{
		ID:        len(p.messages) + 1,
		AuthorID:  NormalizeAuthor(author),
		Author:    author,
		Content:   strings.Join(parts, " "),
		Timestamp: ts,
		Reactions: []Reaction{},
		Line:      header + 1,
		EndLine:   end + 1,
	})
}

func (p *exportParser) warn(i int, reason string) {
	p.warnings = append(p.warnings, Warning{
		Line:   i + 1,
		Text:   p.line(i),
		Reason: reason,
	})
}

// looksLikeHeader reports whether line opens a new message rather than
// holding "author: content". Bracket-less timestamps start with a digit.
func looksLikeHeader(line string) bool {
	if strings.HasPrefix(line, "[") {
		return true
	}
	return startsWithDigit(line) && timestampRe.MatchString(line)
}

// isNoise reports lines inside a message body that carry no text. Stray
// timestamps never get here: they start with '[' or a digit and end the body.
func isNoise(line string) bool {
	return line == opMarker || line == imageMarker
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}
