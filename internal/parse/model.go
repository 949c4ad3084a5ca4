package parse

// Reaction is a placeholder for reaction data. Copy-pasted exports carry no
// reactions, so parsed messages always hold an empty list.
type Reaction struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

type Message struct {
	ID        int // 1-based, in emission order
	AuthorID  string
	Author    string // display name as it appeared in the export
	Content   string
	Timestamp string // raw bracket contents, e.g. "8:41 PM"
	Reactions []Reaction
	Line      int // line number of the header in the export
	EndLine   int // last line absorbed into Content
}

// Warning describes an export line that produced no message.
type Warning struct {
	Line   int
	Text   string
	Reason string
}

type ParseResult struct {
	Messages []Message
	Warnings []Warning
	Lines    int // physical lines read
}

// AuthorCounts returns the number of messages per author identifier.
func (r *ParseResult) AuthorCounts() map[string]int {
	counts := make(map[string]int)
	for _, m := range r.Messages {
		counts[m.AuthorID]++
	}
	return counts
}

// ByID returns the message with the given id, or nil.
func (r *ParseResult) ByID(id int) *Message {
	// ids are dense and 1-based
	if id < 1 || id > len(r.Messages) {
		return nil
	}
	return &r.Messages[id-1]
}
