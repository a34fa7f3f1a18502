package core

import "time"

const (
	MnemoName    = "Mnemo"
	MnemoVersion = "0.1.0"
)

// ConversationEntry is one list item or line lifted from a markdown
// document. Timestamp is nil when the line carried no recognizable
// time marker; such entries still flow into extraction but cannot be
// used for time-sensitive reasoning.
type ConversationEntry struct {
	Timestamp      *time.Time
	Text           string
	SectionContext string
}

// Document is the parsed form of one markdown source file. It lives
// only for the duration of a process run and is never persisted.
type Document struct {
	Path    string
	Title   string
	Entries []ConversationEntry
}

// ExtractedFact is one atomic statement produced by the language model
// from a batch of entries.
type ExtractedFact struct {
	Text          string
	SourceContext string
	TimeContext   string
}

// MemoryRecord is a stored fact. The embedding lives with the backend;
// callers only ever see the id, text and metadata.
type MemoryRecord struct {
	ID        string
	UserID    string
	Text      string
	Metadata  map[string]string
	Score     float32
	CreatedAt time.Time
}

// ChatTurn captures one question/answer exchange within the current
// session. Not persisted.
type ChatTurn struct {
	UserID    string
	Query     string
	Retrieved []MemoryRecord
	Answer    string
}
