// Package history is the answer-history store: which questions have been
// asked of which cards, when, and how the user did.
package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mathema-dev/mathema/internal/cards"
)

// QuestionResult is the user's self-reported outcome for one question.
type QuestionResult int

const (
	// Yes means the user knew it.
	Yes QuestionResult = iota

	// Almost means the user got it wrong but reported they almost knew it.
	Almost

	// No means the user didn't know it.
	No
)

func (r QuestionResult) String() string {
	switch r {
	case Yes:
		return "yes"
	case Almost:
		return "almost"
	case No:
		return "no"
	default:
		return fmt.Sprintf("QuestionResult(%d)", int(r))
	}
}

// ParseQuestionResult is the inverse of String, used by storage.
func ParseQuestionResult(s string) (QuestionResult, error) {
	switch s {
	case "yes":
		return Yes, nil
	case "almost":
		return Almost, nil
	case "no":
		return No, nil
	default:
		return 0, fmt.Errorf("unrecognized question result %q", s)
	}
}

// QuestionKindTag discriminates the kinds of question. Translation is the
// only kind today but the history format keeps the tag open for more.
type QuestionKindTag int

const (
	TranslateKind QuestionKindTag = iota
)

// QuestionKind identifies a specific direction of quiz, e.g. translate
// English to Greek. It is comparable and usable as a map key.
type QuestionKind struct {
	Tag  QuestionKindTag
	From cards.Language
	To   cards.Language
}

// Translate builds the translation question kind for a language pair.
func Translate(from, to cards.Language) QuestionKind {
	return QuestionKind{Tag: TranslateKind, From: from, To: to}
}

// PromptLineKind is the card-line kind shown to the user as the prompt.
func (k QuestionKind) PromptLineKind() cards.LineKind {
	return cards.Meaning(k.From)
}

// ResponseLineKind is the card-line kind the user must supply.
func (k QuestionKind) ResponseLineKind() cards.LineKind {
	return cards.Meaning(k.To)
}

// ResponseLanguage is the language user responses are transliterated into.
func (k QuestionKind) ResponseLanguage() cards.Language {
	return k.To
}

// PromptText describes the question, e.g. "translate from English to
// Ελληνικά".
func (k QuestionKind) PromptText() string {
	return fmt.Sprintf("translate from %s to %s", k.From.FullName(), k.To.FullName())
}

// Less orders question kinds deterministically for iteration.
func (k QuestionKind) Less(other QuestionKind) bool {
	if k.Tag != other.Tag {
		return k.Tag < other.Tag
	}
	if k.From != other.From {
		return k.From < other.From
	}
	return k.To < other.To
}

// QuestionRecord is one row of history: a question was asked on Date and
// the user answered with Result. Records are immutable once created.
type QuestionRecord struct {
	Date   time.Time
	Result QuestionResult
}

// CardRecord holds, for one card, the chronological answer history per
// question kind. Entries are append-only; the per-kind sequence stays
// sorted by date because records are pushed as they happen.
type CardRecord struct {
	questions map[QuestionKind][]QuestionRecord
}

// NewCardRecord returns an empty record with no history.
func NewCardRecord() *CardRecord {
	return &CardRecord{questions: make(map[QuestionKind][]QuestionRecord)}
}

// Questions returns the chronological history for one question kind. The
// returned slice is shared; callers must not mutate it.
func (r *CardRecord) Questions(kind QuestionKind) []QuestionRecord {
	return r.questions[kind]
}

// PushQuestionRecord appends one record to the history for kind.
func (r *CardRecord) PushQuestionRecord(kind QuestionKind, record QuestionRecord) {
	r.questions[kind] = append(r.questions[kind], record)
}

// Kinds returns the question kinds with any history, in a deterministic
// order.
func (r *CardRecord) Kinds() []QuestionKind {
	kinds := make([]QuestionKind, 0, len(r.questions))
	for kind := range r.questions {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Less(kinds[j]) })
	return kinds
}

// Database is the whole history document: the registered card files and
// one CardRecord per card. One database serves one study directory and
// one user; callers own serialization if they share it.
type Database struct {
	cardFiles []string
	records   map[uuid.UUID]*CardRecord
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{records: make(map[uuid.UUID]*CardRecord)}
}

// CardFiles returns the registered card-file paths, relative to the study
// directory, in registration order.
func (d *Database) CardFiles() []string {
	return d.cardFiles
}

// HasCardFile reports whether path is already registered.
func (d *Database) HasCardFile(path string) bool {
	for _, f := range d.cardFiles {
		if f == path {
			return true
		}
	}
	return false
}

// AddCardFile registers a card file, ignoring duplicates.
func (d *Database) AddCardFile(path string) {
	if !d.HasCardFile(path) {
		d.cardFiles = append(d.cardFiles, path)
	}
}

// CardRecord returns the record for a card, or nil if the card has never
// been touched.
func (d *Database) CardRecord(id uuid.UUID) *CardRecord {
	return d.records[id]
}

// CardRecordMut returns the record for a card, creating an empty one on
// first touch. This is the single mutation entry point.
func (d *Database) CardRecordMut(id uuid.UUID) *CardRecord {
	record, ok := d.records[id]
	if !ok {
		record = NewCardRecord()
		d.records[id] = record
	}
	return record
}

// RecordUUIDs returns the cards with a record, sorted for deterministic
// iteration.
func (d *Database) RecordUUIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d.records))
	for id := range d.records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
