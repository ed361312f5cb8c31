// Package cards holds the card data model and the card-file text format.
package cards

import "github.com/google/uuid"

// LineTag discriminates the kinds of line a card may contain.
type LineTag int

const (
	CommentLine LineTag = iota
	MeaningLine
	PartOfSpeechLine
	AoristosLine
)

// LineKind is the tagged kind of a card line. Only MeaningLine carries a
// language; for the other tags Language is zero and ignored.
type LineKind struct {
	Tag      LineTag
	Language Language
}

func Comment() LineKind { return LineKind{Tag: CommentLine} }

func Meaning(l Language) LineKind { return LineKind{Tag: MeaningLine, Language: l} }

func PartOfSpeech() LineKind { return LineKind{Tag: PartOfSpeechLine} }

func Aoristos() LineKind { return LineKind{Tag: AoristosLine} }

// CardLine is one line of a card: its kind plus the text that follows the
// kind token in the card file.
type CardLine struct {
	Kind LineKind
	Text string
}

// Card is a single flashcard. UUID is uuid.Nil until one has been
// assigned (by `mathema add`). Cards are read-only once loaded.
type Card struct {
	SourceFile string
	UUID       uuid.UUID
	StartLine  int
	Lines      []CardLine
}

// LinesWithKind returns the text of every line with the given kind, in
// card order.
func (c *Card) LinesWithKind(kind LineKind) []string {
	var texts []string
	for _, line := range c.Lines {
		if line.Kind == kind {
			texts = append(texts, line.Text)
		}
	}
	return texts
}

// Meanings returns the card's meaning lines for one language.
func (c *Card) Meanings(l Language) []string {
	return c.LinesWithKind(Meaning(l))
}

// HasMeaning reports whether the card carries at least one meaning line
// for the given language.
func (c *Card) HasMeaning(l Language) bool {
	for _, line := range c.Lines {
		if line.Kind == Meaning(l) {
			return true
		}
	}
	return false
}
