package cards

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// WriteCards serializes cards back into the card-file text format. The
// output round-trips through Parse, which is what lets `mathema add`
// rewrite a file after assigning UUIDs.
func WriteCards(w io.Writer, all []*Card) error {
	for i, card := range all {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeCard(w, card); err != nil {
			return err
		}
	}
	return nil
}

func writeCard(w io.Writer, card *Card) error {
	if card.UUID != uuid.Nil {
		if _, err := fmt.Fprintf(w, "uuid %s\n", card.UUID); err != nil {
			return err
		}
	}
	for _, line := range card.Lines {
		var err error
		switch line.Kind.Tag {
		case CommentLine:
			_, err = fmt.Fprintf(w, "# %s\n", line.Text)
		case MeaningLine:
			_, err = fmt.Fprintf(w, "%s %s\n", line.Kind.Language.Abbreviation(), line.Text)
		case PartOfSpeechLine:
			_, err = fmt.Fprintf(w, "pos %s\n", line.Text)
		case AoristosLine:
			_, err = fmt.Fprintf(w, "aor %s\n", line.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
