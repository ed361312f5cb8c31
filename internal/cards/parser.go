package cards

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Card files hold one card per paragraph. Each line starts with a kind
// token:
//
//	# a comment about the card
//	uuid 5e0f...          (assigned by `mathema add`)
//	en to write
//	gr γράφω
//	pos verb
//	aor έγραψα
//
// Blank lines separate cards.

// ParseFile reads the card file at path and extracts all cards.
func ParseFile(path string) ([]*Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(path, file)
}

// Parse reads cards from r. The source name is recorded on each card and
// used in error messages.
func Parse(source string, r io.Reader) ([]*Card, error) {
	scanner := bufio.NewScanner(r)
	var all []*Card
	var current *Card
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			if current != nil {
				all = append(all, current)
				current = nil
			}
			continue
		}

		if current == nil {
			current = &Card{SourceFile: source, StartLine: lineNumber}
		}

		if err := parseCardLine(current, line); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", source, lineNumber, err)
		}
	}
	if current != nil {
		all = append(all, current)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return all, nil
}

func parseCardLine(card *Card, line string) error {
	if strings.HasPrefix(line, "#") {
		card.Lines = append(card.Lines, CardLine{
			Kind: Comment(),
			Text: strings.TrimSpace(line[1:]),
		})
		return nil
	}

	token := line
	rest := ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		token, rest = line[:i], strings.TrimSpace(line[i:])
	}

	switch token {
	case "uuid":
		id, err := uuid.Parse(rest)
		if err != nil {
			return fmt.Errorf("malformed uuid %q: %w", rest, err)
		}
		if card.UUID != uuid.Nil {
			return fmt.Errorf("card has more than one uuid line")
		}
		card.UUID = id
		return nil
	case "pos":
		card.Lines = append(card.Lines, CardLine{Kind: PartOfSpeech(), Text: rest})
		return nil
	case "aor":
		card.Lines = append(card.Lines, CardLine{Kind: Aoristos(), Text: rest})
		return nil
	}

	lang, err := ParseLanguage(token)
	if err != nil {
		return fmt.Errorf("unrecognized line kind %q", token)
	}
	card.Lines = append(card.Lines, CardLine{Kind: Meaning(lang), Text: rest})
	return nil
}
