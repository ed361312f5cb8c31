package quiz

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mathema-dev/mathema/internal/history"
	"github.com/mathema-dev/mathema/internal/scheduler"
)

var parentheticals = regexp.MustCompile(`\([^)]*\)`)

// Session runs one bounded study period: it walks the scheduler queue,
// poses each question through the presentation, and records outcomes in
// the deck's history database. Recording is in-memory; the caller saves
// the database after Run returns, whether or not it returned an error.
type Session struct {
	deck         scheduler.Deck
	presentation Presentation
	queue        []scheduler.CardQuestion
	maxDuration  time.Duration

	now func() time.Time
}

// NewSession prepares a session over queue with an initial time budget.
func NewSession(deck scheduler.Deck, presentation Presentation, queue []scheduler.CardQuestion, budget time.Duration) *Session {
	return &Session{
		deck:         deck,
		presentation: presentation,
		queue:        queue,
		maxDuration:  budget,
		now:          time.Now,
	}
}

// Run drives the session to completion. Outcomes recorded before an
// error are kept; the in-flight item is not recorded.
func (s *Session) Run() error {
	originalStart := s.now()
	segmentStart := originalStart
	maxDuration := s.maxDuration

	for i, item := range s.queue {
		if s.now().Sub(segmentStart) > maxDuration {
			extension, ok, err := s.presentation.SessionTimeExpired(s.now().Sub(originalStart), len(s.queue)-i)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			segmentStart = s.now()
			maxDuration = extension
		}

		card := s.deck.Card(item.UUID)
		if card == nil {
			return fmt.Errorf("queued card %s not found in deck", item.UUID)
		}

		expected := card.LinesWithKind(item.Kind.ResponseLineKind())
		prompt := Prompt{Card: card, Kind: item.Kind, NumResponses: len(expected)}

		result, err := s.askOne(prompt, expected)
		if err != nil {
			return err
		}

		record := s.deck.Database().CardRecordMut(item.UUID)
		record.PushQuestionRecord(item.Kind, history.QuestionRecord{
			Date:   s.now(),
			Result: result,
		})

		s.presentation.Cleanup()
	}

	return nil
}

// askOne runs the prompt/collect/grade/retry protocol for one item and
// returns the graded result.
func (s *Session) askOne(prompt Prompt, expected []string) (history.QuestionResult, error) {
	if err := s.presentation.StartPrompt(prompt); err != nil {
		return 0, err
	}

	missing := append([]string(nil), expected...)
	var correct, incorrect []string
	for index := 1; len(missing) > 0; index++ {
		response, ok, err := s.presentation.ReadResponse(prompt, index)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		if removeMatch(&missing, response) {
			correct = append(correct, response)
		} else {
			incorrect = append(incorrect, response)
		}
	}

	if len(missing) == 0 {
		return history.Yes, nil
	}

	result, err := s.presentation.ReadResult(prompt, missing, correct, incorrect)
	if err != nil {
		return 0, err
	}

	if result != history.Yes {
		if err := s.repeatBack(prompt, expected); err != nil {
			return 0, err
		}
	}

	return result, nil
}

// repeatBack walks every expected answer and has the user type it back
// until it matches or they give up. Purely corrective; the result has
// already been decided.
func (s *Session) repeatBack(prompt Prompt, expected []string) error {
	for _, exp := range expected {
		for {
			response, ok, err := s.presentation.RepeatBack(prompt, exp)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if matchesExpected(exp, response) {
				break
			}
			if err := s.presentation.TryAgain(prompt, exp); err != nil {
				return err
			}
		}
	}
	return nil
}

// removeMatch removes the first expected entry that the response
// satisfies and reports whether one was found.
func removeMatch(missing *[]string, response string) bool {
	for i, exp := range *missing {
		if matchesExpected(exp, response) {
			*missing = append((*missing)[:i], (*missing)[i+1:]...)
			return true
		}
	}
	return false
}

// matchesExpected checks a user response against one expected answer.
// Parenthetical annotations in the expected text are ignored, and an
// expected comma-separated list is satisfied by any one alternative.
func matchesExpected(expected, response string) bool {
	stripped := strings.TrimSpace(parentheticals.ReplaceAllString(expected, ""))
	response = strings.TrimSpace(response)
	if stripped == response {
		return true
	}
	if strings.Contains(stripped, ",") {
		for _, alt := range strings.Split(stripped, ",") {
			if strings.TrimSpace(alt) == response {
				return true
			}
		}
	}
	return false
}
