// Package quiz drives one interactive study session over a queue built
// by the scheduler.
package quiz

import (
	"time"

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/history"
)

/*

Flow of presentation calls per queued item:

	+---> StartPrompt
	|         |
	|         v
	|     ReadResponse <--+
	|         |           |
	|         +-----------+
	|         |
	|     ReadResult (skipped when every answer was given)
	|         |
	|      Yes |  Almost / No
	|         |       |
	|         |   RepeatBack <--+
	|         |       |         |
	|         |   TryAgain -----+
	|         |       |
	|         v       v
	|       Cleanup
	|         |
	|         +--> SessionTimeExpired ---> [done]
	|         |            |
	+---------+------------+

*/

// Prompt carries everything a presentation needs to pose one question.
type Prompt struct {
	Card         *cards.Card
	Kind         history.QuestionKind
	NumResponses int
}

// Presentation is the interactive collaborator the session driver talks
// to. Implementations block for user input; any error they return aborts
// the session. A presentation must re-prompt locally on unrecognized
// input rather than surface it as an error.
type Presentation interface {
	// StartPrompt is invoked when a new question starts.
	StartPrompt(p Prompt) error

	// ReadResponse is invoked repeatedly to read answers. ok is false
	// once the user stops supplying answers.
	ReadResponse(p Prompt, index int) (response string, ok bool, err error)

	// ReadResult asks the user to grade themselves after the missing,
	// correct, and incorrect answers have been shown.
	ReadResult(p Prompt, missing, correct, incorrect []string) (history.QuestionResult, error)

	// RepeatBack asks the user to type back one expected answer during
	// the corrective loop. ok is false when the user gives up.
	RepeatBack(p Prompt, expected string) (response string, ok bool, err error)

	// TryAgain is invoked when a repeated-back answer was still wrong.
	TryAgain(p Prompt, expected string) error

	// Cleanup is invoked after each item.
	Cleanup()

	// SessionTimeExpired reports that the time budget ran out with
	// cardsRemaining items still queued. ok is false to stop the
	// session; otherwise extension is the fresh budget.
	SessionTimeExpired(elapsed time.Duration, cardsRemaining int) (extension time.Duration, ok bool, err error)
}
