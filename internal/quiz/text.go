package quiz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mathema-dev/mathema/internal/history"
)

// Delegate is the thin I/O seam under TextPresentation. A delegate only
// reads lines and writes text; the surrounding conversation lives in
// TextPresentation. Line-mode and full-screen front ends differ only in
// their delegate.
type Delegate interface {
	// ReadAnswer reads one answer, already transliterated into the
	// response language. ok is false on an empty line.
	ReadAnswer(p Prompt) (answer string, ok bool, err error)

	// ReadResult reads a yes/almost/no grading. ok is false when the
	// input was not recognized.
	ReadResult(p Prompt) (history.QuestionResult, bool, error)

	// ReadMinutes reads the extension reply at the time checkpoint. ok
	// is false on an empty line.
	ReadMinutes() (string, bool, error)

	Cleanup()
	Println(text string) error
}

const (
	markIncorrect = "\U0001F4A3"
	markCorrect   = "\U0001F389"
	markMissing   = "\U0001F526"
)

// TextPresentation renders the quiz conversation as lines of text over a
// Delegate.
type TextPresentation struct {
	delegate Delegate
}

func NewText(delegate Delegate) *TextPresentation {
	return &TextPresentation{delegate: delegate}
}

func (t *TextPresentation) printf(format string, args ...any) error {
	return t.delegate.Println(fmt.Sprintf(format, args...))
}

func (t *TextPresentation) StartPrompt(p Prompt) error {
	if err := t.printf("Please %s:", p.Kind.PromptText()); err != nil {
		return err
	}
	for _, line := range p.Card.LinesWithKind(p.Kind.PromptLineKind()) {
		if err := t.printf("- %s", line); err != nil {
			return err
		}
	}
	return nil
}

func (t *TextPresentation) ReadResponse(p Prompt, index int) (string, bool, error) {
	if err := t.printf("Response %d/%d: ", index, p.NumResponses); err != nil {
		return "", false, err
	}
	return t.delegate.ReadAnswer(p)
}

func (t *TextPresentation) ReadResult(p Prompt, missing, correct, incorrect []string) (history.QuestionResult, error) {
	if len(incorrect) > 0 {
		if err := t.printList("Incorrect answers:", markIncorrect, incorrect); err != nil {
			return 0, err
		}
	}
	if len(correct) > 0 {
		if err := t.printList("Correct answers:", markCorrect, correct); err != nil {
			return 0, err
		}
	}
	if len(missing) > 0 {
		if err := t.printList("Missing answers:", markMissing, missing); err != nil {
			return 0, err
		}
	}

	for {
		if err := t.printf("Did you know it (yes/almost/no)? "); err != nil {
			return 0, err
		}
		result, ok, err := t.delegate.ReadResult(p)
		if err != nil {
			return 0, err
		}
		if ok {
			return result, nil
		}
	}
}

func (t *TextPresentation) printList(heading, mark string, answers []string) error {
	if err := t.printf("%s", heading); err != nil {
		return err
	}
	for _, answer := range answers {
		if err := t.printf("%s %s", mark, answer); err != nil {
			return err
		}
	}
	return nil
}

func (t *TextPresentation) RepeatBack(p Prompt, expected string) (string, bool, error) {
	if err := t.printf("Repeat back `%s`:", expected); err != nil {
		return "", false, err
	}
	return t.delegate.ReadAnswer(p)
}

func (t *TextPresentation) TryAgain(p Prompt, expected string) error {
	return t.printf("Not quite, try again!")
}

func (t *TextPresentation) Cleanup() {
	t.delegate.Cleanup()
}

func (t *TextPresentation) SessionTimeExpired(elapsed time.Duration, cardsRemaining int) (time.Duration, bool, error) {
	if err := t.printf("%d minutes have expired since you started the quiz.", int(elapsed.Minutes())); err != nil {
		return 0, false, err
	}
	if err := t.printf("There are still %d cards left to go.", cardsRemaining); err != nil {
		return 0, false, err
	}
	for {
		if err := t.printf("If you want to stop, press enter."); err != nil {
			return 0, false, err
		}
		if err := t.printf("Otherwise, type in how many more minutes: "); err != nil {
			return 0, false, err
		}
		reply, ok, err := t.delegate.ReadMinutes()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		minutes, err := strconv.Atoi(strings.TrimSpace(reply))
		if err == nil && minutes >= 0 {
			return time.Duration(minutes) * time.Minute, true, nil
		}
	}
}
