package quiz

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mathema-dev/mathema/internal/history"
)

// Stdin is the line-mode Delegate: answers come from an input stream one
// line at a time and output goes to a writer, normally the terminal.
type Stdin struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewStdin(in io.Reader, out io.Writer) *Stdin {
	return &Stdin{scanner: bufio.NewScanner(in), out: out}
}

func (s *Stdin) readLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *Stdin) ReadAnswer(p Prompt) (string, bool, error) {
	line, err := s.readLine()
	if err != nil {
		return "", false, err
	}
	raw := strings.TrimSpace(line)
	response := p.Kind.ResponseLanguage().Transliterate(raw)
	if response != raw {
		if err := s.Println(fmt.Sprintf("  (transliterated to `%s`)", response)); err != nil {
			return "", false, err
		}
	}
	if response == "" {
		return "", false, nil
	}
	return response, true, nil
}

func (s *Stdin) ReadResult(p Prompt) (history.QuestionResult, bool, error) {
	line, err := s.readLine()
	if err != nil {
		return 0, false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return history.Yes, true, nil
	case "almost", "a":
		return history.Almost, true, nil
	case "no", "n":
		return history.No, true, nil
	default:
		return 0, false, nil
	}
}

func (s *Stdin) ReadMinutes() (string, bool, error) {
	line, err := s.readLine()
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(line) == "" {
		return "", false, nil
	}
	return line, true, nil
}

func (s *Stdin) Cleanup() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--------------------------------------------------")
}

func (s *Stdin) Println(text string) error {
	_, err := fmt.Fprintln(s.out, text)
	return err
}
