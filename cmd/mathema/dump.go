package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/config"
	"github.com/mathema-dev/mathema/internal/history"
	"github.com/mathema-dev/mathema/internal/scheduler"
	"github.com/mathema-dev/mathema/internal/storage"
)

func runDump(cfg *config.Config, expiredOnly bool, filter string) error {
	repo, err := storage.Open(cfg.Directory)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.LoadCards(); err != nil {
		return err
	}
	if stop, err := warnIfNeeded(repo, cfg.Force); err != nil || stop {
		return err
	}

	out := os.Stdout

	if !expiredOnly {
		kinds := scheduler.DefaultSuitableQuestions().AllKinds()
		for _, id := range repo.CardUUIDs() {
			if err := dumpCard(out, repo, id, kinds, filter); err != nil {
				return err
			}
		}
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, item := range scheduler.ExpiredCards(rng, repo, scheduler.DefaultSuitableQuestions().AllKinds()) {
		if err := dumpCard(out, repo, item.UUID, []history.QuestionKind{item.Kind}, filter); err != nil {
			return err
		}
	}
	return nil
}

func dumpCard(w io.Writer, repo *storage.Repository, id uuid.UUID, kinds []history.QuestionKind, filter string) error {
	card := repo.Card(id)

	if filter != "" && !cardContains(card, filter) {
		return nil
	}

	if err := cards.WriteCards(w, []*cards.Card{card}); err != nil {
		return err
	}

	record := repo.Database().CardRecord(id)
	for _, kind := range kinds {
		var questions []history.QuestionRecord
		if record != nil {
			questions = record.Questions(kind)
		}
		if len(questions) == 0 {
			fmt.Fprintf(w, "* %s: No record of ever asking this\n", kind.PromptText())
			continue
		}

		last := questions[len(questions)-1]

		// Walk the trailing run, newest first, showing the gaps the
		// expiration model sees.
		haveNext := false
		var next history.QuestionRecord
		for i := len(questions) - 1; i >= 0; i-- {
			q := questions[i]
			interval := ""
			if haveNext {
				interval = fmt.Sprintf(" (interval %s)", next.Date.Sub(q.Date))
			}
			fmt.Fprintf(w, "* Got %s on %s%s\n", q.Result, q.Date.Format(time.RFC3339), interval)
			next, haveNext = q, true
			if q.Result != last.Result {
				break
			}
		}

		if duration, ok := scheduler.ExpirationDuration(kind, record); ok {
			fmt.Fprintf(w, "* %s: expires on %s (duration %s)\n",
				kind.PromptText(), last.Date.Add(duration).Format(time.RFC3339), duration)
		} else {
			fmt.Fprintf(w, "* %s: Not enough data to figure out when to ask next.\n  Last asked on %s.\n",
				kind.PromptText(), last.Date.Format(time.RFC3339))
		}
	}

	fmt.Fprintln(w)
	return nil
}

func cardContains(card *cards.Card, filter string) bool {
	for _, line := range card.Lines {
		if strings.Contains(line.Text, filter) {
			return true
		}
	}
	return false
}
