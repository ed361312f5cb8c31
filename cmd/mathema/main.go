package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/config"
	"github.com/mathema-dev/mathema/internal/quiz"
	"github.com/mathema-dev/mathema/internal/scheduler"
	"github.com/mathema-dev/mathema/internal/status"
	"github.com/mathema-dev/mathema/internal/storage"
	"github.com/mathema-dev/mathema/internal/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(os.Args[1:]); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

const usageText = `Usage: mathema [flags] <command> [args]

Commands:
  new <directory>     create a new deck of cards
  add <file>          add new cards from a file (path relative to the deck)
  status              check on the status of your cards
  quiz <language>     test yourself (language: en or gr)
  dump                dump info about cards
  serve               serve a read-only JSON view of the deck
`

func run(args []string) error {
	flags := pflag.NewFlagSet("mathema", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		fmt.Fprint(os.Stderr, flags.FlagUsages())
	}
	flags.StringP("directory", "C", ".", "where your existing cards can be found")
	flags.IntP("duration", "d", 10, "maximum quiz duration in minutes")
	flags.String("listen", "127.0.0.1:8000", "bind address for the serve command")
	flags.BoolP("force", "f", false, "continue despite ignorable errors")
	dumpExpired := flags.Bool("expired", false, "dump only expired cards")
	dumpFilter := flags.String("filter", "", "dump only cards whose text contains this substring")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return errors.New("missing command")
	}

	switch rest[0] {
	case "new":
		if len(rest) != 2 {
			return errors.New("usage: mathema new <directory>")
		}
		return runNew(rest[1])
	case "add":
		if len(rest) != 2 {
			return errors.New("usage: mathema add <file>")
		}
		return runAdd(cfg, rest[1])
	case "status":
		return runStatus(cfg)
	case "quiz":
		if len(rest) != 2 {
			return errors.New("usage: mathema quiz <language>")
		}
		return runQuiz(cfg, rest[1])
	case "dump":
		return runDump(cfg, *dumpExpired, *dumpFilter)
	case "serve":
		return runServe(cfg)
	default:
		flags.Usage()
		return fmt.Errorf("unrecognized command %q", rest[0])
	}
}

func runNew(directory string) error {
	repo, err := storage.Create(directory)
	if err != nil {
		return err
	}
	defer repo.Close()

	slog.Info("created new deck", "directory", directory)
	return nil
}

func runAdd(cfg *config.Config, file string) error {
	repo, err := storage.Open(cfg.Directory)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.AddCardFile(file); err != nil {
		return err
	}

	slog.Info("card file added", "file", file)
	return nil
}

func runStatus(cfg *config.Config) error {
	repo, err := storage.Open(cfg.Directory)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.LoadCards(); err != nil {
		return err
	}

	report, err := status.Collect(repo)
	if err != nil {
		return err
	}
	report.Print(os.Stdout)
	return nil
}

// warnIfNeeded prints deck problems and reports whether the command
// should stop. Force downgrades problems to a warning.
func warnIfNeeded(repo *storage.Repository, force bool) (bool, error) {
	report, err := status.Collect(repo)
	if err != nil {
		return false, err
	}
	if report.Clean() {
		return false, nil
	}
	report.Print(os.Stderr)
	if force {
		slog.Warn("continuing despite deck problems")
		return false, nil
	}
	fmt.Fprintln(os.Stderr, "Correct the problems above, or pass --force to continue anyway.")
	return true, nil
}

func runQuiz(cfg *config.Config, languageText string) error {
	language, err := cards.ParseLanguage(languageText)
	if err != nil {
		return err
	}
	suitable := scheduler.DefaultSuitableQuestions().ForLanguage(language)
	if len(suitable) == 0 {
		return fmt.Errorf("don't know how to quiz %s yet", language.FullName())
	}

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

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	queue := scheduler.ExpiredCards(rng, repo, suitable)
	if len(queue) == 0 {
		fmt.Println("Nothing to study right now.")
		return nil
	}

	presentation := quiz.NewText(quiz.NewStdin(os.Stdin, os.Stdout))
	session := quiz.NewSession(repo, presentation, queue, time.Duration(cfg.Duration)*time.Minute)

	// Outcomes recorded before an aborting error still get saved.
	runErr := session.Run()
	if err := repo.Save(); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func runServe(cfg *config.Config) error {
	repo, err := storage.Open(cfg.Directory)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.LoadCards(); err != nil {
		return err
	}

	slog.Info("serving deck", "addr", cfg.Listen)
	return http.ListenAndServe(cfg.Listen, web.NewServer(repo, slog.Default()))
}
