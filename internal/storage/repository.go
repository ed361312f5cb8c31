// Package storage owns the deck repository on disk: a git work tree
// holding the card files plus a sqlite database holding the answer
// history. History is loaded as one snapshot at open and written back as
// one snapshot on save.
package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/history"
)

const dbFileName = "mathema.db"

// Repository is the open deck: directory, git handle, sqlite connection,
// the in-memory history database, and (after LoadCards) the cards by
// uuid. It assumes a single exclusive owner and performs no locking.
type Repository struct {
	dir      string
	git      *git.Repository
	conn     *sql.DB
	database *history.Database

	cards     map[uuid.UUID]*cards.Card
	noUUID    []*cards.Card
	cardOrder []uuid.UUID
}

// Create makes a new deck directory with a fresh git repository and an
// empty history database. It fails if the directory already exists.
func Create(dir string) (*Repository, error) {
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create deck directory %s: %w", dir, err)
	}

	gitRepo, err := git.PlainInit(dir, false)
	if err != nil {
		return nil, fmt.Errorf("failed to init git repository in %s: %w", dir, err)
	}

	// The history database is per machine, not shared through git.
	ignorePath := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(ignorePath, []byte(dbFileName+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write .gitignore: %w", err)
	}

	r := &Repository{
		dir:      dir,
		git:      gitRepo,
		database: history.NewDatabase(),
		cards:    make(map[uuid.UUID]*cards.Card),
	}
	if err := r.openConn(); err != nil {
		return nil, err
	}
	if err := r.commit(".gitignore", "mathema: initialize deck"); err != nil {
		return nil, err
	}
	return r, nil
}

// Open opens an existing deck directory and loads the history snapshot.
func Open(dir string) (*Repository, error) {
	gitRepo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("no deck found at %s (try `mathema new`): %w", dir, err)
	}

	r := &Repository{
		dir:   dir,
		git:   gitRepo,
		cards: make(map[uuid.UUID]*cards.Card),
	}
	if err := r.openConn(); err != nil {
		return nil, err
	}
	if err := r.loadDatabase(); err != nil {
		r.conn.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repository) openConn() error {
	conn, err := sql.Open("sqlite", filepath.Join(r.dir, dbFileName))
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return fmt.Errorf("failed to connect to history database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	r.conn = conn
	return nil
}

// Close closes the sqlite connection. It does not save.
func (r *Repository) Close() error {
	return r.conn.Close()
}

// Dir returns the deck directory.
func (r *Repository) Dir() string { return r.dir }

// Database returns the in-memory history store.
func (r *Repository) Database() *history.Database {
	return r.database
}

// loadDatabase reads the whole history snapshot out of sqlite.
func (r *Repository) loadDatabase() error {
	db := history.NewDatabase()

	rows, err := r.conn.Query(`SELECT path FROM card_files ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("failed to load card file registry: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return fmt.Errorf("failed to scan card file row: %w", err)
		}
		db.AddCardFile(path)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load card file registry: %w", err)
	}

	recordRows, err := r.conn.Query(`
		SELECT card_uuid, translate_from, translate_to, asked_at, result
		FROM question_records
		ORDER BY card_uuid, translate_from, translate_to, seq
	`)
	if err != nil {
		return fmt.Errorf("failed to load question records: %w", err)
	}
	defer recordRows.Close()
	for recordRows.Next() {
		var (
			idText, fromText, toText, resultText string
			askedAt                              time.Time
		)
		if err := recordRows.Scan(&idText, &fromText, &toText, &askedAt, &resultText); err != nil {
			return fmt.Errorf("failed to scan question record row: %w", err)
		}
		id, err := uuid.Parse(idText)
		if err != nil {
			return fmt.Errorf("malformed card uuid %q in history: %w", idText, err)
		}
		from, err := cards.ParseLanguage(fromText)
		if err != nil {
			return fmt.Errorf("malformed question kind in history: %w", err)
		}
		to, err := cards.ParseLanguage(toText)
		if err != nil {
			return fmt.Errorf("malformed question kind in history: %w", err)
		}
		result, err := history.ParseQuestionResult(resultText)
		if err != nil {
			return fmt.Errorf("malformed result in history: %w", err)
		}
		db.CardRecordMut(id).PushQuestionRecord(history.Translate(from, to), history.QuestionRecord{
			Date:   askedAt.UTC(),
			Result: result,
		})
	}
	if err := recordRows.Err(); err != nil {
		return fmt.Errorf("failed to load question records: %w", err)
	}

	r.database = db
	return nil
}

// Save writes the whole history snapshot back to sqlite in one
// transaction.
func (r *Repository) Save() error {
	tx, err := r.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM card_files`); err != nil {
		return fmt.Errorf("failed to clear card file registry: %w", err)
	}
	for _, path := range r.database.CardFiles() {
		if _, err := tx.Exec(`INSERT INTO card_files (path) VALUES (?)`, path); err != nil {
			return fmt.Errorf("failed to save card file %s: %w", path, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM question_records`); err != nil {
		return fmt.Errorf("failed to clear question records: %w", err)
	}
	for _, id := range r.database.RecordUUIDs() {
		record := r.database.CardRecord(id)
		for _, kind := range record.Kinds() {
			for seq, q := range record.Questions(kind) {
				_, err := tx.Exec(`
					INSERT INTO question_records
						(card_uuid, translate_from, translate_to, seq, asked_at, result)
					VALUES (?, ?, ?, ?, ?, ?)
				`,
					id.String(),
					kind.From.Abbreviation(),
					kind.To.Abbreviation(),
					seq,
					q.Date.UTC(),
					q.Result.String(),
				)
				if err != nil {
					return fmt.Errorf("failed to save record for card %s: %w", id, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save transaction: %w", err)
	}
	return nil
}

// AllCardFiles walks the deck directory and returns the relative paths
// of every .cards file, registered or not.
func (r *Repository) AllCardFiles() ([]string, error) {
	var results []string
	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".cards") {
			return nil
		}
		rel, err := filepath.Rel(r.dir, path)
		if err != nil {
			return err
		}
		results = append(results, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk deck directory %s: %w", r.dir, err)
	}
	return results, nil
}

// ParseCardFile parses one card file given its deck-relative path.
func (r *Repository) ParseCardFile(rel string) ([]*cards.Card, error) {
	return cards.ParseFile(filepath.Join(r.dir, rel))
}

// LoadCards parses every registered card file into memory, indexing
// cards by uuid. Cards without a uuid are kept aside; `mathema status`
// reports them and `mathema add` repairs them.
func (r *Repository) LoadCards() error {
	r.cards = make(map[uuid.UUID]*cards.Card)
	r.noUUID = nil
	r.cardOrder = nil

	for _, rel := range r.database.CardFiles() {
		parsed, err := r.ParseCardFile(rel)
		if err != nil {
			return fmt.Errorf("failed to load card file %s: %w", rel, err)
		}
		for _, card := range parsed {
			if card.UUID == uuid.Nil {
				r.noUUID = append(r.noUUID, card)
				continue
			}
			if _, dup := r.cards[card.UUID]; dup {
				return fmt.Errorf("duplicate card uuid %s in %s", card.UUID, rel)
			}
			r.cards[card.UUID] = card
			r.cardOrder = append(r.cardOrder, card.UUID)
		}
	}
	return nil
}

// Card returns a loaded card by uuid, or nil.
func (r *Repository) Card(id uuid.UUID) *cards.Card {
	return r.cards[id]
}

// CardUUIDs returns the loaded card uuids in card-file order.
func (r *Repository) CardUUIDs() []uuid.UUID {
	return r.cardOrder
}

// CardsWithoutUUID returns loaded cards still missing an identity.
func (r *Repository) CardsWithoutUUID() []*cards.Card {
	return r.noUUID
}

// AddCardFile registers a card file with the deck: cards missing a uuid
// get a fresh one, the file is rewritten in place, the registry is
// saved, and the file is committed to git.
func (r *Repository) AddCardFile(rel string) error {
	parsed, err := r.ParseCardFile(rel)
	if err != nil {
		return err
	}

	assigned := 0
	for _, card := range parsed {
		if card.UUID == uuid.Nil {
			card.UUID = uuid.New()
			assigned++
		}
	}
	if assigned > 0 {
		if err := r.writeCardFile(rel, parsed); err != nil {
			return err
		}
	}

	r.database.AddCardFile(rel)
	if err := r.Save(); err != nil {
		return err
	}

	return r.commit(rel, fmt.Sprintf("mathema: add %s", rel))
}

// writeCardFile atomically replaces a card file: write a temp file in
// the same directory, then rename over the original.
func (r *Repository) writeCardFile(rel string, parsed []*cards.Card) error {
	abs := filepath.Join(r.dir, rel)
	tmp, err := os.CreateTemp(filepath.Dir(abs), ".mathema-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", rel, err)
	}
	defer os.Remove(tmp.Name())

	if err := cards.WriteCards(tmp, parsed); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write card file %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), abs); err != nil {
		return fmt.Errorf("failed to replace card file %s: %w", rel, err)
	}
	return nil
}

// commit stages one path and commits it with the deck's signature.
func (r *Repository) commit(rel, message string) error {
	wt, err := r.git.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get git worktree: %w", err)
	}
	if _, err := wt.Add(rel); err != nil {
		return fmt.Errorf("failed to stage %s: %w", rel, err)
	}
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "mathema",
			Email: "mathema@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", rel, err)
	}
	return nil
}
