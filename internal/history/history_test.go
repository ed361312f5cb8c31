package history

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mathema-dev/mathema/internal/cards"
)

func TestCardRecordMutCreatesOnFirstTouch(t *testing.T) {
	db := NewDatabase()
	id := uuid.New()

	if db.CardRecord(id) != nil {
		t.Fatal("expected no record before first touch")
	}

	record := db.CardRecordMut(id)
	if record == nil {
		t.Fatal("expected a record on first touch")
	}
	if len(record.Questions(Translate(cards.English, cards.Greek))) != 0 {
		t.Error("fresh record should have no history")
	}
	if db.CardRecordMut(id) != record {
		t.Error("second touch should return the same record")
	}
}

func TestPushQuestionRecordPreservesOrder(t *testing.T) {
	record := NewCardRecord()
	kind := Translate(cards.Greek, cards.English)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		record.PushQuestionRecord(kind, QuestionRecord{
			Date:   base.Add(time.Duration(i) * 24 * time.Hour),
			Result: Yes,
		})
	}

	qs := record.Questions(kind)
	if len(qs) != 5 {
		t.Fatalf("expected 5 records, got %d", len(qs))
	}
	for i := 1; i < len(qs); i++ {
		if qs[i].Date.Before(qs[i-1].Date) {
			t.Errorf("records out of order at %d", i)
		}
	}
}

func TestKindsDeterministic(t *testing.T) {
	record := NewCardRecord()
	enGr := Translate(cards.English, cards.Greek)
	grEn := Translate(cards.Greek, cards.English)
	record.PushQuestionRecord(grEn, QuestionRecord{Date: time.Now(), Result: No})
	record.PushQuestionRecord(enGr, QuestionRecord{Date: time.Now(), Result: Yes})

	kinds := record.Kinds()
	if len(kinds) != 2 {
		t.Fatalf("expected 2 kinds, got %d", len(kinds))
	}
	if kinds[0] != enGr || kinds[1] != grEn {
		t.Errorf("kinds not in deterministic order: %v", kinds)
	}
}

func TestQuestionResultRoundTrip(t *testing.T) {
	for _, r := range []QuestionResult{Yes, Almost, No} {
		parsed, err := ParseQuestionResult(r.String())
		if err != nil {
			t.Fatalf("ParseQuestionResult(%q): %v", r.String(), err)
		}
		if parsed != r {
			t.Errorf("round trip changed %v to %v", r, parsed)
		}
	}
	if _, err := ParseQuestionResult("maybe"); err == nil {
		t.Error("expected error for unknown result")
	}
}

func TestAddCardFileIgnoresDuplicates(t *testing.T) {
	db := NewDatabase()
	db.AddCardFile("greek.cards")
	db.AddCardFile("greek.cards")
	db.AddCardFile("verbs.cards")

	files := db.CardFiles()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	if files[0] != "greek.cards" || files[1] != "verbs.cards" {
		t.Errorf("registration order not preserved: %v", files)
	}
}
