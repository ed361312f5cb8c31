package scheduler

import (
	"testing"
	"time"

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/history"
)

const day = 24 * time.Hour

var factoryKind = history.Translate(cards.Greek, cards.English)

// cardFactory builds answer histories by stepping a clock forward.
type cardFactory struct {
	date   time.Time
	record *history.CardRecord
}

func newCardFactory() *cardFactory {
	return &cardFactory{
		date:   time.Unix(61, 0).UTC(),
		record: history.NewCardRecord(),
	}
}

func (f *cardFactory) ask(days int, result history.QuestionResult) {
	f.date = f.date.Add(time.Duration(days) * day)
	f.record.PushQuestionRecord(factoryKind, history.QuestionRecord{Date: f.date, Result: result})
}

func (f *cardFactory) expiration(t *testing.T) (time.Duration, bool) {
	t.Helper()
	return ExpirationDuration(factoryKind, f.record)
}

func TestExpirationNeverAsked(t *testing.T) {
	f := newCardFactory()
	if d, ok := f.expiration(t); ok {
		t.Errorf("expected no expiration, got %v", d)
	}
}

func TestExpirationSingleYes(t *testing.T) {
	f := newCardFactory()
	f.ask(0, history.Yes)
	if d, ok := f.expiration(t); ok {
		t.Errorf("expected no expiration for a single answer, got %v", d)
	}
}

func TestExpirationYesYes(t *testing.T) {
	f := newCardFactory()
	f.ask(1, history.Yes)
	f.ask(2, history.Yes)
	d, ok := f.expiration(t)
	if !ok {
		t.Fatal("expected an expiration duration")
	}
	if want := 2 * day * 3 / 2; d != want {
		t.Errorf("expiration = %v, want %v", d, want)
	}
}

func TestExpirationNoYesYes(t *testing.T) {
	f := newCardFactory()
	f.ask(1, history.No)
	f.ask(1, history.Yes)
	f.ask(2, history.Yes)
	d, ok := f.expiration(t)
	if !ok {
		t.Fatal("expected an expiration duration")
	}
	if want := 2 * day * 3 / 2; d != want {
		t.Errorf("expiration = %v, want %v", d, want)
	}
}

func TestExpirationNoYesYesAlmost(t *testing.T) {
	f := newCardFactory()
	f.ask(1, history.No)
	f.ask(1, history.Yes)
	f.ask(2, history.Yes)
	f.ask(3, history.Almost)
	d, ok := f.expiration(t)
	if !ok {
		t.Fatal("expected an expiration duration")
	}
	if want := 3 * day; d != want {
		t.Errorf("expiration = %v, want %v", d, want)
	}
}

func TestExpirationNoYesYesAlmostYes(t *testing.T) {
	f := newCardFactory()
	f.ask(1, history.No)
	f.ask(1, history.Yes)
	f.ask(2, history.Yes)
	f.ask(3, history.Almost)
	f.ask(3, history.Yes)
	d, ok := f.expiration(t)
	if !ok {
		t.Fatal("expected an expiration duration")
	}
	if want := 3 * day * 3 / 2; d != want {
		t.Errorf("expiration = %v, want %v", d, want)
	}
}

func TestExpirationNoYesYesAlmostNo(t *testing.T) {
	f := newCardFactory()
	f.ask(1, history.No)
	f.ask(1, history.Yes)
	f.ask(2, history.Yes)
	f.ask(3, history.Almost)
	f.ask(3, history.No)
	d, ok := f.expiration(t)
	if !ok {
		t.Fatal("expected an expiration duration")
	}
	if want := 3 * day / 2; d != want {
		t.Errorf("expiration = %v, want %v", d, want)
	}
}

func TestExpirationScaling(t *testing.T) {
	testCases := []struct {
		name    string
		results []history.QuestionResult
		// gapsDays[i] is the spacing before entry i+1
		gapsDays []int
		want     time.Duration
	}{
		{
			name:     "yes takes max gap scaled up",
			results:  []history.QuestionResult{history.Yes, history.Yes, history.Yes},
			gapsDays: []int{1, 4},
			want:     4 * day * 3 / 2,
		},
		{
			name:     "no takes min gap scaled down",
			results:  []history.QuestionResult{history.No, history.No, history.No},
			gapsDays: []int{4, 1},
			want:     1 * day / 2,
		},
		{
			name:     "almost takes min gap unscaled",
			results:  []history.QuestionResult{history.Almost, history.Almost, history.Almost},
			gapsDays: []int{5, 2},
			want:     2 * day,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCardFactory()
			f.ask(0, tc.results[0])
			for i, g := range tc.gapsDays {
				f.ask(g, tc.results[i+1])
			}
			d, ok := f.expiration(t)
			if !ok {
				t.Fatal("expected an expiration duration")
			}
			if d != tc.want {
				t.Errorf("expiration = %v, want %v", d, tc.want)
			}
		})
	}
}
