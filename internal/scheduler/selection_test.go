package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/history"
)

type fakeDeck struct {
	cards map[uuid.UUID]*cards.Card
	db    *history.Database
}

func newFakeDeck() *fakeDeck {
	return &fakeDeck{
		cards: make(map[uuid.UUID]*cards.Card),
		db:    history.NewDatabase(),
	}
}

func (d *fakeDeck) addCard(en, gr string) uuid.UUID {
	id := uuid.New()
	d.cards[id] = &cards.Card{
		UUID: id,
		Lines: []cards.CardLine{
			{Kind: cards.Meaning(cards.English), Text: en},
			{Kind: cards.Meaning(cards.Greek), Text: gr},
		},
	}
	return id
}

func (d *fakeDeck) ask(id uuid.UUID, kind history.QuestionKind, date time.Time, result history.QuestionResult) {
	d.db.CardRecordMut(id).PushQuestionRecord(kind, history.QuestionRecord{Date: date, Result: result})
}

func (d *fakeDeck) CardUUIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d.cards))
	for id := range d.cards {
		ids = append(ids, id)
	}
	return ids
}

func (d *fakeDeck) Card(id uuid.UUID) *cards.Card { return d.cards[id] }

func (d *fakeDeck) Database() *history.Database { return d.db }

var grEn = history.Translate(cards.Greek, cards.English)

// expireAfter gives (id, kind) a two-answer No history whose computed due
// date is `overdueBy` before now. Gap is one day, so the duration is 12h.
func expireAfter(d *fakeDeck, id uuid.UUID, now time.Time, overdueBy time.Duration) {
	last := now.Add(-overdueBy).Add(-12 * time.Hour)
	d.ask(id, grEn, last.Add(-24*time.Hour), history.No)
	d.ask(id, grEn, last, history.No)
}

func TestExpiredCardsNoDuplicateCards(t *testing.T) {
	deck := newFakeDeck()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	suitable := DefaultSuitableQuestions().ForLanguage(cards.Greek)

	// Both question kinds are simultaneously expired for this card.
	id := deck.addCard("dog", "σκύλος")
	for _, kind := range suitable {
		deck.ask(id, kind, now.Add(-10*24*time.Hour), history.Yes)
		deck.ask(id, kind, now.Add(-9*24*time.Hour), history.Yes)
	}
	deck.addCard("cat", "γάτα") // never asked, both kinds

	rng := rand.New(rand.NewSource(1))
	queue := expiredCardsAt(rng, deck, suitable, now)

	seen := make(map[uuid.UUID]int)
	for _, item := range queue {
		seen[item.UUID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("card %s appears %d times in the queue", id, n)
		}
	}
	if len(queue) != 2 {
		t.Errorf("expected 2 queue entries, got %d", len(queue))
	}
}

func TestExpiredCardsOverdueOrdering(t *testing.T) {
	deck := newFakeDeck()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	suitable := []history.QuestionKind{grEn}

	most := deck.addCard("house", "σπίτι")
	mid := deck.addCard("door", "πόρτα")
	least := deck.addCard("window", "παράθυρο")
	expireAfter(deck, mid, now, 48*time.Hour)
	expireAfter(deck, most, now, 96*time.Hour)
	expireAfter(deck, least, now, 2*time.Hour)

	rng := rand.New(rand.NewSource(7))
	queue := expiredCardsAt(rng, deck, suitable, now)

	want := []uuid.UUID{most, mid, least}
	if len(queue) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(queue))
	}
	for i, id := range want {
		if queue[i].UUID != id {
			t.Errorf("queue[%d] = %s, want %s", i, queue[i].UUID, id)
		}
	}
}

func TestExpiredCardsReproducibleWithSameSeed(t *testing.T) {
	deck := newFakeDeck()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	suitable := DefaultSuitableQuestions().ForLanguage(cards.Greek)

	for i := 0; i < 8; i++ {
		deck.addCard("word", "λέξη")
	}
	for i, id := range deck.CardUUIDs() {
		if i%2 == 0 {
			expireAfter(deck, id, now, time.Duration(i+1)*time.Hour)
		}
	}

	first := expiredCardsAt(rand.New(rand.NewSource(42)), deck, suitable, now)
	second := expiredCardsAt(rand.New(rand.NewSource(42)), deck, suitable, now)

	if len(first) != len(second) {
		t.Fatalf("queue lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("queues diverge at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestExpiredCardsNeverAskedAreIncluded(t *testing.T) {
	deck := newFakeDeck()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	suitable := []history.QuestionKind{grEn}

	fresh := make(map[uuid.UUID]bool)
	for i := 0; i < 5; i++ {
		fresh[deck.addCard("word", "λέξη")] = true
	}

	rng := rand.New(rand.NewSource(3))
	queue := expiredCardsAt(rng, deck, suitable, now)

	if len(queue) != len(fresh) {
		t.Fatalf("expected %d never-asked entries, got %d", len(fresh), len(queue))
	}
	for _, item := range queue {
		if !fresh[item.UUID] {
			t.Errorf("unexpected card %s in queue", item.UUID)
		}
	}
}

func TestExpiredCardsNotYetDueExcluded(t *testing.T) {
	deck := newFakeDeck()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	suitable := []history.QuestionKind{grEn}

	id := deck.addCard("sun", "ήλιος")
	// Two Yes answers one day apart, the last one an hour ago: due in
	// ~36 hours, so nothing to study.
	deck.ask(id, grEn, now.Add(-25*time.Hour), history.Yes)
	deck.ask(id, grEn, now.Add(-time.Hour), history.Yes)

	rng := rand.New(rand.NewSource(5))
	if queue := expiredCardsAt(rng, deck, suitable, now); len(queue) != 0 {
		t.Errorf("expected empty queue, got %v", queue)
	}
}

// A pair asked exactly once has no computable expiry and is no longer
// never-asked, so it drops out of scheduling entirely until a second
// answer exists. This is long-standing behavior, kept as is.
func TestExpiredCardsSingleAnswerKnownGap(t *testing.T) {
	deck := newFakeDeck()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	suitable := []history.QuestionKind{grEn}

	id := deck.addCard("sea", "θάλασσα")
	deck.ask(id, grEn, now.Add(-30*24*time.Hour), history.No)

	rng := rand.New(rand.NewSource(11))
	if queue := expiredCardsAt(rng, deck, suitable, now); len(queue) != 0 {
		t.Errorf("expected the single-answer pair to be unscheduled, got %v", queue)
	}
}

func TestSuitableForCardRequiresBothMeanings(t *testing.T) {
	card := &cards.Card{
		Lines: []cards.CardLine{
			{Kind: cards.Meaning(cards.Greek), Text: "γράφω"},
			{Kind: cards.PartOfSpeech(), Text: "verb"},
		},
	}
	if got := suitableForCard(card, DefaultSuitableQuestions().ForLanguage(cards.Greek)); len(got) != 0 {
		t.Errorf("card without English meanings should have no suitable questions, got %v", got)
	}
}
