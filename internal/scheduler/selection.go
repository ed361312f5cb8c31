package scheduler

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mathema-dev/mathema/internal/cards"
	"github.com/mathema-dev/mathema/internal/history"
)

// SuitableQuestions is the read-only table of question kinds the system
// knows how to ask per card language.
type SuitableQuestions map[cards.Language][]history.QuestionKind

// DefaultSuitableQuestions lists the supported quizzes: Greek cards can
// be translated in both directions.
func DefaultSuitableQuestions() SuitableQuestions {
	return SuitableQuestions{
		cards.Greek: {
			history.Translate(cards.English, cards.Greek),
			history.Translate(cards.Greek, cards.English),
		},
	}
}

// ForLanguage returns the question kinds askable for one card language.
func (s SuitableQuestions) ForLanguage(l cards.Language) []history.QuestionKind {
	return s[l]
}

// AllKinds returns every known question kind, sorted and deduplicated.
func (s SuitableQuestions) AllKinds() []history.QuestionKind {
	var kinds []history.QuestionKind
	for _, ks := range s {
		kinds = append(kinds, ks...)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Less(kinds[j]) })
	out := kinds[:0]
	for i, k := range kinds {
		if i == 0 || k != kinds[i-1] {
			out = append(out, k)
		}
	}
	return out
}

// Deck is what the session builder needs from the card repository: the
// cards by identity and the answer history.
type Deck interface {
	CardUUIDs() []uuid.UUID
	Card(id uuid.UUID) *cards.Card
	Database() *history.Database
}

// CardQuestion is one queued session item.
type CardQuestion struct {
	UUID uuid.UUID
	Kind history.QuestionKind
}

type expiredEntry struct {
	item     CardQuestion
	overdue  time.Duration
	tiebreak int64
}

// ExpiredCards builds the session queue: every due (card, kind) pair
// ordered most-overdue first, interleaved with never-asked pairs in
// random order, at most one entry per card. Given the same deck state
// and a same-seeded rng the queue is reproducible.
func ExpiredCards(rng *rand.Rand, deck Deck, suitable []history.QuestionKind) []CardQuestion {
	return expiredCardsAt(rng, deck, suitable, time.Now())
}

func expiredCardsAt(rng *rand.Rand, deck Deck, suitable []history.QuestionKind, now time.Time) []CardQuestion {
	db := deck.Database()

	var expired []expiredEntry
	var neverAsked []CardQuestion

	ids := append([]uuid.UUID(nil), deck.CardUUIDs()...)
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		card := deck.Card(id)
		for _, kind := range suitableForCard(card, suitable) {
			item := CardQuestion{UUID: id, Kind: kind}

			record := db.CardRecord(id)
			if record == nil || len(record.Questions(kind)) == 0 {
				neverAsked = append(neverAsked, item)
				continue
			}

			duration, ok := ExpirationDuration(kind, record)
			if !ok {
				// Asked exactly once: no expiry can be computed and the
				// pair is no longer never-asked, so it is not scheduled.
				continue
			}

			questions := record.Questions(kind)
			due := questions[len(questions)-1].Date.Add(duration)
			if due.Before(now) {
				expired = append(expired, expiredEntry{
					item:     item,
					overdue:  now.Sub(due),
					tiebreak: rng.Int63(),
				})
			}
		}
	}

	sort.Slice(expired, func(i, j int) bool {
		if expired[i].overdue != expired[j].overdue {
			return expired[i].overdue > expired[j].overdue
		}
		return expired[i].tiebreak < expired[j].tiebreak
	})

	rng.Shuffle(len(neverAsked), func(i, j int) {
		neverAsked[i], neverAsked[j] = neverAsked[j], neverAsked[i]
	})

	merged := make([]CardQuestion, 0, len(expired)+len(neverAsked))
	for len(expired) > 0 && len(neverAsked) > 0 {
		if rng.Intn(2) == 0 {
			merged = append(merged, expired[0].item)
			expired = expired[1:]
		} else {
			merged = append(merged, neverAsked[0])
			neverAsked = neverAsked[1:]
		}
	}
	for _, e := range expired {
		merged = append(merged, e.item)
	}
	merged = append(merged, neverAsked...)

	seen := make(map[uuid.UUID]bool, len(merged))
	queue := merged[:0]
	for _, item := range merged {
		if seen[item.UUID] {
			continue
		}
		seen[item.UUID] = true
		queue = append(queue, item)
	}
	return queue
}

// suitableForCard intersects the session's question kinds with the
// meanings the card actually has lines for.
func suitableForCard(card *cards.Card, suitable []history.QuestionKind) []history.QuestionKind {
	var kinds []history.QuestionKind
	for _, kind := range suitable {
		if card.HasMeaning(kind.From) && card.HasMeaning(kind.To) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
