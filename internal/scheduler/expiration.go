// Package scheduler decides when a card-question pair is due and builds
// the ordered queue for a study session.
package scheduler

import (
	"time"

	"github.com/mathema-dev/mathema/internal/history"
)

// Here are the patterns:
//
//	_  = any answer
//	M  = almost answer
//	Y  = yes answer
//	N  = no answer
//
// "All M":
//	M+
//	^^ return minimum duration
//
// "Trailing M":
//	.... _ M+
//	       ^^ return minimum of these durations
//
// "Trailing Y":
//	.... _ Y+
//	       ^^ increase maximum of these durations
//
// "Trailing N":
//	.... _ N+
//	       ^^ decrease minimum of these durations

// ExpirationDuration computes how long after the most recent answer the
// card-question pair becomes due again. It walks the trailing run of
// answers sharing the latest result and reduces the gaps between them.
// ok is false when there is no history for the kind, or when the trailing
// run has length one and so offers no gap to reduce.
func ExpirationDuration(kind history.QuestionKind, record *history.CardRecord) (d time.Duration, ok bool) {
	questions := record.Questions(kind)
	if len(questions) == 0 {
		return 0, false
	}

	last := questions[len(questions)-1]
	var gaps []time.Duration
	for i := len(questions) - 1; i >= 1; i-- {
		if questions[i].Result != last.Result {
			break
		}
		gaps = append(gaps, questions[i].Date.Sub(questions[i-1].Date))
	}
	if len(gaps) == 0 {
		return 0, false
	}

	switch last.Result {
	case history.Yes:
		return increase(maxDuration(gaps)), true
	case history.Almost:
		return minDuration(gaps), true
	default:
		return decrease(minDuration(gaps)), true
	}
}

func increase(d time.Duration) time.Duration { return d * 3 / 2 }
func decrease(d time.Duration) time.Duration { return d / 2 }

func maxDuration(ds []time.Duration) time.Duration {
	m := ds[0]
	for _, d := range ds[1:] {
		if d > m {
			m = d
		}
	}
	return m
}

func minDuration(ds []time.Duration) time.Duration {
	m := ds[0]
	for _, d := range ds[1:] {
		if d < m {
			m = d
		}
	}
	return m
}
