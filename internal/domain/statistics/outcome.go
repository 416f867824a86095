package statistics

import (
	"github.com/shopspring/decimal"
	"github.com/trading-journal-backend/internal/domain/entry"
)

// Outcome is the win-rate class of a trade result
type Outcome int

const (
	Unclassified Outcome = iota
	Positive
	Negative
)

// Classify maps a result label to its outcome. Win, BE and PartialBE count as
// positive, Loss as negative, anything else is left out of win rates.
func Classify(result entry.Result) Outcome {
	switch result {
	case entry.ResultWin, entry.ResultBE, entry.ResultPartialBE:
		return Positive
	case entry.ResultLoss:
		return Negative
	default:
		return Unclassified
	}
}

func (o Outcome) String() string {
	switch o {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "unclassified"
	}
}

type tally struct {
	positive int
	negative int
}

func (t *tally) add(o Outcome) {
	switch o {
	case Positive:
		t.positive++
	case Negative:
		t.negative++
	}
}

func (t tally) classified() int {
	return t.positive + t.negative
}

// winRate is positive / (positive + negative) * 100, zero when nothing is classified
func (t tally) winRate() decimal.Decimal {
	return percentage(t.positive, t.classified())
}
