package statistics

import (
	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/entry"
)

type entryOption func(e *entry.Entry)

func withSymbol(symbol string) entryOption {
	return func(e *entry.Entry) { e.Symbol = symbol }
}

func withStrategy(strategy string) entryOption {
	return func(e *entry.Entry) { e.Strategy = strategy }
}

func withEmotion(emotion string) entryOption {
	return func(e *entry.Entry) { e.Emotion = emotion }
}

func withDate(date string) entryOption {
	return func(e *entry.Entry) { e.EntryDate = date }
}

func withPnL(pnl string) entryOption {
	return func(e *entry.Entry) { e.PnL = entry.NumericFromText(pnl) }
}

func withRR(rr string) entryOption {
	return func(e *entry.Entry) { e.InitialRR = entry.NumericFromText(rr) }
}

func withPosition(position entry.PositionType) entryOption {
	return func(e *entry.Entry) { e.PositionType = position }
}

func newEntry(result entry.Result, opts ...entryOption) entry.Entry {
	e := entry.Entry{
		ID:     uuid.New(),
		Result: result,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
