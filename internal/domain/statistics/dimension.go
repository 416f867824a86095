package statistics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trading-journal-backend/internal/domain/entry"
)

// Ordering decides how the groups of a dimension are sorted
type Ordering int

const (
	// OrderFirstSeen keeps groups in the order their first entry appeared
	OrderFirstSeen Ordering = iota
	// OrderCountDesc sorts by entry count, largest first, ties by first appearance
	OrderCountDesc
	// OrderKeyAsc sorts by key
	OrderKeyAsc
	// OrderCanonical emits every canonical label in its fixed order, empty or not
	OrderCanonical
)

// KeyFunc extracts the group of an entry. ok is false when the entry has no group on the axis.
type KeyFunc func(e *entry.Entry) (label Label, ok bool)

// Dimension describes one grouping axis of the report
type Dimension struct {
	Name      string
	Key       KeyFunc
	TracksPnL bool
	Order     Ordering
	Canonical []Label
}

// Group is the raw tally of one bucket. Rates and averages are derived unrounded.
type Group struct {
	Label
	Count     int
	TracksPnL bool
	TotalPnL  decimal.Decimal
	outcomes  tally
}

// Wins counts Win, BE and PartialBE entries
func (g Group) Wins() int {
	return g.outcomes.positive
}

// Losses counts Loss entries
func (g Group) Losses() int {
	return g.outcomes.negative
}

// WinRate is computed over classified entries only
func (g Group) WinRate() decimal.Decimal {
	return g.outcomes.winRate()
}

// AvgPnL divides the PnL total by every entry in the group, including those without a PnL
func (g Group) AvgPnL() decimal.Decimal {
	return mean(g.TotalPnL, g.Count)
}

// Aggregate groups entries along the dimension. Entries without a key are skipped.
func Aggregate(entries []entry.Entry, dim Dimension) []Group {
	groups := make([]Group, 0, len(dim.Canonical))
	index := make(map[string]int, len(dim.Canonical))
	for _, label := range dim.Canonical {
		index[label.Key] = len(groups)
		groups = append(groups, Group{Label: label, TracksPnL: dim.TracksPnL})
	}

	for i := range entries {
		e := &entries[i]
		label, ok := dim.Key(e)
		if !ok || label.Key == "" {
			continue
		}

		pos, seen := index[label.Key]
		if !seen {
			pos = len(groups)
			index[label.Key] = pos
			groups = append(groups, Group{Label: label, TracksPnL: dim.TracksPnL})
		}

		g := &groups[pos]
		g.Count++
		g.outcomes.add(Classify(e.Result))
		if dim.TracksPnL {
			if pnl, ok := Coerce(e.PnL).Get(); ok {
				g.TotalPnL = g.TotalPnL.Add(pnl)
			}
		}
	}

	switch dim.Order {
	case OrderCountDesc:
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Count > groups[j].Count
		})
	case OrderKeyAsc:
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Key < groups[j].Key
		})
	}
	return groups
}

func textKey(field func(e *entry.Entry) string) KeyFunc {
	return func(e *entry.Entry) (Label, bool) {
		value := strings.TrimSpace(field(e))
		if value == "" {
			return Label{}, false
		}
		return Label{Key: value, Text: value}, true
	}
}

func timeKey(label func(t time.Time) Label) KeyFunc {
	return func(e *entry.Entry) (Label, bool) {
		t, ok := ParseTimestamp(e.EntryDate)
		if !ok {
			return Label{}, false
		}
		return label(t), true
	}
}

func dayLabel(t time.Time) Label {
	key := DayKey(t)
	return Label{Key: key, Text: key}
}

func monthLabel(t time.Time) Label {
	return Label{Key: MonthKey(t), Text: MonthLabel(t)}
}

// BySymbol groups by ticker symbol, most traded first
func BySymbol() Dimension {
	return Dimension{
		Name:  "symbol",
		Key:   textKey(func(e *entry.Entry) string { return e.Symbol }),
		Order: OrderCountDesc,
	}
}

// ByStrategy groups by strategy name with PnL, most used first
func ByStrategy() Dimension {
	return Dimension{
		Name:      "strategy",
		Key:       textKey(func(e *entry.Entry) string { return e.Strategy }),
		TracksPnL: true,
		Order:     OrderCountDesc,
	}
}

// ByEmotion groups by the recorded emotion with PnL, most frequent first
func ByEmotion() Dimension {
	return Dimension{
		Name:      "emotion",
		Key:       textKey(func(e *entry.Entry) string { return e.Emotion }),
		TracksPnL: true,
		Order:     OrderCountDesc,
	}
}

// BySession groups by trading session of the entry time
func BySession() Dimension {
	return Dimension{
		Name:      "session",
		Key:       timeKey(SessionOf),
		Order:     OrderCanonical,
		Canonical: Sessions(),
	}
}

// ByWeekday groups by day of the week, Monday first
func ByWeekday() Dimension {
	return Dimension{
		Name:      "weekday",
		Key:       timeKey(WeekdayOf),
		Order:     OrderCanonical,
		Canonical: Weekdays(),
	}
}

// ByCalendarDay groups by date with PnL, in order of first appearance
func ByCalendarDay() Dimension {
	return Dimension{
		Name:      "calendar",
		Key:       timeKey(dayLabel),
		TracksPnL: true,
		Order:     OrderFirstSeen,
	}
}

// ByMonth groups by month with PnL, oldest first
func ByMonth() Dimension {
	return Dimension{
		Name:      "month",
		Key:       timeKey(monthLabel),
		TracksPnL: true,
		Order:     OrderKeyAsc,
	}
}
