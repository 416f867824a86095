package statistics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
)

// Compose builds the report for one journal. It returns nil when there are no
// entries; callers decide how to present an empty journal. Statuses belonging to
// entries outside the given set are ignored.
func Compose(j journal.Journal, entries []entry.Entry, templates []journal.ChecklistTemplate, statuses []entry.ChecklistStatus) *Report {
	if len(entries) == 0 {
		return nil
	}

	report := &Report{
		JournalName: j.Name,
		TotalTrades: len(entries),
	}

	var (
		overall                   tally
		totalPnL, winPnL, lossPnL decimal.Decimal
		winCount, lossCount       int
		rrSum                     decimal.Decimal
		rrCount                   int
	)
	for i := range entries {
		e := &entries[i]

		switch e.Result {
		case entry.ResultWin:
			report.ResultsCount.Win++
		case entry.ResultLoss:
			report.ResultsCount.Loss++
		case entry.ResultBE:
			report.ResultsCount.BE++
		case entry.ResultPartialBE:
			report.ResultsCount.PartialBE++
		}

		switch e.PositionType {
		case entry.PositionLong:
			report.PositionTypeCount.Long++
		case entry.PositionShort:
			report.PositionTypeCount.Short++
		}

		overall.add(Classify(e.Result))

		if pnl, ok := Coerce(e.PnL).Get(); ok {
			totalPnL = totalPnL.Add(pnl)
			// strict labels: BE and PartialBE feed neither average
			switch e.Result {
			case entry.ResultWin:
				winPnL = winPnL.Add(pnl)
				winCount++
			case entry.ResultLoss:
				lossPnL = lossPnL.Add(pnl)
				lossCount++
			}
		}

		if rr, ok := Coerce(e.InitialRR).Get(); ok {
			rrSum = rrSum.Add(rr)
			rrCount++
		}
	}

	report.WinRatePercentage = round(overall.winRate(), 2)
	report.TotalPnL = totalPnL.InexactFloat64()
	report.AveragePnL = round(mean(totalPnL, len(entries)), 2)
	report.AverageWinningPnL = round(mean(winPnL, winCount), 2)
	report.AverageLosingPnL = round(mean(lossPnL, lossCount), 2)
	report.AverageInitialRR = round(mean(rrSum, rrCount), 1)

	scoped := scopeStatuses(entries, statuses)
	report.ChecklistUsage = usageRows(ChecklistUsage(templates, scoped))
	report.ChecklistWinRates = winRateRows(ChecklistWinRates(entries, templates, scoped))

	report.SymbolPerformance = buckets(Aggregate(entries, BySymbol()))
	report.StrategyPerformance = buckets(Aggregate(entries, ByStrategy()))
	report.EmotionPerformance = buckets(Aggregate(entries, ByEmotion()))
	report.SessionPerformance = buckets(Aggregate(entries, BySession()))
	report.DailyPerformance = DailyPerformance{
		Weekdays: buckets(Aggregate(entries, ByWeekday())),
		Calendar: buckets(Aggregate(entries, ByCalendarDay())),
	}
	report.MonthlyPerformance = buckets(Aggregate(entries, ByMonth()))

	return report
}

func scopeStatuses(entries []entry.Entry, statuses []entry.ChecklistStatus) []entry.ChecklistStatus {
	ids := make(map[uuid.UUID]struct{}, len(entries))
	for i := range entries {
		ids[entries[i].ID] = struct{}{}
	}

	scoped := make([]entry.ChecklistStatus, 0, len(statuses))
	for _, s := range statuses {
		if _, ok := ids[s.EntryID]; ok {
			scoped = append(scoped, s)
		}
	}
	return scoped
}

func buckets(groups []Group) []Bucket {
	rows := make([]Bucket, 0, len(groups))
	for _, g := range groups {
		row := Bucket{
			Key:     g.Key,
			Label:   g.Text,
			Count:   g.Count,
			Wins:    g.Wins(),
			Losses:  g.Losses(),
			WinRate: round(g.WinRate(), 2),
		}
		if g.TracksPnL {
			total := g.TotalPnL.InexactFloat64()
			avg := round(g.AvgPnL(), 2)
			row.TotalPnL = &total
			row.AvgPnL = &avg
		}
		rows = append(rows, row)
	}
	return rows
}

func usageRows(usage []TemplateUsage) []ChecklistItemUsage {
	rows := make([]ChecklistItemUsage, 0, len(usage))
	for _, u := range usage {
		rows = append(rows, ChecklistItemUsage{
			TemplateID:           u.TemplateID,
			Text:                 u.Text,
			CheckedPercentage:    round(u.CheckedPercentage(), 2),
			CheckedCount:         u.Checked,
			TotalEntriesWithItem: u.Total,
		})
	}
	return rows
}

func winRateRows(splits []TemplateSplit) []ChecklistWinRate {
	rows := make([]ChecklistWinRate, 0, len(splits))
	for _, s := range splits {
		rows = append(rows, ChecklistWinRate{
			TemplateID:       s.TemplateID,
			Text:             s.Text,
			CheckedTotal:     s.CheckedTotal(),
			CheckedWinRate:   round(s.CheckedWinRate(), 2),
			UncheckedTotal:   s.UncheckedTotal(),
			UncheckedWinRate: round(s.UncheckedWinRate(), 2),
			WinRateDiff:      round(s.Diff(), 2),
		})
	}
	return rows
}
