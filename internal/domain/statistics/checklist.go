package statistics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/trading-journal-backend/internal/domain/entry"
	"github.com/trading-journal-backend/internal/domain/journal"
)

// TemplateUsage counts how often a checklist item was ticked
type TemplateUsage struct {
	TemplateID uuid.UUID
	Text       string
	Checked    int
	Total      int
}

// CheckedPercentage is Checked / Total * 100
func (u TemplateUsage) CheckedPercentage() decimal.Decimal {
	return percentage(u.Checked, u.Total)
}

// TemplateSplit compares outcomes of entries that ticked an item with those that did not
type TemplateSplit struct {
	TemplateID uuid.UUID
	Text       string
	checked    tally
	unchecked  tally
}

// CheckedTotal counts classified entries with the item ticked
func (s TemplateSplit) CheckedTotal() int {
	return s.checked.classified()
}

// UncheckedTotal counts classified entries with the item left unticked
func (s TemplateSplit) UncheckedTotal() int {
	return s.unchecked.classified()
}

// CheckedWinRate is the win rate over classified entries with the item ticked
func (s TemplateSplit) CheckedWinRate() decimal.Decimal {
	return s.checked.winRate()
}

// UncheckedWinRate is the win rate over classified entries with the item left unticked
func (s TemplateSplit) UncheckedWinRate() decimal.Decimal {
	return s.unchecked.winRate()
}

// Diff is the checked win rate minus the unchecked one
func (s TemplateSplit) Diff() decimal.Decimal {
	return s.CheckedWinRate().Sub(s.UncheckedWinRate())
}

// ChecklistUsage tallies statuses per template, in template order. Templates
// without any status are omitted. Statuses are used as given; callers scope them.
func ChecklistUsage(templates []journal.ChecklistTemplate, statuses []entry.ChecklistStatus) []TemplateUsage {
	counts := make(map[uuid.UUID]*TemplateUsage, len(templates))
	for _, s := range statuses {
		u, ok := counts[s.TemplateID]
		if !ok {
			u = &TemplateUsage{TemplateID: s.TemplateID}
			counts[s.TemplateID] = u
		}
		u.Total++
		if s.Checked {
			u.Checked++
		}
	}

	usage := make([]TemplateUsage, 0, len(templates))
	for _, t := range journal.SortByOrder(templates) {
		u, ok := counts[t.ID]
		if !ok || u.Total == 0 {
			continue
		}
		u.Text = t.Text
		usage = append(usage, *u)
	}
	return usage
}

// ChecklistWinRates splits classified entries by whether each template was ticked.
// Entries without a status for a template count on neither side of it. The result
// is sorted by Diff, largest first, ties in template order.
func ChecklistWinRates(entries []entry.Entry, templates []journal.ChecklistTemplate, statuses []entry.ChecklistStatus) []TemplateSplit {
	type statusKey struct {
		entryID    uuid.UUID
		templateID uuid.UUID
	}
	answers := make(map[statusKey]bool, len(statuses))
	for _, s := range statuses {
		answers[statusKey{s.EntryID, s.TemplateID}] = s.Checked
	}

	ordered := journal.SortByOrder(templates)
	splits := make([]TemplateSplit, len(ordered))
	for i, t := range ordered {
		splits[i] = TemplateSplit{TemplateID: t.ID, Text: t.Text}
	}

	for i := range entries {
		outcome := Classify(entries[i].Result)
		if outcome == Unclassified {
			continue
		}
		for j := range splits {
			checked, ok := answers[statusKey{entries[i].ID, splits[j].TemplateID}]
			if !ok {
				continue
			}
			if checked {
				splits[j].checked.add(outcome)
			} else {
				splits[j].unchecked.add(outcome)
			}
		}
	}

	sort.SliceStable(splits, func(a, b int) bool {
		return splits[a].Diff().GreaterThan(splits[b].Diff())
	})
	return splits
}
