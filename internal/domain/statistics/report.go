package statistics

import "github.com/google/uuid"

// Report is the aggregate performance summary of one journal
type Report struct {
	JournalName         string               `json:"journal_name" bson:"journal_name"`
	TotalTrades         int                  `json:"total_trades" bson:"total_trades"`
	WinRatePercentage   float64              `json:"win_rate_percentage" bson:"win_rate_percentage"`
	ResultsCount        ResultsCount         `json:"results_count" bson:"results_count"`
	PositionTypeCount   PositionTypeCount    `json:"position_type_count" bson:"position_type_count"`
	TotalPnL            float64              `json:"total_pnl" bson:"total_pnl"`
	AveragePnL          float64              `json:"average_pnl" bson:"average_pnl"`
	AverageWinningPnL   float64              `json:"average_winning_pnl" bson:"average_winning_pnl"`
	AverageLosingPnL    float64              `json:"average_losing_pnl" bson:"average_losing_pnl"`
	AverageInitialRR    float64              `json:"average_initial_rr" bson:"average_initial_rr"`
	ChecklistUsage      []ChecklistItemUsage `json:"checklist_usage" bson:"checklist_usage"`
	SymbolPerformance   []Bucket             `json:"symbol_performance" bson:"symbol_performance"`
	StrategyPerformance []Bucket             `json:"strategy_performance" bson:"strategy_performance"`
	SessionPerformance  []Bucket             `json:"session_performance" bson:"session_performance"`
	DailyPerformance    DailyPerformance     `json:"daily_performance" bson:"daily_performance"`
	MonthlyPerformance  []Bucket             `json:"monthly_performance" bson:"monthly_performance"`
	ChecklistWinRates   []ChecklistWinRate   `json:"checklist_win_rates" bson:"checklist_win_rates"`
	EmotionPerformance  []Bucket             `json:"emotion_performance" bson:"emotion_performance"`
}

// ResultsCount counts entries by exact result label
type ResultsCount struct {
	Win       int `json:"Win" bson:"Win"`
	Loss      int `json:"Loss" bson:"Loss"`
	BE        int `json:"BE" bson:"BE"`
	PartialBE int `json:"PartialBE" bson:"PartialBE"`
}

// PositionTypeCount counts entries by exact position label
type PositionTypeCount struct {
	Long  int `json:"Long" bson:"Long"`
	Short int `json:"Short" bson:"Short"`
}

// Bucket is one row of a grouped breakdown. PnL figures are set only for dimensions that track PnL.
type Bucket struct {
	Key      string   `json:"key" bson:"key"`
	Label    string   `json:"label" bson:"label"`
	Count    int      `json:"count" bson:"count"`
	Wins     int      `json:"wins" bson:"wins"`
	Losses   int      `json:"losses" bson:"losses"`
	WinRate  float64  `json:"win_rate" bson:"win_rate"`
	TotalPnL *float64 `json:"total_pnl,omitempty" bson:"total_pnl,omitempty"`
	AvgPnL   *float64 `json:"avg_pnl,omitempty" bson:"avg_pnl,omitempty"`
}

// DailyPerformance holds the weekday breakdown and the per-date calendar
type DailyPerformance struct {
	Weekdays []Bucket `json:"weekdays" bson:"weekdays"`
	Calendar []Bucket `json:"calendar" bson:"calendar"`
}

// ChecklistItemUsage reports how often one checklist item is ticked
type ChecklistItemUsage struct {
	TemplateID           uuid.UUID `json:"template_id" bson:"template_id"`
	Text                 string    `json:"text" bson:"text"`
	CheckedPercentage    float64   `json:"checked_percentage" bson:"checked_percentage"`
	CheckedCount         int       `json:"checked_count" bson:"checked_count"`
	TotalEntriesWithItem int       `json:"total_entries_with_item" bson:"total_entries_with_item"`
}

// ChecklistWinRate reports the win-rate effect of ticking one checklist item
type ChecklistWinRate struct {
	TemplateID       uuid.UUID `json:"template_id" bson:"template_id"`
	Text             string    `json:"text" bson:"text"`
	CheckedTotal     int       `json:"checked_total" bson:"checked_total"`
	CheckedWinRate   float64   `json:"checked_win_rate" bson:"checked_win_rate"`
	UncheckedTotal   int       `json:"unchecked_total" bson:"unchecked_total"`
	UncheckedWinRate float64   `json:"unchecked_win_rate" bson:"unchecked_win_rate"`
	WinRateDiff      float64   `json:"win_rate_diff" bson:"win_rate_diff"`
}
