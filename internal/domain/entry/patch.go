package entry

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrInvalidPatch is returned when a partial update carries a value of the wrong type
var ErrInvalidPatch = errors.New("invalid entry update")

// field returns a pointer to the editable field behind a JSON key, or nil when the key is not editable
func (e *Entry) field(key string) interface{} {
	switch key {
	case "entry_date":
		return &e.EntryDate
	case "end_date":
		return &e.EndDate
	case "symbol":
		return &e.Symbol
	case "position_type":
		return &e.PositionType
	case "strategy":
		return &e.Strategy
	case "initial_rr":
		return &e.InitialRR
	case "risk_percentage":
		return &e.RiskPercentage
	case "pnl":
		return &e.PnL
	case "result":
		return &e.Result
	case "confidence_level":
		return &e.ConfidenceLevel
	case "trade_rating":
		return &e.TradeRating
	case "notes":
		return &e.Notes
	case "stop_loss":
		return &e.StopLoss
	case "take_profit":
		return &e.TakeProfit
	case "custom_field_value":
		return &e.CustomFieldValue
	case "emotion":
		return &e.Emotion
	}
	return nil
}

// ApplyPatch merges a partial update keyed by JSON field name. Only keys present in
// the patch change; null clears a field. Unknown keys are ignored. The entry is left
// untouched when any value fails to decode or the result does not validate.
func (e *Entry) ApplyPatch(patch map[string]json.RawMessage) error {
	updated := *e
	for key, value := range patch {
		target := updated.field(key)
		if target == nil {
			continue
		}

		fresh := reflect.New(reflect.TypeOf(target).Elem())
		if err := json.Unmarshal(value, fresh.Interface()); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrInvalidPatch, key, err)
		}
		reflect.ValueOf(target).Elem().Set(fresh.Elem())
	}

	if err := updated.Validate(); err != nil {
		return err
	}
	updated.Strategy = strings.TrimSpace(updated.Strategy)
	updated.Touch()
	*e = updated
	return nil
}
