package dataprocessing

import (
	"log/slog"

	"cdmcli/internal/config"
)

// RegionalFilter retains records whose stronghold label equals the target
// region code. The match is exact and case-sensitive; no normalization.
type RegionalFilter struct {
	stronghold string
	logger     *slog.Logger
}

// NewRegionalFilter creates a filter for the given stronghold code.
func NewRegionalFilter(stronghold string, logger *slog.Logger) *RegionalFilter {
	return &RegionalFilter{stronghold: stronghold, logger: logger}
}

// Apply filters the records. Pure filter; no schema change.
func (f *RegionalFilter) Apply(records []EnrichedMemo) []EnrichedMemo {
	kept := make([]EnrichedMemo, 0, len(records))
	for _, rec := range records {
		if rec.Stronghold == f.stronghold {
			kept = append(kept, rec)
		}
	}

	f.logger.Info("regional filter applied",
		slog.String("stronghold", f.stronghold),
		slog.Int("kept", len(kept)),
		slog.Int("excluded", len(records)-len(kept)))

	return kept
}

// TargetEngineer restates the net monetary value into the two mutually
// exclusive target columns and derives the year-month period key. Credit
// and debit type sets are disjoint by config validation, so at most one
// target carries the value.
type TargetEngineer struct {
	rules  *config.Rules
	logger *slog.Logger
}

// NewTargetEngineer creates a target engineer bound to the memo type sets.
func NewTargetEngineer(rules *config.Rules, logger *slog.Logger) *TargetEngineer {
	return &TargetEngineer{rules: rules, logger: logger}
}

// Apply computes the output records. Total function: every row survives,
// including those with a net value of 0.
func (t *TargetEngineer) Apply(records []EnrichedMemo) []OutputRecord {
	out := make([]OutputRecord, 0, len(records))
	for _, rec := range records {
		record := OutputRecord{
			Division:   rec.Division,
			CustomerID: rec.CustomerID,
			Region:     rec.Region,
			Stronghold: rec.Stronghold,
			Month:      rec.CreatedOn.Format("2006-01"),
		}
		if t.rules.IsCreditType(rec.DocType) {
			record.CreditNetValue = rec.NetValue
		}
		if t.rules.IsDebitType(rec.DocType) {
			record.DebitNetValue = rec.NetValue
		}
		out = append(out, record)
	}

	t.logger.Info("targets engineered", slog.Int("rows", len(out)))
	return out
}
