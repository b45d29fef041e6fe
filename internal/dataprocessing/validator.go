package dataprocessing

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"cdmcli/internal/config"
	apperrors "cdmcli/internal/errors"
)

// maxExampleValues bounds how many offending values an invariant error
// carries for operator context.
const maxExampleValues = 3

// Validator enforces schema and domain-range invariants on one batch of raw
// rows. Non-numeric net values are common upstream noise and are dropped
// per-row; negative values, null dates and unknown categorical codes
// indicate schema drift and fail the whole batch.
type Validator struct {
	rules  *config.Rules
	logger *slog.Logger
}

// NewValidator creates a validator bound to the given business rules.
func NewValidator(rules *config.Rules, logger *slog.Logger) *Validator {
	return &Validator{rules: rules, logger: logger}
}

// Validate runs the ordered checks against a batch and returns the
// surviving rows plus the count of rows dropped for non-numeric net values.
// The checks run against the source column names; renaming happens later in
// the cleaning stage and this ordering must not change.
func (v *Validator) Validate(batch *Table) (*Table, int, error) {
	if err := v.checkSchema(batch); err != nil {
		return nil, 0, err
	}

	survivors, dropped := v.dropNonNumeric(batch)
	if dropped > 0 {
		v.logger.Warn("rows with non-numeric net value dropped",
			slog.Int("dropped", dropped))
	}

	if err := v.checkNonNegative(survivors); err != nil {
		return nil, dropped, err
	}
	if err := v.checkDatesPresent(survivors); err != nil {
		return nil, dropped, err
	}
	if err := v.checkDocTypes(survivors); err != nil {
		return nil, dropped, err
	}
	if err := v.checkDivisions(survivors); err != nil {
		return nil, dropped, err
	}

	v.logger.Debug("batch validated", slog.Int("rows", survivors.NumRows()))
	return survivors, dropped, nil
}

// checkSchema verifies every required source column is present. Missing
// columns are a hard failure; dropping rows cannot recover from them.
func (v *Validator) checkSchema(batch *Table) error {
	var missing []string
	for _, col := range v.rules.RequiredColumns() {
		if batch.ColumnIndex(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError(
			fmt.Sprintf("source columns missing: %v", missing)).
			WithContext("missing_columns", missing)
	}
	return nil
}

// dropNonNumeric removes rows whose net value does not coerce to a finite
// number. ParseFloat accepts "NaN" and infinity spellings, which are not
// monetary values; those rows drop here like any other coercion failure.
func (v *Validator) dropNonNumeric(batch *Table) (*Table, int) {
	idx := batch.ColumnIndex(config.ColNetValue)
	survivors := NewTable(batch.Columns)
	dropped := 0
	for _, row := range batch.Rows {
		value, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			dropped++
			continue
		}
		survivors.Rows = append(survivors.Rows, row)
	}
	return survivors, dropped
}

// checkNonNegative fails the batch when any net value is negative. Negative
// memos are an upstream data-integrity bug that deserves operator attention,
// so this does not auto-heal by dropping.
func (v *Validator) checkNonNegative(batch *Table) error {
	idx := batch.ColumnIndex(config.ColNetValue)
	count := 0
	var examples []string
	for _, row := range batch.Rows {
		value, _ := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
		if value < 0 {
			count++
			if len(examples) < maxExampleValues {
				examples = append(examples, row[idx])
			}
		}
	}
	if count > 0 {
		return apperrors.NewInvariantError(
			fmt.Sprintf("%d records with negative net value", count)).
			WithContext("count", count).
			WithContext("examples", examples)
	}
	return nil
}

// checkDatesPresent fails the batch when any creation date is null.
func (v *Validator) checkDatesPresent(batch *Table) error {
	idx := batch.ColumnIndex(config.ColCreatedOn)
	count := 0
	for _, row := range batch.Rows {
		if strings.TrimSpace(row[idx]) == "" {
			count++
		}
	}
	if count > 0 {
		return apperrors.NewInvariantError(
			fmt.Sprintf("%d records with null creation date", count)).
			WithContext("count", count)
	}
	return nil
}

// checkDocTypes fails the batch on document-type codes outside the known
// credit/debit sets. The comparison trims whitespace; extracts pad the code.
func (v *Validator) checkDocTypes(batch *Table) error {
	idx := batch.ColumnIndex(config.ColDocType)
	count := 0
	var examples []string
	for _, row := range batch.Rows {
		code := strings.TrimSpace(row[idx])
		if !v.rules.IsKnownType(code) {
			count++
			if len(examples) < maxExampleValues {
				examples = append(examples, code)
			}
		}
	}
	if count > 0 {
		return apperrors.NewInvariantError(
			fmt.Sprintf("%d records with unexpected document type", count)).
			WithContext("count", count).
			WithContext("examples", examples)
	}
	return nil
}

// checkDivisions fails the batch on division codes outside the known set.
func (v *Validator) checkDivisions(batch *Table) error {
	idx := batch.ColumnIndex(config.ColDivision)
	count := 0
	var examples []string
	for _, row := range batch.Rows {
		code := strings.TrimSpace(row[idx])
		if !v.rules.IsKnownDivision(code) {
			count++
			if len(examples) < maxExampleValues {
				examples = append(examples, code)
			}
		}
	}
	if count > 0 {
		return apperrors.NewInvariantError(
			fmt.Sprintf("%d records with unexpected division code", count)).
			WithContext("count", count).
			WithContext("examples", examples)
	}
	return nil
}
