package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cdmcli/internal/errors"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	logger, _ := testLogger(t)
	return NewValidator(testRules(t), logger)
}

func validRow(docID string) []interface{} {
	return sourceRow(docID, "ZCR", "4", "1000", "O-10", "G-1", "C-1", "100.5", "2023-07-15")
}

func TestValidatePassesCleanBatch(t *testing.T) {
	batch := rawTable(validRow("1"), validRow("2"))

	survivors, dropped, err := newTestValidator(t).Validate(batch)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 2, survivors.NumRows())
}

func TestValidateSchemaFailure(t *testing.T) {
	batch := &Table{Columns: []string{"SaTy", "Dv"}, Rows: [][]string{{"ZCR", "4"}}}

	_, _, err := newTestValidator(t).Validate(batch)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "SD value")
}

func TestValidateDropsNonNumericRows(t *testing.T) {
	batch := rawTable(
		validRow("1"),
		sourceRow("2", "ZDR", "2", "1000", "O-10", "G-1", "C-2", "n/a", "2023-07-15"),
		sourceRow("3", "ZDR", "2", "1000", "O-10", "G-1", "C-3", "", "2023-07-15"),
		validRow("4"),
	)

	logger, captured := testLogger(t)
	v := NewValidator(testRules(t), logger)

	survivors, dropped, err := v.Validate(batch)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, survivors.NumRows())
	assert.True(t, captured.ContainsAttr("dropped", int64(2)))
}

func TestValidateDropsNonFiniteValues(t *testing.T) {
	// ParseFloat accepts these spellings, but they are not monetary values
	// and must drop like any other coercion failure.
	batch := rawTable(
		validRow("1"),
		sourceRow("2", "ZDR", "2", "1000", "O-10", "G-1", "C-2", "NaN", "2023-07-15"),
		sourceRow("3", "ZDR", "2", "1000", "O-10", "G-1", "C-3", "+Inf", "2023-07-15"),
		sourceRow("4", "ZDR", "2", "1000", "O-10", "G-1", "C-4", "-Inf", "2023-07-15"),
		sourceRow("5", "ZDR", "2", "1000", "O-10", "G-1", "C-5", "nan", "2023-07-15"),
	)

	survivors, dropped, err := newTestValidator(t).Validate(batch)
	require.NoError(t, err)
	assert.Equal(t, 4, dropped)
	assert.Equal(t, 1, survivors.NumRows())
}

func TestValidateZeroNetValueIsValid(t *testing.T) {
	batch := rawTable(sourceRow("1", "ZCR", "4", "1000", "O-10", "G-1", "C-1", "0", "2023-07-15"))

	survivors, dropped, err := newTestValidator(t).Validate(batch)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, 1, survivors.NumRows())
}

func TestValidateNegativeNetValueIsFatal(t *testing.T) {
	batch := rawTable(
		validRow("1"),
		sourceRow("2", "ZDR", "2", "1000", "O-10", "G-1", "C-2", "-50", "2023-07-15"),
	)

	_, _, err := newTestValidator(t).Validate(batch)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvariant))
	assert.Contains(t, err.Error(), "negative")
}

func TestValidateNullDateIsFatal(t *testing.T) {
	batch := rawTable(sourceRow("1", "ZCR", "4", "1000", "O-10", "G-1", "C-1", "100", ""))

	_, _, err := newTestValidator(t).Validate(batch)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvariant))
	assert.Contains(t, err.Error(), "null creation date")
}

func TestValidateUnknownDocTypeIsFatal(t *testing.T) {
	batch := rawTable(sourceRow("1", "ZXX", "4", "1000", "O-10", "G-1", "C-1", "100", "2023-07-15"))

	_, _, err := newTestValidator(t).Validate(batch)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvariant))
	assert.Contains(t, err.Error(), "document type")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"ZXX"}, appErr.Context["examples"])
}

func TestValidateTrimsDocTypeBeforeDomainCheck(t *testing.T) {
	batch := rawTable(sourceRow("1", "  ZCR ", "4", "1000", "O-10", "G-1", "C-1", "100", "2023-07-15"))

	_, _, err := newTestValidator(t).Validate(batch)
	assert.NoError(t, err)
}

func TestValidateUnknownDivisionIsFatal(t *testing.T) {
	batch := rawTable(sourceRow("1", "ZCR", "9", "1000", "O-10", "G-1", "C-1", "100", "2023-07-15"))

	_, _, err := newTestValidator(t).Validate(batch)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvariant))
	assert.Contains(t, err.Error(), "division")
}

// Non-numeric rows must be dropped before the hard checks run: a negative
// value hidden behind an unparsable cell cannot exist, but an unparsable
// cell must not mask as an invariant failure either.
func TestValidateDropRunsBeforeHardChecks(t *testing.T) {
	batch := rawTable(
		sourceRow("1", "ZXX", "9", "1000", "O-10", "G-1", "C-1", "oops", ""),
		validRow("2"),
	)

	survivors, dropped, err := newTestValidator(t).Validate(batch)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, survivors.NumRows())
}
