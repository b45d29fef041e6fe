package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cdmcli/internal/errors"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	logger, _ := testLogger(t)
	return NewNormalizer(testRules(t), logger)
}

func TestClean(t *testing.T) {
	batch := rawTable(
		sourceRow("1", " ZCR ", "4", "1000", "O-10", "G-1", "C-77", "1200.50", "2023-07-15"),
		sourceRow("2", "ZDR", "2", "2000", "O-20", "G-2", "C-88", "0", "2023-08-01"),
	)

	records, err := newTestNormalizer(t).Clean(batch)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "ZCR", first.DocType, "type code must be trimmed")
	assert.Equal(t, "4", first.Division)
	assert.Equal(t, "1000", first.SalesOrg)
	assert.Equal(t, "O-10", first.SalesOffice)
	assert.Equal(t, "G-1", first.SalesGroup)
	assert.Equal(t, "C-77", first.CustomerID)
	assert.Equal(t, 1200.50, first.NetValue)
	assert.Equal(t, time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC), first.CreatedOn)

	// Zero net value is retained, not treated as invalid
	assert.Equal(t, 0.0, records[1].NetValue)
}

func TestCleanRowCountPreserved(t *testing.T) {
	batch := rawTable(
		sourceRow("1", "ZCR", "4", "1000", "O-10", "G-1", "C-1", "10", "2023-07-15"),
		sourceRow("2", "ZCR", "4", "1000", "O-10", "G-1", "C-2", "20", "2023-07-15"),
		sourceRow("3", "ZCR", "4", "1000", "O-10", "G-1", "C-3", "30", "2023-07-15"),
	)

	records, err := newTestNormalizer(t).Clean(batch)
	require.NoError(t, err)
	assert.Len(t, records, batch.NumRows())
}

func TestCleanUnparsableNetValueDefaultsToZero(t *testing.T) {
	// Post-validation there should be none, but the stage must not fail
	batch := rawTable(sourceRow("1", "ZCR", "4", "1000", "O-10", "G-1", "C-1", "??", "2023-07-15"))

	records, err := newTestNormalizer(t).Clean(batch)
	require.NoError(t, err)
	assert.Equal(t, 0.0, records[0].NetValue)
}

func TestCleanMissingColumnFails(t *testing.T) {
	batch := &Table{Columns: []string{"SaTy"}, Rows: [][]string{{"ZCR"}}}

	_, err := newTestNormalizer(t).Clean(batch)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestCleanUnparsableDateFails(t *testing.T) {
	batch := rawTable(sourceRow("1", "ZCR", "4", "1000", "O-10", "G-1", "C-1", "10", "someday"))

	_, err := newTestNormalizer(t).Clean(batch)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}
