package dataprocessing

import (
	"log/slog"
	"sort"

	"cdmcli/internal/config"
)

// Enricher joins cleaned records against the stronghold dimension on the
// three-part organizational key and maps division codes to product-line
// labels. The stronghold map is read-only after load, so one enricher may
// serve concurrent batch workers.
type Enricher struct {
	strongholds map[StrongholdKey]StrongholdEntry
	rules       *config.Rules
	logger      *slog.Logger
}

// NewEnricher creates an enricher over a loaded stronghold map.
func NewEnricher(strongholds map[StrongholdKey]StrongholdEntry, rules *config.Rules, logger *slog.Logger) *Enricher {
	return &Enricher{strongholds: strongholds, rules: rules, logger: logger}
}

// Enrich joins each record with its stronghold entry. Records with no match
// are dropped and counted; that is the only structural shrink this stage can
// cause. Division codes outside the known map label as UNKNOWN and are never
// dropped. Returns the enriched records and the join-miss count.
func (e *Enricher) Enrich(records []MemoRecord) ([]EnrichedMemo, int) {
	enriched := make([]EnrichedMemo, 0, len(records))
	misses := 0
	strongholdSet := make(map[string]bool)
	regionSet := make(map[string]bool)

	for _, rec := range records {
		key := StrongholdKey{
			SalesOrg:    rec.SalesOrg,
			SalesOffice: rec.SalesOffice,
			SalesGroup:  rec.SalesGroup,
		}
		entry, ok := e.strongholds[key]
		if !ok {
			misses++
			continue
		}

		strongholdSet[entry.Stronghold] = true
		regionSet[entry.Region] = true

		enriched = append(enriched, EnrichedMemo{
			DocType:    rec.DocType,
			Division:   e.rules.DivisionLabel(rec.Division),
			CustomerID: rec.CustomerID,
			Region:     entry.Region,
			Stronghold: entry.Stronghold,
			NetValue:   rec.NetValue,
			CreatedOn:  rec.CreatedOn,
		})
	}

	if misses > 0 {
		e.logger.Warn("records without stronghold match dropped",
			slog.Int("dropped", misses))
	}
	e.logger.Info("batch enriched",
		slog.Int("rows_before", len(records)),
		slog.Int("rows_after", len(enriched)),
		slog.Any("strongholds", sortedKeys(strongholdSet)),
		slog.Any("regions", sortedKeys(regionSet)))

	return enriched, misses
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
