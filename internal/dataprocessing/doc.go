// Package dataprocessing implements the credit/debit memo cleaning pipeline.
//
// The pipeline runs six stages over the source extracts:
//
//	unify     - read every eligible workbook, concatenate, dedup by document id
//	validate  - schema and domain-range checks on a batch of raw rows
//	clean     - project, rename and type-coerce into MemoRecord
//	enrich    - join against the stronghold dimension, label divisions
//	filter    - keep the configured target stronghold only
//	targets   - split net value into credit/debit columns, derive the month key
//
// Validation, cleaning and enrichment run per batch under the Processor so
// peak memory stays bounded; the result is identical regardless of batch
// size. Row-level anomalies (non-numeric net values, unmatched dimension
// joins) are dropped and counted. Schema and invariant violations abort the
// whole run before any output is written.
package dataprocessing
