// Package files provides discovery of source extract workbooks for the
// credit/debit memo pipeline.
//
// Discovery enumerates the spreadsheet files of an input directory and
// applies the pipeline's eligibility rules: only .xlsx files count, Excel
// temp/lock files (the "~$" prefix) are skipped, and the stronghold
// reference workbook is never treated as a source extract. Results are
// returned in ascending file-name order because the unification stage's
// first-seen deduplication depends on that ordering being deterministic.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/data", "Stronghold info.xlsx")
//	sources, err := discovery.FindSourceWorkbooks()
package files
