// Package exporter writes the pipeline's output artifact.
//
// CSVWriter provides CSV writing with headers, optional append mode, an
// optional UTF-8 BOM for Excel compatibility, and a streaming variant for
// large result sets. The output schema itself (column names and order) is
// owned by the dataprocessing package; the exporter only renders rows.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter()
//	err := writer.WriteSimpleCSV("output/dataset_USA.csv", header, rows)
package exporter
