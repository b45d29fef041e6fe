package config

// Application constants for the credit/debit memo pipeline
const (
	AppName    = "CDM Pipeline"
	AppVersion = "1.2.0"

	// File Paths (relative to working directory)
	DefaultDataDir       = "data"
	DefaultOutputDir     = "output"
	DefaultReferenceFile = "data/Stronghold info.xlsx"

	// Pipeline Settings
	DefaultSourceSheet      = "Reference"
	DefaultBatchSize        = 20_000
	DefaultWorkers          = 1
	DefaultTargetStronghold = "US-ACM"
	DefaultOutputFile       = "dataset_USA.csv"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Source column names as they appear in the extract sheets
const (
	ColDocType     = "SaTy"
	ColDivision    = "Dv"
	ColSalesOrg    = "SOrg."
	ColSalesOffice = "SOff."
	ColSalesGroup  = "SGrp"
	ColCustomerID  = "Sold-to pt"
	ColNetValue    = "SD value"
	ColCreatedOn   = "Created on"
	ColDocumentID  = "Sales doc."

	// Net-value column name used by 2020-2022 extracts
	ColNetValueLegacy = "SD Net value"
)

// Reference workbook column names
const (
	RefColSalesOrg    = "Sales Org."
	RefColSalesOffice = "Sales Office"
	RefColSalesGroup  = "Sales Group"
	RefColRegion      = "Region"
	RefColStronghold  = "Stronghold"
)

// UnknownDivisionLabel is assigned to division codes outside the known map.
const UnknownDivisionLabel = "UNKNOWN"
