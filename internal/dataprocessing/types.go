package dataprocessing

import (
	"strconv"
	"time"
)

// MemoRecord is a cleaned extract row with internal field names and types.
type MemoRecord struct {
	DocType     string
	Division    string
	SalesOrg    string
	SalesOffice string
	SalesGroup  string
	CustomerID  string
	NetValue    float64
	CreatedOn   time.Time
}

// StrongholdKey is the three-part organizational key of the dimension table.
type StrongholdKey struct {
	SalesOrg    string
	SalesOffice string
	SalesGroup  string
}

// StrongholdEntry is the region/stronghold classification for one key.
type StrongholdEntry struct {
	Region     string
	Stronghold string
}

// EnrichedMemo is a MemoRecord joined with the stronghold dimension. The
// organizational join keys are consumed by the join and not retained;
// Division holds the product-line label rather than the source code.
type EnrichedMemo struct {
	DocType    string
	Division   string
	CustomerID string
	Region     string
	Stronghold string
	NetValue   float64
	CreatedOn  time.Time
}

// OutputRecord is the terminal entity written to the output artifact.
type OutputRecord struct {
	Division       string
	CustomerID     string
	Region         string
	Stronghold     string
	CreditNetValue float64
	DebitNetValue  float64
	Month          string
}

// OutputHeader is the column order of the output artifact. It is a
// compatibility surface for downstream consumers; do not reorder.
func OutputHeader() []string {
	return []string{
		"division", "customer_id", "region", "stronghold",
		"credit_net_value", "debit_net_value", "month",
	}
}

// CSVRow renders the record in OutputHeader order.
func (r OutputRecord) CSVRow() []string {
	return []string{
		r.Division,
		r.CustomerID,
		r.Region,
		r.Stronghold,
		strconv.FormatFloat(r.CreditNetValue, 'f', 2, 64),
		strconv.FormatFloat(r.DebitNetValue, 'f', 2, 64),
		r.Month,
	}
}
