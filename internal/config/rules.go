package config

import "fmt"

// Rules bundles the business tables that drive validation and enrichment:
// the source column map, the legacy column aliases, the memo type-code sets,
// and the division code labels. They are plain data passed into each pipeline
// component so tests can substitute them.
type Rules struct {
	ColumnMap      map[string]string `yaml:"column_map"`
	LegacyAliases  map[string]string `yaml:"legacy_aliases"`
	CreditTypes    []string          `yaml:"credit_types"`
	DebitTypes     []string          `yaml:"debit_types"`
	DivisionLabels map[string]string `yaml:"division_labels"`
}

// applyDefaults fills any table left empty by the config file.
func (r *Rules) applyDefaults() {
	if len(r.ColumnMap) == 0 {
		r.ColumnMap = map[string]string{
			ColDocType:     "sa_ty",
			ColDivision:    "division",
			ColSalesOrg:    "sorg",
			ColSalesOffice: "sales_office",
			ColSalesGroup:  "sales_group",
			ColCustomerID:  "customer_id",
			ColNetValue:    "net_value",
			ColCreatedOn:   "created_on",
		}
	}
	if len(r.LegacyAliases) == 0 {
		r.LegacyAliases = map[string]string{
			ColNetValueLegacy: ColNetValue,
		}
	}
	if len(r.CreditTypes) == 0 {
		r.CreditTypes = []string{"ZCR", "ZICR"}
	}
	if len(r.DebitTypes) == 0 {
		r.DebitTypes = []string{"ZDR"}
	}
	if len(r.DivisionLabels) == 0 {
		r.DivisionLabels = map[string]string{
			"2": "Agregados",
			"3": "Concreto",
			"4": "Asfalto",
			"5": "Concratec products",
			"6": "Liquid Asphalt",
		}
	}
}

// validate rejects rule tables that would make the pipeline ill-defined.
// Credit and debit sets must stay disjoint or target engineering loses its
// mutual-exclusivity guarantee.
func (r *Rules) validate() error {
	if len(r.ColumnMap) == 0 {
		return fmt.Errorf("rules: column map is empty")
	}
	credit := make(map[string]bool, len(r.CreditTypes))
	for _, t := range r.CreditTypes {
		credit[t] = true
	}
	for _, t := range r.DebitTypes {
		if credit[t] {
			return fmt.Errorf("rules: type code %q is both credit and debit", t)
		}
	}
	return nil
}

// RequiredColumns returns the source column names the extract must supply,
// in the projection order used by the cleaning stage.
func (r *Rules) RequiredColumns() []string {
	return []string{
		ColDocType, ColDivision, ColSalesOrg, ColSalesOffice,
		ColSalesGroup, ColCustomerID, ColNetValue, ColCreatedOn,
	}
}

// ResolveAlias maps a legacy source column name to its current equivalent.
// Names without an alias entry are returned unchanged.
func (r *Rules) ResolveAlias(column string) string {
	if current, ok := r.LegacyAliases[column]; ok {
		return current
	}
	return column
}

// IsCreditType reports whether the given (already trimmed) type code is a
// credit memo type.
func (r *Rules) IsCreditType(code string) bool {
	for _, t := range r.CreditTypes {
		if code == t {
			return true
		}
	}
	return false
}

// IsDebitType reports whether the given type code is a debit memo type.
func (r *Rules) IsDebitType(code string) bool {
	for _, t := range r.DebitTypes {
		if code == t {
			return true
		}
	}
	return false
}

// IsKnownType reports whether the code belongs to either memo type set.
func (r *Rules) IsKnownType(code string) bool {
	return r.IsCreditType(code) || r.IsDebitType(code)
}

// DivisionLabel maps a division code to its product-line label. Unknown
// codes label as UNKNOWN rather than failing; the validator's domain check
// is the stage that decides whether an unknown code is fatal.
func (r *Rules) DivisionLabel(code string) string {
	if label, ok := r.DivisionLabels[code]; ok {
		return label
	}
	return UnknownDivisionLabel
}

// IsKnownDivision reports whether the division code is in the known set.
func (r *Rules) IsKnownDivision(code string) bool {
	_, ok := r.DivisionLabels[code]
	return ok
}
