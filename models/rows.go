package models

// RightRow is one (right × counter-duty) pair
type RightRow struct {
	Source      string `json:"source"`
	Holder      string `json:"holder"`
	Right       string `json:"right"`
	CounterDuty string `json:"counter_duty"`
	Obligor     string `json:"obligor"`
}

// DutyRow is one (duty × secured-right) pair
type DutyRow struct {
	Source       string `json:"source"`
	Obligor      string `json:"obligor"`
	Duty         string `json:"duty"`
	SecuredRight string `json:"secured_right"`
	Holder       string `json:"holder"`
}

// Aggregate accumulates flattened rows across all relations of one input,
// preserving input order.
type Aggregate struct {
	Rights   []RightRow `json:"rights"`
	Duties   []DutyRow  `json:"duties"`
	Goals    []string   `json:"goals"`
	Objects  []string   `json:"objects"`
	Subjects []string   `json:"subjects"`
}

// NewAggregate returns an aggregate with non-nil collections
func NewAggregate() *Aggregate {
	return &Aggregate{
		Rights:   []RightRow{},
		Duties:   []DutyRow{},
		Goals:    []string{},
		Objects:  []string{},
		Subjects: []string{},
	}
}

// Totals holds the size of every aggregate collection
type Totals struct {
	Relations int `json:"relations"`
	Rights    int `json:"rights"`
	Duties    int `json:"duties"`
	Goals     int `json:"goals"`
	Objects   int `json:"objects"`
	Subjects  int `json:"subjects"`
}

// Totals counts the rows held by the aggregate
func (a *Aggregate) Totals(relations int) Totals {
	return Totals{
		Relations: relations,
		Rights:    len(a.Rights),
		Duties:    len(a.Duties),
		Goals:     len(a.Goals),
		Objects:   len(a.Objects),
		Subjects:  len(a.Subjects),
	}
}
