package service

import "relviz-backend/models"

// SubjectView is a subject with its name and type resolved
type SubjectView struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Block is the display block of one relation
type Block struct {
	Index    int               `json:"index"`
	Source   string            `json:"source"`
	Fragment string            `json:"fragment"`
	Goals    []string          `json:"goals"`
	Objects  []string          `json:"objects"`
	Subjects []SubjectView     `json:"subjects"`
	Rights   []models.RightRow `json:"rights"`
	Duties   []models.DutyRow  `json:"duties"`
}

// Report is the presentable form of a whole input document
type Report struct {
	Blocks []Block       `json:"blocks"`
	Totals models.Totals `json:"totals"`
}

// presentRelation builds a block from one relation and its own rows only
func presentRelation(index int, r models.Relation, rows RelationRows) Block {
	subjects := make([]SubjectView, 0, len(r.Body.Subjects))
	for _, s := range r.Body.Subjects {
		subjects = append(subjects, SubjectView{Name: s.NameText(), Type: s.TypeText()})
	}

	return Block{
		Index:    index,
		Source:   r.SourceLabel(),
		Fragment: r.FragmentText(),
		Goals:    rows.Goals,
		Objects:  rows.Objects,
		Subjects: subjects,
		Rights:   rows.Rights,
		Duties:   rows.Duties,
	}
}

// Present builds display blocks for every relation and accumulates
// the rows of all blocks into an aggregate in the same pass.
func Present(relations []models.Relation) (*Report, *models.Aggregate) {
	agg := models.NewAggregate()
	report := &Report{Blocks: make([]Block, 0, len(relations))}

	for i, r := range relations {
		rows := FlattenRelation(r)
		report.Blocks = append(report.Blocks, presentRelation(i+1, r, rows))
		addRows(agg, rows)
	}

	report.Totals = agg.Totals(len(relations))
	return report, agg
}
