package service

import "relviz-backend/models"

// RelationRows holds the flattened rows of a single relation
type RelationRows struct {
	Goals    []string
	Objects  []string
	Subjects []string
	Rights   []models.RightRow
	Duties   []models.DutyRow
}

// FlattenRelation denormalizes one relation into table rows.
// A right without counter-duties (or a duty without secured rights) yields no rows.
func FlattenRelation(r models.Relation) RelationRows {
	source := r.SourceLabel()
	rows := RelationRows{
		Goals:    append([]string{}, r.Body.Goals...),
		Objects:  append([]string{}, r.Body.Objects...),
		Subjects: make([]string, 0, len(r.Body.Subjects)),
		Rights:   []models.RightRow{},
		Duties:   []models.DutyRow{},
	}

	for _, s := range r.Body.Subjects {
		rows.Subjects = append(rows.Subjects, s.Label())
	}

	for _, right := range r.Body.Rights {
		for _, cd := range right.CounterDuties {
			rows.Rights = append(rows.Rights, models.RightRow{
				Source:      source,
				Holder:      right.HolderName(),
				Right:       right.DescriptionText(),
				CounterDuty: cd.DescriptionText(),
				Obligor:     cd.ObligorName(),
			})
		}
	}

	for _, duty := range r.Body.Duties {
		for _, sr := range duty.SecuredRights {
			rows.Duties = append(rows.Duties, models.DutyRow{
				Source:       source,
				Obligor:      duty.ObligorName(),
				Duty:         duty.DescriptionText(),
				SecuredRight: sr.DescriptionText(),
				Holder:       sr.HolderName(),
			})
		}
	}

	return rows
}

// addRows appends one relation's rows to the aggregate
func addRows(agg *models.Aggregate, rows RelationRows) {
	agg.Goals = append(agg.Goals, rows.Goals...)
	agg.Objects = append(agg.Objects, rows.Objects...)
	agg.Subjects = append(agg.Subjects, rows.Subjects...)
	agg.Rights = append(agg.Rights, rows.Rights...)
	agg.Duties = append(agg.Duties, rows.Duties...)
}

// Flatten folds every relation, in input order, into one aggregate
func Flatten(relations []models.Relation) *models.Aggregate {
	agg := models.NewAggregate()
	for _, r := range relations {
		addRows(agg, FlattenRelation(r))
	}
	return agg
}
