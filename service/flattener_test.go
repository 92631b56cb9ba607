package service

import (
	"testing"

	"relviz-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFlatten_Fixture(t *testing.T) {
	relations, err := ParseRelations(loadFixture(t))
	require.NoError(t, err)

	agg := Flatten(relations)

	assert.Equal(t, models.Totals{
		Relations: 2, Rights: 3, Duties: 3, Goals: 3, Objects: 2, Subjects: 3,
	}, agg.Totals(len(relations)))

	assert.Equal(t, []string{"Получение дохода", "Использование помещения", "Сохранность имущества"}, agg.Goals)
	assert.Equal(t, []string{
		"Арендодатель (юридическое лицо)",
		"Арендатор (индивидуальный предприниматель)",
		"Арендатор (Не указан)",
	}, agg.Subjects)

	assert.Equal(t, models.DutyRow{
		Source:       "Договор аренды, п. 5.3",
		Obligor:      "Не указан",
		Duty:         "Содержать помещение",
		SecuredRight: "Получить помещение в исправном состоянии",
		Holder:       "Не указан",
	}, agg.Duties[1])
	assert.Equal(t, "Не указано", agg.Duties[2].SecuredRight)
	assert.Equal(t, "Арендодатель", agg.Duties[2].Holder)
}

func TestFlatten_RowCountsMatchPairs(t *testing.T) {
	relations, err := ParseRelations(loadFixture(t))
	require.NoError(t, err)

	wantRights, wantDuties := 0, 0
	for _, r := range relations {
		for _, right := range r.Body.Rights {
			wantRights += len(right.CounterDuties)
		}
		for _, duty := range r.Body.Duties {
			wantDuties += len(duty.SecuredRights)
		}
	}

	agg := Flatten(relations)
	assert.Len(t, agg.Rights, wantRights)
	assert.Len(t, agg.Duties, wantDuties)
}

func TestFlatten_Empty(t *testing.T) {
	agg := Flatten([]models.Relation{})

	assert.Empty(t, agg.Rights)
	assert.Empty(t, agg.Duties)
	assert.Empty(t, agg.Goals)
	assert.Empty(t, agg.Objects)
	assert.Empty(t, agg.Subjects)
	assert.NotNil(t, agg.Rights)
}

func TestFlattenRelation_OneRightTwoCounterDuties(t *testing.T) {
	rel := models.Relation{
		Source: strPtr("ГК РФ ст. 614"),
		Body: models.RelationBody{
			Rights: []models.Right{{
				Holder:      &models.SubjectRef{Name: strPtr("Арендодатель")},
				Description: strPtr("Получать плату"),
				CounterDuties: []models.CounterDuty{
					{Obligor: &models.SubjectRef{Name: strPtr("Арендатор")}, Description: strPtr("Платить в срок")},
					{Obligor: &models.SubjectRef{Name: strPtr("Поручитель")}, Description: strPtr("Отвечать солидарно")},
				},
			}},
		},
	}

	rows := FlattenRelation(rel)
	require.Len(t, rows.Rights, 2)

	for _, row := range rows.Rights {
		assert.Equal(t, "ГК РФ ст. 614", row.Source)
		assert.Equal(t, "Арендодатель", row.Holder)
		assert.Equal(t, "Получать плату", row.Right)
	}
	assert.Equal(t, "Арендатор", rows.Rights[0].Obligor)
	assert.Equal(t, "Платить в срок", rows.Rights[0].CounterDuty)
	assert.Equal(t, "Поручитель", rows.Rights[1].Obligor)
	assert.Equal(t, "Отвечать солидарно", rows.Rights[1].CounterDuty)
	assert.Empty(t, rows.Duties)
}

func TestFlattenRelation_Placeholders(t *testing.T) {
	relations, err := ParseRelations([]byte(`[{
		"правоотношение": {
			"субъекты": [{}],
			"права": [{"встречные_обязанности": [{}]}],
			"обязанности": [{"обеспечиваемые_права": [{"субъект_права": null}]}]
		}
	}]`))
	require.NoError(t, err)

	rows := FlattenRelation(relations[0])

	assert.Equal(t, []string{"Не указано (Не указан)"}, rows.Subjects)
	assert.Equal(t, []models.RightRow{{
		Source:      "Не указан",
		Holder:      "Не указан",
		Right:       "Не указано",
		CounterDuty: "Не указана",
		Obligor:     "Не указан",
	}}, rows.Rights)
	assert.Equal(t, []models.DutyRow{{
		Source:       "Не указан",
		Obligor:      "Не указан",
		Duty:         "Не указано",
		SecuredRight: "Не указано",
		Holder:       "Не указан",
	}}, rows.Duties)
}

func TestFlattenRelation_MissingBody(t *testing.T) {
	relations, err := ParseRelations([]byte(`[{"источник": "только источник"}]`))
	require.NoError(t, err)

	rows := FlattenRelation(relations[0])
	assert.Empty(t, rows.Goals)
	assert.Empty(t, rows.Rights)
	assert.Empty(t, rows.Duties)
}
