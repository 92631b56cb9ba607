package workbook

import (
	"bytes"
	"testing"
	"time"

	"relviz-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleAggregate() *models.Aggregate {
	agg := models.NewAggregate()
	agg.Rights = []models.RightRow{
		{Source: "п. 2.1", Holder: "Арендатор", Right: "Пользоваться", CounterDuty: "Передать", Obligor: "Арендодатель"},
		{Source: "п. 2.1", Holder: "Арендатор", Right: "Пользоваться", CounterDuty: "Не мешать", Obligor: "Арендодатель"},
	}
	agg.Duties = []models.DutyRow{
		{Source: "п. 2.1", Obligor: "Арендатор", Duty: "Платить", SecuredRight: "Получать плату", Holder: "Арендодатель"},
	}
	agg.Goals = []string{"Доход", "Пользование", "Сохранность"}
	agg.Objects = []string{"Помещение"}
	agg.Subjects = []string{"Арендатор (ИП)", "Арендодатель (ЮЛ)"}
	return agg
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "анализ_правоотношений_20260102_030405.xlsx", Filename("", now))
	assert.Equal(t, "report_20260102_030405.xlsx", Filename("report", now))
}

func TestBuild_RoundTripCounts(t *testing.T) {
	agg := sampleAggregate()

	data, err := Build(agg)
	require.NoError(t, err)

	counts, err := CountRows(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		SheetRights:   len(agg.Rights),
		SheetDuties:   len(agg.Duties),
		SheetGoals:    len(agg.Goals),
		SheetObjects:  len(agg.Objects),
		SheetSubjects: len(agg.Subjects),
	}, counts)
}

func TestCountRows_TrailingEmptyValues(t *testing.T) {
	agg := models.NewAggregate()
	agg.Goals = []string{"Доход", ""}
	agg.Objects = []string{"", ""}
	agg.Duties = []models.DutyRow{{Source: "п. 1"}, {}}

	data, err := Build(agg)
	require.NoError(t, err)

	counts, err := CountRows(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 2, counts[SheetGoals])
	assert.Equal(t, 2, counts[SheetObjects])
	assert.Equal(t, 2, counts[SheetDuties])
	assert.Equal(t, 0, counts[SheetRights])
}

func TestBuild_SheetOrderAndHeaders(t *testing.T) {
	data, err := Build(sampleAggregate())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, SheetOrder, f.GetSheetList())

	rows, err := f.GetRows(SheetRights)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, rightHeaders, rows[0])
	assert.Equal(t, []string{"п. 2.1", "Арендатор", "Пользоваться", "Не мешать", "Арендодатель"}, rows[2])

	rows, err = f.GetRows(SheetDuties)
	require.NoError(t, err)
	assert.Equal(t, dutyHeaders, rows[0])

	rows, err = f.GetRows(SheetSubjects)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Субъекты"}, {"Арендатор (ИП)"}, {"Арендодатель (ЮЛ)"}}, rows)
}

func TestBuild_EmptyAggregateHasHeadersOnly(t *testing.T) {
	data, err := Build(models.NewAggregate())
	require.NoError(t, err)

	counts, err := CountRows(bytes.NewReader(data))
	require.NoError(t, err)

	for _, sheet := range SheetOrder {
		assert.Equal(t, 0, counts[sheet], sheet)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetGoals)
	require.NoError(t, err)
	assert.Equal(t, [][]string{goalHeaders}, rows)
}

func TestCountRows_NotAWorkbook(t *testing.T) {
	_, err := CountRows(bytes.NewReader([]byte("definitely not a zip")))
	assert.Error(t, err)
}
