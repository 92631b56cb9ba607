package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresent_BlocksUseOwnRows(t *testing.T) {
	relations, err := ParseRelations(loadFixture(t))
	require.NoError(t, err)

	report, agg := Present(relations)
	require.Len(t, report.Blocks, 2)

	first := report.Blocks[0]
	assert.Equal(t, 1, first.Index)
	assert.Equal(t, "Договор аренды, п. 2.1", first.Source)
	assert.Len(t, first.Rights, 3)
	assert.Len(t, first.Duties, 1)
	assert.Equal(t, []SubjectView{
		{Name: "Арендодатель", Type: "юридическое лицо"},
		{Name: "Арендатор", Type: "индивидуальный предприниматель"},
	}, first.Subjects)

	second := report.Blocks[1]
	assert.Equal(t, 2, second.Index)
	assert.Equal(t, "Не указан", second.Fragment)
	assert.Empty(t, second.Rights)
	assert.Len(t, second.Duties, 2)
	assert.Empty(t, second.Objects)

	// the aggregate built in the same pass equals a separate flatten
	assert.Equal(t, Flatten(relations), agg)
	assert.Equal(t, agg.Totals(2), report.Totals)
}
