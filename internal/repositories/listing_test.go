package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

var testSpec = ListSpec{
	Table:         "head_offices",
	Columns:       []string{"id", "name", "city"},
	SearchColumns: []string{"name", "city"},
	FilterMap: map[string]string{
		"city": "city",
	},
	SortBy: "name ASC",
}

func TestBuildListQueryDefaults(t *testing.T) {
	sql, args, err := BuildListQuery(testSpec, types.NewFilter())
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name, city FROM head_offices ORDER BY name ASC LIMIT 10 OFFSET 0", sql)
	assert.Empty(t, args)
}

func TestBuildListQuerySearchUsesILikeOverAllColumns(t *testing.T) {
	filter := types.NewFilter()
	filter.Search = "душанбе"

	sql, args, err := BuildListQuery(testSpec, filter)
	require.NoError(t, err)

	assert.Contains(t, sql, "name ILIKE $1 OR city ILIKE $2")
	require.Len(t, args, 2)
	assert.Equal(t, "%душанбе%", args[0])
	assert.Equal(t, "%душанбе%", args[1])
}

func TestBuildListQueryIgnoresUnknownFilters(t *testing.T) {
	filter := types.NewFilter()
	filter.Filter["city"] = "Худжанд"
	filter.Filter["drop_table"] = "users"

	sql, args, err := BuildListQuery(testSpec, filter)
	require.NoError(t, err)

	assert.Contains(t, sql, "city = $1")
	assert.NotContains(t, sql, "drop_table")
	require.Len(t, args, 1)
	assert.Equal(t, "Худжанд", args[0])
}

func TestBuildListQueryPagination(t *testing.T) {
	filter := types.NewFilter()
	filter.Page = 3
	filter.PageSize = 25

	sql, _, err := BuildListQuery(testSpec, filter)
	require.NoError(t, err)

	assert.Contains(t, sql, "LIMIT 25 OFFSET 50")
}

func TestOfficeTaskListOrdersByCreationAscending(t *testing.T) {
	sql, _, err := BuildListQuery(officeTaskListSpec, types.NewFilter())
	require.NoError(t, err)

	assert.Contains(t, sql, "ORDER BY created_at ASC")
	assert.NotContains(t, sql, "DESC")
}

func TestBuildListQueryNormalizesBadPagination(t *testing.T) {
	filter := types.Filter{Page: -5, PageSize: 100500}

	sql, _, err := BuildListQuery(testSpec, filter)
	require.NoError(t, err)

	assert.Contains(t, sql, "LIMIT 100 OFFSET 0")
}
