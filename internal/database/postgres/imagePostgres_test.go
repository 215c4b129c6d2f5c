package postgres

import (
	"net/url"
	"testing"

	"github.com/sakurairo-fans/anime-img-api/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) filter.Filters {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return filter.Parse(values)
}

func TestBuildPredicate(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no recognized params",
			query:     "",
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "landscape only",
			query:     "landscape=1",
			wantWhere: "landscape = $1",
			wantArgs:  []interface{}{true},
		},
		{
			name:      "landscape false plus near_square",
			query:     "landscape=0&near_square=1",
			wantWhere: "landscape = $1 AND near_square = $2",
			wantArgs:  []interface{}{false, true},
		},
		{
			name:      "size group is one parenthesized clause",
			query:     "big_size=1&mid_size=0",
			wantWhere: "(big_size = $1 AND mid_size = $2)",
			wantArgs:  []interface{}{true, false},
		},
		{
			name:      "independent res group",
			query:     "small_res=1",
			wantWhere: "(small_res = $1)",
			wantArgs:  []interface{}{true},
		},
		{
			name:      "both groups after scalar clauses",
			query:     "big_res=1&landscape=1&small_size=1",
			wantWhere: "landscape = $1 AND (small_size = $2) AND (big_res = $3)",
			wantArgs:  []interface{}{true, true, true},
		},
		{
			name:      "non-predicate params contribute nothing",
			query:     "json=1&count=5&r18=1&size=thumb",
			wantWhere: "",
			wantArgs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildPredicate(parse(t, tt.query))
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

// The compiled text must not change between runs for the same input.
func TestBuildPredicateDeterministic(t *testing.T) {
	f := parse(t, "landscape=1&big_size=1&small_size=0&mid_res=1")

	first, firstArgs := buildPredicate(f)
	for i := 0; i < 20; i++ {
		where, args := buildPredicate(f)
		require.Equal(t, first, where)
		require.Equal(t, firstArgs, args)
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "url", columns(false))
	assert.Equal(t, "url, height, width, ratio, landscape", columns(true))
}
