package sorter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/docstore/sorter"
)

func TestMakeFromStr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		sortString    string
		allowedFields []string
		want          sorter.SortOpts
	}{
		{
			name:          "empty string",
			sortString:    "",
			allowedFields: []string{"name"},
			want:          nil,
		},
		{
			name:          "single valid option",
			sortString:    "name:asc",
			allowedFields: []string{"name"},
			want:          sorter.Make(sorter.Opt{F: "name", D: sorter.Asc}),
		},
		{
			name:          "multiple valid options",
			sortString:    "name:asc,created_at:desc",
			allowedFields: []string{"name", "created_at"},
			want: sorter.Make(
				sorter.Opt{F: "name", D: sorter.Asc},
				sorter.Opt{F: "created_at", D: sorter.Desc},
			),
		},
		{
			name:          "disallowed field is skipped",
			sortString:    "password:asc,name:desc",
			allowedFields: []string{"name"},
			want:          sorter.Make(sorter.Opt{F: "name", D: sorter.Desc}),
		},
		{
			name:          "invalid direction is skipped",
			sortString:    "name:sideways",
			allowedFields: []string{"name"},
			want:          nil,
		},
		{
			name:          "malformed pair is skipped",
			sortString:    "name",
			allowedFields: []string{"name"},
			want:          nil,
		},
		{
			name:          "whitespace and case are normalized",
			sortString:    " name : DESC ",
			allowedFields: []string{"name"},
			want:          sorter.Make(sorter.Opt{F: "name", D: sorter.Desc}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sorter.MakeFromStr(tt.sortString, tt.allowedFields...))
		})
	}
}

func TestOptToSQL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "name asc", sorter.Opt{F: "name", D: sorter.Asc}.ToSQL())
	assert.Equal(t, "created_at desc", sorter.Opt{F: "created_at", D: sorter.Desc}.ToSQL())
}
