package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/clause"
)

func TestListQuery_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   ListQuery
		want ListQuery
	}{
		{name: "defaults", in: ListQuery{}, want: ListQuery{Limit: DefaultLimit}},
		{name: "capped", in: ListQuery{Limit: 500, Skip: 3}, want: ListQuery{Limit: MaxLimit, Skip: 3}},
		{name: "negative skip", in: ListQuery{Limit: 5, Skip: -1}, want: ListQuery{Limit: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalized())
		})
	}
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, clause.OrderByColumn{Column: clause.Column{Name: "title"}}, orderBy("title", noteSortFields))
	assert.Equal(t, clause.OrderByColumn{Column: clause.Column{Name: "title"}, Desc: true}, orderBy("-title", noteSortFields))

	fallback := clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}
	assert.Equal(t, fallback, orderBy("", noteSortFields))
	assert.Equal(t, fallback, orderBy("priority", noteSortFields))
	assert.Equal(t, fallback, orderBy("title; DROP TABLE notes", noteSortFields))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%login%", likePattern("LOGIN"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_off\`))
}
