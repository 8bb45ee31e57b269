package db

import (
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-recommender/internal/types"
)

func TestToEmbedding(t *testing.T) {
	assert.Nil(t, toEmbedding(nil))

	empty := pgvector.NewVector(nil)
	assert.Nil(t, toEmbedding(&empty))

	v := pgvector.NewVector([]float32{0.1, 0.2})
	assert.Equal(t, types.Embedding{0.1, 0.2}, toEmbedding(&v))
}

func TestFromEmbedding(t *testing.T) {
	_, err := fromEmbedding(nil)
	assert.Error(t, err)

	v, err := fromEmbedding(types.Embedding{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, v.Slice())
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		expected []string
	}{
		{"null column", nil, []string{}},
		{"json null", []byte("null"), []string{}},
		{"malformed", []byte("{not json"), []string{}},
		{"list", []byte(`["Python", "Node.js"]`), []string{"Python", "Node.js"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSkills(tt.raw))
		})
	}
}

func TestJobFilters_Normalized(t *testing.T) {
	f := JobFilters{Search: "  go  ", Limit: 1000, Offset: -5}.normalized()
	assert.Equal(t, "go", f.Search)
	assert.Equal(t, MaxPageSize, f.Limit)
	assert.Equal(t, 0, f.Offset)

	f = JobFilters{}.normalized()
	assert.Equal(t, DefaultPageSize, f.Limit)
}

func TestJobFilters_WhereClause(t *testing.T) {
	where, args := JobFilters{}.whereClause()
	assert.Equal(t, "is_active = TRUE", where)
	assert.Empty(t, args)

	where, args = JobFilters{Search: "go", Location: "Remote", JobType: "full-time", Company: "Acme"}.whereClause()
	assert.Equal(t,
		"is_active = TRUE AND (title ILIKE $1 OR description ILIKE $1 OR company ILIKE $1) AND location ILIKE $2 AND job_type = $3 AND company ILIKE $4",
		where)
	assert.Equal(t, []any{"%go%", "%Remote%", "full-time", "%Acme%"}, args)
}
