package db

import (
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/jonathan/job-recommender/internal/types"
)

// toEmbedding converts a nullable vector column into an Embedding (nil when NULL)
func toEmbedding(v *pgvector.Vector) types.Embedding {
	if v == nil {
		return nil
	}
	s := v.Slice()
	if len(s) == 0 {
		return nil
	}
	return types.Embedding(s)
}

// fromEmbedding converts an Embedding into a vector parameter
func fromEmbedding(e types.Embedding) (pgvector.Vector, error) {
	if !e.Present() {
		return pgvector.Vector{}, fmt.Errorf("cannot store an empty embedding")
	}
	return pgvector.NewVector([]float32(e)), nil
}

// parseSkills decodes a JSON skill list column. NULL and malformed values give an empty list.
func parseSkills(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
