package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/jonathan/job-recommender/internal/types"
)

// GetUserProfile loads the fields of a user the recommender needs
func (db *DB) GetUserProfile(ctx context.Context, id uuid.UUID) (*types.UserProfile, error) {
	var (
		u                             types.UserProfile
		skillsJSON                    []byte
		resume, experience, education *string
		emb                           *pgvector.Vector
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, skills, resume_text, experience_years, education_level, resume_embedding
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &skillsJSON, &resume, &experience, &education, &emb)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	u.Skills = parseSkills(skillsJSON)
	u.ResumeText = derefString(resume)
	u.ExperienceYears = derefString(experience)
	u.EducationLevel = derefString(education)
	u.Embedding = toEmbedding(emb)
	return &u, nil
}

// UpdateUserEmbedding stores a derived resume embedding for a user
func (db *DB) UpdateUserEmbedding(ctx context.Context, id uuid.UUID, emb types.Embedding) error {
	vec, err := fromEmbedding(emb)
	if err != nil {
		return err
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET resume_embedding = $1, updated_at = NOW() WHERE id = $2`,
		vec, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
