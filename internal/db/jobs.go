package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/jonathan/job-recommender/internal/types"
)

const jobColumns = `id, title, company, location, job_type, description, required_skills,
		        application_url, description_embedding, is_active`

// Default and maximum page sizes for ListJobs
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// JobFilters narrows the job browse listing
type JobFilters struct {
	Search   string
	Location string
	JobType  string
	Company  string
	Limit    int
	Offset   int
}

// JobPage is one page of the job listing
type JobPage struct {
	Jobs   []types.JobCandidate `json:"jobs"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

func scanJob(row pgx.Row) (*types.JobCandidate, error) {
	var (
		j                                    types.JobCandidate
		location, jobType, description, link *string
		skillsJSON                           []byte
		emb                                  *pgvector.Vector
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &location, &jobType, &description,
		&skillsJSON, &link, &emb, &j.Active); err != nil {
		return nil, err
	}
	j.Location = derefString(location)
	j.JobType = derefString(jobType)
	j.Description = derefString(description)
	j.ApplicationURL = derefString(link)
	j.RequiredSkills = parseSkills(skillsJSON)
	j.Embedding = toEmbedding(emb)
	return &j, nil
}

func collectJobs(rows pgx.Rows) ([]types.JobCandidate, error) {
	defer rows.Close()
	jobs := []types.JobCandidate{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job postings: %w", err)
	}
	return jobs, nil
}

// ListActiveCandidates returns up to limit active postings, newest first with id as a tie-breaker
// so the pool order is stable between calls.
func (db *DB) ListActiveCandidates(ctx context.Context, limit int) ([]types.JobCandidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM job_postings
		 WHERE is_active = TRUE
		 ORDER BY created_at DESC, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active job postings: %w", err)
	}
	return collectJobs(rows)
}

// ListActiveWithEmbeddings returns up to limit active postings that carry an embedding
func (db *DB) ListActiveWithEmbeddings(ctx context.Context, limit int) ([]types.JobCandidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM job_postings
		 WHERE is_active = TRUE AND description_embedding IS NOT NULL
		 ORDER BY created_at DESC, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded job postings: %w", err)
	}
	return collectJobs(rows)
}

// GetJobCandidate retrieves a single posting by ID
func (db *DB) GetJobCandidate(ctx context.Context, id uuid.UUID) (*types.JobCandidate, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return j, nil
}

// ListJobsMissingEmbeddings returns active postings without an embedding, oldest first
func (db *DB) ListJobsMissingEmbeddings(ctx context.Context, limit int) ([]types.JobCandidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM job_postings
		 WHERE is_active = TRUE AND description_embedding IS NULL
		 ORDER BY created_at, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings without embeddings: %w", err)
	}
	return collectJobs(rows)
}

// UpdateJobEmbedding stores the description embedding of a posting
func (db *DB) UpdateJobEmbedding(ctx context.Context, id uuid.UUID, emb types.Embedding) error {
	vec, err := fromEmbedding(emb)
	if err != nil {
		return err
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE job_postings SET description_embedding = $1, updated_at = NOW() WHERE id = $2`,
		vec, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListJobs returns a filtered page of active postings and the total match count
func (db *DB) ListJobs(ctx context.Context, f JobFilters) (*JobPage, error) {
	f = f.normalized()
	where, args := f.whereClause()

	var total int
	if err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_postings WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count job postings: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := db.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM job_postings WHERE %s
		 ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
			jobColumns, where, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, err
	}
	return &JobPage{Jobs: jobs, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (f JobFilters) normalized() JobFilters {
	f.Search = strings.TrimSpace(f.Search)
	f.Location = strings.TrimSpace(f.Location)
	f.JobType = strings.TrimSpace(f.JobType)
	f.Company = strings.TrimSpace(f.Company)
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// whereClause builds the filter predicate with positional parameters
func (f JobFilters) whereClause() (string, []any) {
	conds := []string{"is_active = TRUE"}
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Search != "" {
		p := next("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE %s OR description ILIKE %s OR company ILIKE %s)", p, p, p))
	}
	if f.Location != "" {
		conds = append(conds, "location ILIKE "+next("%"+f.Location+"%"))
	}
	if f.JobType != "" {
		conds = append(conds, "job_type = "+next(f.JobType))
	}
	if f.Company != "" {
		conds = append(conds, "company ILIKE "+next("%"+f.Company+"%"))
	}
	return strings.Join(conds, " AND "), args
}
