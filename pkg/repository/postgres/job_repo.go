package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cybersoft/talentmatch/pkg/job"
)

// JobRepository хранит описания вакансий.
type JobRepository struct {
	table *Table[job.Description]
}

var jobSchema = Schema[job.Description]{
	Table:    "job_descriptions",
	Noun:     "Job description",
	Identity: "job_id",
	Key:      []string{"job_id"},
	Columns: []string{
		"job_name", "certificate", "degree", "experience",
		"responsibility", "soft_skill", "technical_skill",
	},
	OrderBy: "job_id",
	Values: func(d job.Description) ([]any, error) {
		return args(d.JobName, d.Certificate, d.Degree, d.Experience, d.Responsibility, d.SoftSkill, d.TechnicalSkill)
	},
	Scan: func(row pgx.Row) (job.Description, error) {
		var d job.Description
		err := row.Scan(&d.JobID, &d.JobName, &d.Certificate, &d.Degree, &d.Experience, &d.Responsibility, &d.SoftSkill, &d.TechnicalSkill)
		emptyLists(&d.Certificate, &d.Degree, &d.Experience, &d.Responsibility, &d.SoftSkill, &d.TechnicalSkill)
		return d, err
	},
	WithIdentity: func(d job.Description, id int64) job.Description {
		d.JobID = id
		return d
	},
}

func NewJobRepository(ctx context.Context, db DB, timeout time.Duration) (*JobRepository, error) {
	if err := ensureSchema(ctx, db, `
CREATE TABLE IF NOT EXISTS job_descriptions (
	job_id BIGSERIAL PRIMARY KEY,
	job_name TEXT NOT NULL DEFAULT '',
	certificate TEXT,
	degree TEXT,
	experience TEXT,
	responsibility TEXT,
	soft_skill TEXT,
	technical_skill TEXT
);
`); err != nil {
		return nil, err
	}
	return &JobRepository{table: NewTable(db, jobSchema, timeout)}, nil
}

func (r *JobRepository) Create(ctx context.Context, d job.Description) (job.Description, error) {
	return r.table.Insert(ctx, d)
}

func (r *JobRepository) Get(ctx context.Context, id int64) (job.Description, error) {
	return r.table.Get(ctx, id)
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]job.Description, error) {
	return r.table.List(ctx, Page{Limit: limit, Offset: offset})
}

func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	return r.table.Delete(ctx, id)
}
