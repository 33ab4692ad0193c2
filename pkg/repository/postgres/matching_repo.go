package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cybersoft/talentmatch/pkg/matching"
)

// MatchingRepository хранит результаты сопоставления кандидат/вакансия.
// Требует, чтобы candidate_profiles и job_descriptions уже существовали.
type MatchingRepository struct {
	table *Table[matching.Analysis]
}

var matchingSchema = Schema[matching.Analysis]{
	Table: "candidate_job_analysis",
	Noun:  "Analysis",
	Key:   []string{"job_id", "candidate_id"},
	Columns: []string{
		"candidate_id", "job_id",
		"certificate", "degree", "experience", "responsibility", "technical_skill", "soft_skill",
		"summary_comment", "score",
	},
	OrderBy: "candidate_id",
	Values: func(a matching.Analysis) ([]any, error) {
		return args(
			a.CandidateID, a.JobID,
			a.Certificate, a.Degree, a.Experience, a.Responsibility, a.TechnicalSkill, a.SoftSkill,
			a.SummaryComment, a.Score,
		)
	},
	Scan: func(row pgx.Row) (matching.Analysis, error) {
		var a matching.Analysis
		err := row.Scan(
			&a.CandidateID, &a.JobID,
			&a.Certificate, &a.Degree, &a.Experience, &a.Responsibility, &a.TechnicalSkill, &a.SoftSkill,
			&a.SummaryComment, &a.Score,
		)
		emptyLists(&a.Certificate, &a.Degree, &a.Experience, &a.Responsibility, &a.TechnicalSkill, &a.SoftSkill)
		return a, err
	},
}

func NewMatchingRepository(ctx context.Context, db DB, timeout time.Duration) (*MatchingRepository, error) {
	if err := ensureSchema(ctx, db, `
CREATE TABLE IF NOT EXISTS candidate_job_analysis (
	candidate_id BIGINT NOT NULL REFERENCES candidate_profiles(candidate_id) ON DELETE CASCADE,
	job_id BIGINT NOT NULL REFERENCES job_descriptions(job_id) ON DELETE CASCADE,
	certificate TEXT,
	degree TEXT,
	experience TEXT,
	responsibility TEXT,
	technical_skill TEXT,
	soft_skill TEXT,
	summary_comment TEXT NOT NULL DEFAULT '',
	score DOUBLE PRECISION NOT NULL DEFAULT 0,
	PRIMARY KEY (candidate_id, job_id)
);
CREATE INDEX IF NOT EXISTS idx_candidate_job_analysis_job ON candidate_job_analysis(job_id);
`); err != nil {
		return nil, err
	}
	return &MatchingRepository{table: NewTable(db, matchingSchema, timeout)}, nil
}

func (r *MatchingRepository) Create(ctx context.Context, a matching.Analysis) (matching.Analysis, error) {
	return r.table.Insert(ctx, a)
}

func (r *MatchingRepository) Get(ctx context.Context, jobID, candidateID int64) (matching.Analysis, error) {
	return r.table.Get(ctx, jobID, candidateID)
}

func (r *MatchingRepository) ListByJob(ctx context.Context, jobID int64, limit, offset int) ([]matching.Analysis, error) {
	return r.table.List(ctx, Page{Limit: limit, Offset: offset}, Cond{Column: "job_id", Value: jobID})
}

func (r *MatchingRepository) Delete(ctx context.Context, jobID, candidateID int64) error {
	return r.table.Delete(ctx, jobID, candidateID)
}
