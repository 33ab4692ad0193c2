package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cybersoft/talentmatch/pkg/candidate"
)

// CandidateRepository хранит профили кандидатов.
type CandidateRepository struct {
	table *Table[candidate.Profile]
}

var candidateSchema = Schema[candidate.Profile]{
	Table:    "candidate_profiles",
	Noun:     "Candidate",
	Identity: "candidate_id",
	Key:      []string{"candidate_id"},
	Columns: []string{
		"candidate_name", "phone_number", "email",
		"degree", "experience", "technical_skill", "responsibility",
		"certificate", "soft_skill", "comment", "job_recommended",
	},
	OrderBy: "candidate_id",
	Values: func(p candidate.Profile) ([]any, error) {
		return args(
			p.CandidateName, p.PhoneNumber, p.Email,
			p.Degree, p.Experience, p.TechnicalSkill, p.Responsibility,
			p.Certificate, p.SoftSkill, p.Comment, p.JobRecommended,
		)
	},
	Scan: func(row pgx.Row) (candidate.Profile, error) {
		var p candidate.Profile
		err := row.Scan(
			&p.CandidateID, &p.CandidateName, &p.PhoneNumber, &p.Email,
			&p.Degree, &p.Experience, &p.TechnicalSkill, &p.Responsibility,
			&p.Certificate, &p.SoftSkill, &p.Comment, &p.JobRecommended,
		)
		emptyLists(&p.Degree, &p.Experience, &p.TechnicalSkill, &p.Responsibility, &p.Certificate, &p.SoftSkill, &p.JobRecommended)
		return p, err
	},
	WithIdentity: func(p candidate.Profile, id int64) candidate.Profile {
		p.CandidateID = id
		return p
	},
}

func NewCandidateRepository(ctx context.Context, db DB, timeout time.Duration) (*CandidateRepository, error) {
	if err := ensureSchema(ctx, db, `
CREATE TABLE IF NOT EXISTS candidate_profiles (
	candidate_id BIGSERIAL PRIMARY KEY,
	candidate_name TEXT NOT NULL DEFAULT '',
	phone_number TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	degree TEXT,
	experience TEXT,
	technical_skill TEXT,
	responsibility TEXT,
	certificate TEXT,
	soft_skill TEXT,
	comment TEXT NOT NULL DEFAULT '',
	job_recommended TEXT
);
`); err != nil {
		return nil, err
	}
	return &CandidateRepository{table: NewTable(db, candidateSchema, timeout)}, nil
}

func (r *CandidateRepository) Create(ctx context.Context, p candidate.Profile) (candidate.Profile, error) {
	return r.table.Insert(ctx, p)
}

func (r *CandidateRepository) Get(ctx context.Context, id int64) (candidate.Profile, error) {
	return r.table.Get(ctx, id)
}

func (r *CandidateRepository) List(ctx context.Context, limit, offset int) ([]candidate.Profile, error) {
	return r.table.List(ctx, Page{Limit: limit, Offset: offset})
}

func (r *CandidateRepository) Delete(ctx context.Context, id int64) error {
	return r.table.Delete(ctx, id)
}
