package matching

import (
	"context"
	"encoding/json"

	"github.com/cybersoft/talentmatch/pkg/record"
)

// Analysis is the analyzer's comparison of one candidate against one job.
type Analysis struct {
	CandidateID    int64       `json:"candidate_id"`
	JobID          int64       `json:"job_id"`
	Certificate    record.List `json:"certificate"`
	Degree         record.List `json:"degree"`
	Experience     record.List `json:"experience"`
	Responsibility record.List `json:"responsibility"`
	TechnicalSkill record.List `json:"technical_skill"`
	SoftSkill      record.List `json:"soft_skill"`
	SummaryComment string      `json:"summary_comment"`
	Score          float64     `json:"score"`
}

// Fields are the keys an analyzer result must carry.
var Fields = []string{
	"certificate",
	"degree",
	"experience",
	"responsibility",
	"technical_skill",
	"soft_skill",
	"summary_comment",
	"score",
}

// Request carries the two sub-records sent to POST /matching/analyse.
type Request struct {
	CandidateID int64
	JobID       int64
	Candidate   json.RawMessage
	Job         json.RawMessage
}

// Repository: порт хранения результатов сопоставления.
type Repository interface {
	Create(ctx context.Context, a Analysis) (Analysis, error)
	Get(ctx context.Context, jobID, candidateID int64) (Analysis, error)
	ListByJob(ctx context.Context, jobID int64, limit, offset int) ([]Analysis, error)
	Delete(ctx context.Context, jobID, candidateID int64) error
}
