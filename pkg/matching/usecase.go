package matching

import (
	"context"
	"encoding/json"

	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/record"
)

// Analyzer scores a candidate against a job.
type Analyzer interface {
	AnalyseMatching(ctx context.Context, candidate, job json.RawMessage) (json.RawMessage, error)
}

type UseCase interface {
	Analyse(ctx context.Context, req Request) (Analysis, error)
	Get(ctx context.Context, jobID, candidateID int64) (Analysis, error)
	ListByJob(ctx context.Context, jobID int64, limit, offset int) ([]Analysis, error)
	Delete(ctx context.Context, jobID, candidateID int64) error
}

type service struct {
	repo     Repository
	analyzer Analyzer
}

func NewService(repo Repository, analyzer Analyzer) UseCase {
	return &service{repo: repo, analyzer: analyzer}
}

func (s *service) Analyse(ctx context.Context, req Request) (Analysis, error) {
	raw, err := s.analyzer.AnalyseMatching(ctx, req.Candidate, req.Job)
	if err != nil {
		return Analysis{}, err
	}
	a, err := decode(raw)
	if err != nil {
		return Analysis{}, err
	}
	a.CandidateID = req.CandidateID
	a.JobID = req.JobID
	return s.repo.Create(ctx, a)
}

func (s *service) Get(ctx context.Context, jobID, candidateID int64) (Analysis, error) {
	return s.repo.Get(ctx, jobID, candidateID)
}

func (s *service) ListByJob(ctx context.Context, jobID int64, limit, offset int) ([]Analysis, error) {
	return s.repo.ListByJob(ctx, jobID, limit, offset)
}

func (s *service) Delete(ctx context.Context, jobID, candidateID int64) error {
	return s.repo.Delete(ctx, jobID, candidateID)
}

// decode maps the analyzer result. Score may arrive as a number or a numeric string.
func decode(raw json.RawMessage) (Analysis, error) {
	var out struct {
		Certificate    record.List `json:"certificate"`
		Degree         record.List `json:"degree"`
		Experience     record.List `json:"experience"`
		Responsibility record.List `json:"responsibility"`
		TechnicalSkill record.List `json:"technical_skill"`
		SoftSkill      record.List `json:"soft_skill"`
		SummaryComment string      `json:"summary_comment"`
		Score          json.Number `json:"score"`
	}
	if err := record.Unmarshal(raw, &out, Fields...); err != nil {
		return Analysis{}, apperr.Wrap(apperr.ErrAnalysis, err, "Matching analysis is incomplete")
	}
	score, err := out.Score.Float64()
	if err != nil {
		return Analysis{}, apperr.Wrap(apperr.ErrAnalysis, err, "Matching analysis returned an invalid score")
	}
	return Analysis{
		Certificate:    out.Certificate,
		Degree:         out.Degree,
		Experience:     out.Experience,
		Responsibility: out.Responsibility,
		TechnicalSkill: out.TechnicalSkill,
		SoftSkill:      out.SoftSkill,
		SummaryComment: out.SummaryComment,
		Score:          score,
	}, nil
}
