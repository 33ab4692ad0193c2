package job

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/record"
)

// Analyzer extracts requirement lists from a job description.
type Analyzer interface {
	AnalyseJob(ctx context.Context, jobData json.RawMessage) (json.RawMessage, error)
}

type UseCase interface {
	Analyse(ctx context.Context, req Request) (Description, error)
	Get(ctx context.Context, id int64) (Description, error)
	List(ctx context.Context, limit, offset int) ([]Description, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	analyzer Analyzer
}

func NewService(repo Repository, analyzer Analyzer) UseCase {
	return &service{repo: repo, analyzer: analyzer}
}

// ParseRequest reads job_name from a raw JSON body and keeps the body for the analyzer.
func ParseRequest(body []byte) (Request, error) {
	var head struct {
		JobName *string `json:"job_name"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return Request{}, apperr.Wrap(apperr.ErrValidation, err, "Request body must be a JSON object")
	}
	if head.JobName == nil {
		return Request{}, apperr.New(apperr.ErrValidation, "job_name is required")
	}
	return Request{JobName: *head.JobName, Raw: json.RawMessage(body)}, nil
}

func (s *service) Analyse(ctx context.Context, req Request) (Description, error) {
	name := strings.TrimSpace(req.JobName)
	if name == "" {
		return Description{}, apperr.New(apperr.ErrValidation, "job_name is required")
	}

	raw, err := s.analyzer.AnalyseJob(ctx, req.Raw)
	if err != nil {
		return Description{}, err
	}
	var d Description
	if err := record.Unmarshal(raw, &d, Fields...); err != nil {
		return Description{}, apperr.Wrap(apperr.ErrAnalysis, err, "Job analysis is incomplete")
	}
	d.JobID = 0
	d.JobName = name
	return s.repo.Create(ctx, d)
}

func (s *service) Get(ctx context.Context, id int64) (Description, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Description, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
