package candidate

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/record"
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
}

// FileStore keeps the original upload and returns where it went.
type FileStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// Analyzer produces the structured profile from CV text.
type Analyzer interface {
	AnalyseCandidate(ctx context.Context, cvText string) (json.RawMessage, error)
}

// UseCase инкапсулирует сценарии работы с кандидатами.
type UseCase interface {
	Analyse(ctx context.Context, up Upload) (Profile, error)
	Get(ctx context.Context, id int64) (Profile, error)
	List(ctx context.Context, limit, offset int) ([]Profile, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo      Repository
	extractor TextExtractor
	files     FileStore
	analyzer  Analyzer
}

func NewService(repo Repository, extractor TextExtractor, files FileStore, analyzer Analyzer) UseCase {
	return &service{repo: repo, extractor: extractor, files: files, analyzer: analyzer}
}

func (s *service) Analyse(ctx context.Context, up Upload) (Profile, error) {
	if len(up.Data) == 0 {
		return Profile{}, apperr.New(apperr.ErrValidation, "Uploaded file is empty")
	}
	text, err := s.extractor.Extract(up.Filename, up.Data)
	if err != nil {
		return Profile{}, err
	}
	if _, err := s.files.Save(ctx, up.Filename, up.ContentType, up.Data); err != nil {
		return Profile{}, err
	}

	raw, err := s.analyzer.AnalyseCandidate(ctx, text)
	if err != nil {
		return Profile{}, err
	}
	p, err := decode(raw)
	if err != nil {
		return Profile{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *service) Get(ctx context.Context, id int64) (Profile, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Profile, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func decode(raw json.RawMessage) (Profile, error) {
	var p Profile
	if err := record.Unmarshal(raw, &p, Fields...); err != nil {
		var missing *record.MissingFieldError
		if errors.As(err, &missing) {
			return Profile{}, apperr.Wrap(apperr.ErrAnalysis, err, "Candidate analysis is incomplete")
		}
		return Profile{}, apperr.Wrap(apperr.ErrAnalysis, err, "Candidate analysis returned an invalid result")
	}
	p.CandidateID = 0
	return p, nil
}
