// Package analysis asks the chat model to turn CVs, job descriptions and
// candidate/job pairs into the JSON records the slices store.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/llm"
	"github.com/cybersoft/talentmatch/pkg/logger"
	"github.com/cybersoft/talentmatch/pkg/metrics"
)

const (
	KindCandidate = "candidate"
	KindJob       = "job"
	KindMatching  = "matching"

	maxTextLen   = 12000
	logReplySize = 500
)

// Service: анализ через LLM. Возвращает сырой JSON-объект, который
// декодирует соответствующий use-case.
type Service struct {
	model      llm.ChatModel
	timeout    time.Duration
	log        *zap.Logger
	metrics    *metrics.Metrics
	maxTextLen int
}

func NewService(model llm.ChatModel, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if named, ok := model.(llm.Named); ok {
		log = log.With(zap.String("model", named.Model()))
	}
	return &Service{
		model:      model,
		timeout:    timeout,
		log:        log,
		metrics:    m,
		maxTextLen: maxTextLen,
	}
}

func (s *Service) AnalyseCandidate(ctx context.Context, cvText string) (json.RawMessage, error) {
	text := strings.TrimSpace(cvText)
	if text == "" {
		return nil, apperr.New(apperr.ErrValidation, "CV text is empty")
	}
	text = truncateRunes(text, s.maxTextLen)
	user := fmt.Sprintf("CV text:\n<<<\n%s\n>>>", text)
	return s.ask(ctx, KindCandidate, candidateSystem, user)
}

func (s *Service) AnalyseJob(ctx context.Context, jobData json.RawMessage) (json.RawMessage, error) {
	user := fmt.Sprintf("Job description (JSON):\n%s", truncateRunes(string(jobData), s.maxTextLen))
	return s.ask(ctx, KindJob, jobSystem, user)
}

func (s *Service) AnalyseMatching(ctx context.Context, candidate, job json.RawMessage) (json.RawMessage, error) {
	user := fmt.Sprintf("Candidate (JSON):\n%s\n\nJob (JSON):\n%s",
		truncateRunes(string(candidate), s.maxTextLen),
		truncateRunes(string(job), s.maxTextLen),
	)
	return s.ask(ctx, KindMatching, matchingSystem, user)
}

func (s *Service) ask(ctx context.Context, kind, system, user string) (json.RawMessage, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.model.Ask(ctx, system, user)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.metrics.ObserveAnalysis(kind, metrics.OutcomeTimeout, elapsed)
			s.log.Warn("analysis timed out", zap.String("kind", kind), zap.Duration("elapsed", elapsed))
			return nil, apperr.Wrap(apperr.ErrTimeout, err, "Analysis timed out")
		}
		s.metrics.ObserveAnalysis(kind, metrics.OutcomeError, elapsed)
		s.log.Error("analysis failed", zap.String("kind", kind), zap.Error(err))
		return nil, apperr.Wrap(apperr.ErrAnalysis, err, "Analysis service failed")
	}

	obj, ok := extractObject(reply)
	if !ok {
		s.metrics.ObserveAnalysis(kind, metrics.OutcomeError, elapsed)
		s.log.Warn("analysis reply has no JSON object",
			zap.String("kind", kind),
			zap.String("reply", logger.TruncateForLog(reply, logReplySize)),
		)
		return nil, apperr.New(apperr.ErrAnalysis, "Analysis returned no JSON object")
	}

	s.metrics.ObserveAnalysis(kind, metrics.OutcomeOK, elapsed)
	s.log.Debug("analysis done", zap.String("kind", kind), zap.Duration("elapsed", elapsed))
	return obj, nil
}
