package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cybersoft/talentmatch/api/http/presenter"
	"github.com/cybersoft/talentmatch/pkg/matching"
)

type MatchingHandler struct {
	uc  matching.UseCase
	log *zap.Logger
}

func NewMatchingHandler(uc matching.UseCase, log *zap.Logger) *MatchingHandler {
	return &MatchingHandler{uc: uc, log: log}
}

// @Summary     Match a candidate against a job
// @Description Compares a candidate profile with a job description and stores the analysis.
// @Tags        matching
// @Accept      json
// @Produce     json
// @Param       input body object true "{candidate: {candidate_id, ...}, job: {job_id, ...}}"
// @Security    BearerAuth
// @Success     200 {object} matching.Analysis
// @Failure     409 {object} presenter.ErrorResponse
// @Failure     422 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Failure     504 {object} presenter.ErrorResponse
// @Router      /matching/analyse [post]
func (h *MatchingHandler) Analyse(c *fiber.Ctx) error {
	req, err := matching.ParseRequest(c.Body())
	if err != nil {
		return fail(c, h.log, err)
	}
	a, err := h.uc.Analyse(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, a)
}

// @Summary  List analyses for a job
// @Tags     matching
// @Produce  json
// @Param    job_id path  int true  "Job id"
// @Param    limit  query int false "Page size, all rows when omitted"
// @Param    offset query int false "Rows to skip"
// @Security BearerAuth
// @Success  200 {array} matching.Analysis
// @Router   /matching/get_matchings/{job_id} [get]
func (h *MatchingHandler) ListByJob(c *fiber.Ctx) error {
	jobID, err := idParam(c, "job_id")
	if err != nil {
		return fail(c, h.log, err)
	}
	limit, offset := parseLimitOffset(c)
	as, err := h.uc.ListByJob(c.UserContext(), jobID, limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, as)
}

// @Summary  Get one analysis
// @Tags     matching
// @Produce  json
// @Param    job_id       query int true "Job id"
// @Param    candidate_id query int true "Candidate id"
// @Security BearerAuth
// @Success  200 {object} matching.Analysis
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /matching/get_matching [get]
func (h *MatchingHandler) Get(c *fiber.Ctx) error {
	jobID, candidateID, err := pairParams(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	a, err := h.uc.Get(c.UserContext(), jobID, candidateID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, a)
}

// @Summary  Delete one analysis
// @Tags     matching
// @Produce  json
// @Param    job_id       query int true "Job id"
// @Param    candidate_id query int true "Candidate id"
// @Security BearerAuth
// @Success  200 {object} presenter.DetailResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /matching/delete_matching [delete]
func (h *MatchingHandler) Delete(c *fiber.Ctx) error {
	jobID, candidateID, err := pairParams(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), jobID, candidateID); err != nil {
		return fail(c, h.log, err)
	}
	return presenter.Detail(c, fmt.Sprintf("Analysis for job_id %d and candidate_id %d deleted successfully.", jobID, candidateID))
}

func pairParams(c *fiber.Ctx) (jobID, candidateID int64, err error) {
	if jobID, err = idParam(c, "job_id"); err != nil {
		return 0, 0, err
	}
	if candidateID, err = idParam(c, "candidate_id"); err != nil {
		return 0, 0, err
	}
	return jobID, candidateID, nil
}
