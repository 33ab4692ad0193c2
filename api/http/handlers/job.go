package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cybersoft/talentmatch/api/http/presenter"
	"github.com/cybersoft/talentmatch/pkg/job"
)

type JobHandler struct {
	uc  job.UseCase
	log *zap.Logger
}

func NewJobHandler(uc job.UseCase, log *zap.Logger) *JobHandler {
	return &JobHandler{uc: uc, log: log}
}

// Analyse: тело запроса целиком уходит в анализатор, job_name обязателен.
// @Summary     Analyse a job description
// @Description Extracts requirement lists from an arbitrary job JSON that carries job_name.
// @Tags        job
// @Accept      json
// @Produce     json
// @Param       input body object true "Job data with job_name"
// @Security    BearerAuth
// @Success     200 {object} job.Description
// @Failure     422 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Failure     504 {object} presenter.ErrorResponse
// @Router      /job/analyse [post]
func (h *JobHandler) Analyse(c *fiber.Ctx) error {
	req, err := job.ParseRequest(c.Body())
	if err != nil {
		return fail(c, h.log, err)
	}
	d, err := h.uc.Analyse(c.UserContext(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, d)
}

// @Summary  Get a job description
// @Tags     job
// @Produce  json
// @Param    job_id path int true "Job id"
// @Security BearerAuth
// @Success  200 {object} job.Description
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /job/get_job/{job_id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "job_id")
	if err != nil {
		return fail(c, h.log, err)
	}
	d, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, d)
}

// @Summary  List job descriptions
// @Tags     job
// @Produce  json
// @Param    limit  query int false "Page size, all rows when omitted"
// @Param    offset query int false "Rows to skip"
// @Security BearerAuth
// @Success  200 {array} job.Description
// @Router   /job/get_all_jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c)
	ds, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, ds)
}

// @Summary  Delete a job description
// @Tags     job
// @Produce  json
// @Param    job_id path int true "Job id"
// @Security BearerAuth
// @Success  200 {object} presenter.DetailResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /job/delete_job/{job_id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "job_id")
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, h.log, err)
	}
	return presenter.Detail(c, "Job deleted successfully")
}
