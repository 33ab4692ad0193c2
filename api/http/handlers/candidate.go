package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cybersoft/talentmatch/api/http/presenter"
	"github.com/cybersoft/talentmatch/pkg/apperr"
	"github.com/cybersoft/talentmatch/pkg/candidate"
)

type CandidateHandler struct {
	uc  candidate.UseCase
	log *zap.Logger
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewCandidateHandler(uc candidate.UseCase, log *zap.Logger, maxBytes int64) *CandidateHandler {
	return &CandidateHandler{uc: uc, log: log, maxBytes: maxBytes}
}

// Analyse принимает файл резюме, извлекает текст, сохраняет оригинал
// и сохраняет структурированный профиль кандидата.
// @Summary     Analyse a CV
// @Description Accepts a PDF, DOCX or TXT CV, extracts a structured profile and stores it.
// @Tags        candidate
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "CV file (pdf, docx or txt)"
// @Security    BearerAuth
// @Success     200 {object} candidate.Profile
// @Failure     415 {object} presenter.ErrorResponse
// @Failure     422 {object} presenter.ErrorResponse
// @Failure     502 {object} presenter.ErrorResponse
// @Failure     504 {object} presenter.ErrorResponse
// @Router      /candidate/analyse [post]
func (h *CandidateHandler) Analyse(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return fail(c, h.log, apperr.New(apperr.ErrValidation, "file is required"))
	}
	file, err := fh.Open()
	if err != nil {
		return fail(c, h.log, apperr.Wrap(apperr.ErrValidation, err, "failed to open uploaded file"))
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return fail(c, h.log, err)
	}
	p, err := h.uc.Analyse(c.UserContext(), candidate.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, p)
}

// @Summary  Get a candidate
// @Tags     candidate
// @Produce  json
// @Param    candidate_id path int true "Candidate id"
// @Security BearerAuth
// @Success  200 {object} candidate.Profile
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /candidate/get_candidate/{candidate_id} [get]
func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "candidate_id")
	if err != nil {
		return fail(c, h.log, err)
	}
	p, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, p)
}

// @Summary  List candidates
// @Tags     candidate
// @Produce  json
// @Param    limit  query int false "Page size, all rows when omitted"
// @Param    offset query int false "Rows to skip"
// @Security BearerAuth
// @Success  200 {array} candidate.Profile
// @Router   /candidate/get_all_candidates [get]
func (h *CandidateHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c)
	ps, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return fail(c, h.log, err)
	}
	return presenter.JSON(c, fiber.StatusOK, ps)
}

// @Summary  Delete a candidate
// @Tags     candidate
// @Produce  json
// @Param    candidate_id path int true "Candidate id"
// @Security BearerAuth
// @Success  200 {object} presenter.DetailResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /candidate/delete_candidate/{candidate_id} [delete]
func (h *CandidateHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "candidate_id")
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, h.log, err)
	}
	return presenter.Detail(c, "Candidate deleted successfully")
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrValidation, err, "failed to read file")
	}
	if int64(len(b)) > max {
		return nil, apperr.New(apperr.ErrValidation, fmt.Sprintf("file too large: limit is %d bytes", max))
	}
	return b, nil
}
