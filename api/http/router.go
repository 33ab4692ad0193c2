package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cybersoft/talentmatch/api/http/handlers"
	"github.com/cybersoft/talentmatch/api/http/presenter"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Candidate *handlers.CandidateHandler
	Job       *handlers.JobHandler
	Matching  *handlers.MatchingHandler
}

// Register wires all HTTP routes onto given Fiber app. guard, when not nil,
// protects the candidate, job and matching groups.
func Register(app *fiber.App, h Handlers, guard fiber.Handler) {
	app.Get("/", h.Health.Root)
	// Health and readiness endpoints for probes/monitoring
	app.Get("/healthz", h.Health.Healthz)
	app.Get("/ready", h.Health.Ready)

	group := func(prefix string) fiber.Router {
		if guard != nil {
			return app.Group(prefix, guard)
		}
		return app.Group(prefix)
	}

	cg := group("/candidate")
	cg.Post("/analyse", h.Candidate.Analyse)
	cg.Get("/get_candidate/:candidate_id", h.Candidate.Get)
	cg.Get("/get_all_candidates", h.Candidate.List)
	cg.Delete("/delete_candidate/:candidate_id", h.Candidate.Delete)

	jg := group("/job")
	jg.Post("/analyse", h.Job.Analyse)
	jg.Get("/get_job/:job_id", h.Job.Get)
	jg.Get("/get_all_jobs", h.Job.List)
	jg.Delete("/delete_job/:job_id", h.Job.Delete)

	mg := group("/matching")
	mg.Post("/analyse", h.Matching.Analyse)
	mg.Get("/get_matchings/:job_id", h.Matching.ListByJob)
	mg.Get("/get_matching", h.Matching.Get)
	mg.Delete("/delete_matching", h.Matching.Delete)
}

// ErrorHandler renders errors that escape the handlers (unknown routes, body
// limit, recovered panics) in the {"detail": ...} envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		detail = fe.Message
	}
	return presenter.Error(c, code, detail)
}
