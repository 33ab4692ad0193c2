package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cybersoft/talentmatch/pkg/apperr"
)

// maxLimit caps ?limit=; an absent limit returns every row.
const maxLimit = 200

func parseLimitOffset(c *fiber.Ctx) (limit, offset int) {
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}
	if v := strings.TrimSpace(c.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// idParam reads a positive integer id from the path or, failing that, the query.
func idParam(c *fiber.Ctx, name string) (int64, error) {
	v := strings.TrimSpace(c.Params(name))
	if v == "" {
		v = strings.TrimSpace(c.Query(name))
	}
	if v == "" {
		return 0, apperr.New(apperr.ErrValidation, name+" is required")
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.ErrValidation, name+" must be a positive integer")
	}
	return id, nil
}
