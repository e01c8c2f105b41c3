package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}

func requireIDQuery(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperrors.NewValidationError(name+" query parameter is required", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}

func optionalIDQuery(c *fiber.Ctx, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func pageRequest(c *fiber.Ctx) repository.PageRequest {
	return repository.PageRequest{
		Page:    parseInt(c.Query("page"), 0),
		Size:    parseInt(c.Query("size"), 0),
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortDir"),
	}
}
