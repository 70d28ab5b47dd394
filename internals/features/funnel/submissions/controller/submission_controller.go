// file: internals/features/funnel/submissions/controller/submission_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	qservice "suitability_backend/internals/features/funnel/quiz/service"
	service "suitability_backend/internals/features/funnel/submissions/service"
	helper "suitability_backend/internals/helpers"
)

type SubmissionController struct {
	Lifecycle *service.LifecycleService
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{Lifecycle: service.NewLifecycleService(db)}
}

// PostStep handles POST /api/public/funnel/step/:step for steps 1–3.
// A step-4 payload posted here is treated as a final submission.
func (ctl *SubmissionController) PostStep(c *fiber.Ctx) error {
	step, err := strconv.Atoi(c.Params("step"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid step")
	}
	if step == 4 {
		return ctl.PostFinal(c)
	}

	payload := parsePayload(c)
	result, err := ctl.Lifecycle.SubmitStep(c.UserContext(), service.SubmitStepInput{
		Step:         step,
		SubmissionID: correlationID(c, payload),
		Payload:      payload,
		IPAddress:    c.IP(),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return mapFunnelError(c, err)
	}

	return helper.Success(c, "Step saved", result)
}

// PostFinal handles POST /api/public/funnel/final (step 4 + scoring).
func (ctl *SubmissionController) PostFinal(c *fiber.Ctx) error {
	payload := parsePayload(c)
	result, err := ctl.Lifecycle.SubmitFinal(c.UserContext(), service.SubmitFinalInput{
		SubmissionID: correlationID(c, payload),
		Payload:      payload,
		IPAddress:    c.IP(),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return mapFunnelError(c, err)
	}

	return helper.Success(c, "Submission finalized", result)
}

// parsePayload accepts either a JSON object of string values or a classic
// urlencoded form post (what the old jQuery funnel sends).
func parsePayload(c *fiber.Ctx) map[string]string {
	payload := map[string]string{}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		_ = c.BodyParser(&payload)
		return payload
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		payload[string(key)] = string(value)
	})
	return payload
}

// correlationID reads the submission token issued at step 1, from header
// or body.
func correlationID(c *fiber.Ctx, payload map[string]string) uuid.UUID {
	raw := c.Get("X-Submission-ID")
	if raw == "" {
		raw = payload["submission_id"]
	}
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func mapFunnelError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, qservice.ErrIncompleteAnswers):
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", []string{err.Error()})
	case errors.Is(err, qservice.ErrBadDefinition):
		return helper.Error(c, fiber.StatusInternalServerError, "Quiz configuration is invalid")
	default:
		// store failure — the front end shows a generic retry prompt
		return helper.Error(c, fiber.StatusInternalServerError, "Temporary error, please try again")
	}
}
