// file: internals/features/funnel/submissions/controller/admin_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sdto "suitability_backend/internals/features/funnel/submissions/dto"
	smodel "suitability_backend/internals/features/funnel/submissions/model"
	helper "suitability_backend/internals/helpers"
)

/* =========================================================
   ADMIN VIEWER
   Read access + delete over submission records. Writes beyond delete stay
   inside the lifecycle and the dedup merger.
========================================================= */

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// ListSubmissions: GET /api/a/submissions?completed=&passed=&email=&page=&per_page=
func (ctl *AdminController) ListSubmissions(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.WithContext(c.UserContext()).Model(&smodel.SubmissionModel{})

	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid completed filter")
		}
		q = q.Where("submission_completed = ?", completed)
	}
	if v := c.Query("passed"); v != "" {
		passed, err := strconv.ParseBool(v)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid passed filter")
		}
		q = q.Where("submission_passed = ?", passed)
	}
	if v := c.Query("email"); v != "" {
		q = q.Where("submission_email = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count submissions")
	}

	var records []smodel.SubmissionModel
	if err := q.
		Order("submission_created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&records).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list submissions")
	}

	return helper.Success(c, "OK", fiber.Map{
		"submissions": sdto.FromModels(records),
		"pagination":  helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit, len(records)),
	})
}

// GetSubmission: GET /api/a/submissions/:id
func (ctl *AdminController) GetSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	var m smodel.SubmissionModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&m, "submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load submission")
	}

	return helper.Success(c, "OK", sdto.FromModel(&m))
}

// GetSignature: GET /api/a/submissions/:id/signature — serves the stored blob.
func (ctl *AdminController) GetSignature(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	var sig smodel.SignatureModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&sig, "signature_submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Signature not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load signature")
	}

	c.Set(fiber.HeaderContentType, sig.SignatureContentType)
	return c.Send(sig.SignatureImage)
}

// DeleteSubmission: DELETE /api/a/submissions/:id — removes the record and
// its signature row.
func (ctl *AdminController) DeleteSubmission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid submission id")
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&smodel.SubmissionModel{}, "submission_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&smodel.SignatureModel{}, "signature_submission_id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete submission")
	}

	return helper.Success(c, "Submission deleted", fiber.Map{"submission_id": id})
}
