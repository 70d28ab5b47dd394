// file: internals/features/funnel/submissions/service/identity_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	smodel "suitability_backend/internals/features/funnel/submissions/model"
)

/* =========================================================
   IDENTITY RESOLVER
   Session-bound correlation id first (issued at step 1 and echoed by the
   client on later steps), newest record by email as fallback. The session
   id is authoritative: it survives the whole browser session even before
   an email is captured. The email fallback covers session loss (new
   device, cleared cookies).
========================================================= */

type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

// Resolve finds the submission a step's payload belongs to.
// Returns ErrIdentityNotFound when neither key matches anything.
func (s *IdentityService) Resolve(ctx context.Context, submissionID uuid.UUID, email string) (*smodel.SubmissionModel, error) {
	if submissionID != uuid.Nil {
		var sub smodel.SubmissionModel
		err := s.DB.WithContext(ctx).
			First(&sub, "submission_id = ?", submissionID).Error
		if err == nil {
			return &sub, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// stale token: fall through to the email lookup
	}

	if email != "" {
		var sub smodel.SubmissionModel
		err := s.DB.WithContext(ctx).
			Where("submission_email = ?", email).
			Order("submission_created_at DESC, submission_id DESC").
			First(&sub).Error
		if err == nil {
			return &sub, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, ErrIdentityNotFound
}
