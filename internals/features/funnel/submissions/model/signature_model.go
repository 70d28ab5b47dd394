// file: internals/features/funnel/submissions/model/signature_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   MODEL: signatures
   One signature blob per submission, written once at step-4 finalization.
============================================================================= */

type SignatureModel struct {
	SignatureID uuid.UUID `json:"signature_id" gorm:"column:signature_id;type:uuid;primaryKey"`

	SignatureSubmissionID uuid.UUID `json:"signature_submission_id" gorm:"column:signature_submission_id;type:uuid;not null;uniqueIndex:uq_signature_submission"`
	SignatureEmail        string    `json:"signature_email" gorm:"column:signature_email;type:varchar(255);index:idx_signature_email"`

	SignatureImage       []byte `json:"-" gorm:"column:signature_image;type:bytea"`
	SignatureContentType string `json:"signature_content_type" gorm:"column:signature_content_type;type:varchar(64)"`

	SignatureCreatedAt time.Time `json:"signature_created_at" gorm:"column:signature_created_at;autoCreateTime"`
}

func (SignatureModel) TableName() string { return "signatures" }

func (m *SignatureModel) BeforeCreate(tx *gorm.DB) error {
	if m.SignatureID == uuid.Nil {
		m.SignatureID = uuid.New()
	}
	return nil
}
