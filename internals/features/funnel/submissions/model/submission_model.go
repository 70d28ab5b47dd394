// file: internals/features/funnel/submissions/model/submission_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: Selected Package ('trial','monthly','yearly','none')
============================================================================= */
type SelectedPackage string

const (
	PackageTrial   SelectedPackage = "trial"
	PackageMonthly SelectedPackage = "monthly"
	PackageYearly  SelectedPackage = "yearly"
	PackageNone    SelectedPackage = "none"
)

func (p SelectedPackage) String() string { return string(p) }
func (p SelectedPackage) Valid() bool {
	switch p {
	case PackageTrial, PackageMonthly, PackageYearly, PackageNone:
		return true
	default:
		return false
	}
}

// sql.Scanner + driver.Valuer (safe scan into the enum)
func (p *SelectedPackage) Scan(value any) error {
	if value == nil {
		*p = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*p = SelectedPackage(v)
	case []byte:
		*p = SelectedPackage(string(v))
	default:
		return fmt.Errorf("unsupported type for SelectedPackage: %T", value)
	}
	if *p != "" && !p.Valid() {
		return fmt.Errorf("invalid SelectedPackage: %q", *p)
	}
	return nil
}
func (p SelectedPackage) Value() (driver.Value, error) {
	if p == "" {
		return nil, nil
	}
	if !p.Valid() {
		return nil, fmt.Errorf("invalid SelectedPackage: %q", p)
	}
	return string(p), nil
}

/* =============================================================================
   MODEL: submissions
   One row per respondent funnel attempt (steps 1–4). Everything except the
   step-1 identity fields arrives incrementally and may stay empty.
   Invariants kept by the services, not the schema:
   - submission_current_step never decreases
   - completed=true only after step-4 finalization (answers, declaration,
     signature all present)
============================================================================= */

// AnswerCount: answers are stored as a fixed-length slice, one slot per
// question position, 0 = not answered yet. The old system kept one column
// per answer; one JSON array with positional slots preserves the same
// per-answer merge granularity.
const AnswerCount = 10

type SubmissionModel struct {
	// PK
	SubmissionID uuid.UUID `json:"submission_id" gorm:"column:submission_id;type:uuid;primaryKey"`

	// Identity — at least one of email/phone present; email is the dedup key
	SubmissionEmail string `json:"submission_email" gorm:"column:submission_email;type:varchar(255);index:idx_submission_email"`
	SubmissionPhone string `json:"submission_phone" gorm:"column:submission_phone;type:varchar(64)"`

	// Personal (steps 1–2, all optional)
	SubmissionFirstName        string `json:"submission_first_name" gorm:"column:submission_first_name;type:varchar(128)"`
	SubmissionLastName         string `json:"submission_last_name" gorm:"column:submission_last_name;type:varchar(128)"`
	SubmissionIDNumber         string `json:"submission_id_number" gorm:"column:submission_id_number;type:varchar(32)"`
	SubmissionGender           string `json:"submission_gender" gorm:"column:submission_gender;type:varchar(16)"`
	SubmissionBirthDate        string `json:"submission_birth_date" gorm:"column:submission_birth_date;type:varchar(32)"`
	SubmissionCitizenship      string `json:"submission_citizenship" gorm:"column:submission_citizenship;type:varchar(64)"`
	SubmissionAddress          string `json:"submission_address" gorm:"column:submission_address;type:varchar(255)"`
	SubmissionMaritalStatus    string `json:"submission_marital_status" gorm:"column:submission_marital_status;type:varchar(32)"`
	SubmissionEmploymentStatus string `json:"submission_employment_status" gorm:"column:submission_employment_status;type:varchar(64)"`
	SubmissionEducation        string `json:"submission_education" gorm:"column:submission_education;type:varchar(64)"`
	SubmissionProfession       string `json:"submission_profession" gorm:"column:submission_profession;type:varchar(128)"`

	// Package
	SubmissionSelectedPackage SelectedPackage `json:"submission_selected_package" gorm:"column:submission_selected_package;type:varchar(16)"`
	SubmissionPackagePrice    float64         `json:"submission_package_price" gorm:"column:submission_package_price;type:numeric(10,2);default:0"`
	SubmissionSource          string          `json:"submission_source" gorm:"column:submission_source;type:varchar(255)"`

	// Quiz — positional slots, 0 = unanswered
	SubmissionAnswers datatypes.JSONSlice[int] `json:"submission_answers" gorm:"column:submission_answers"`

	// Scoring
	SubmissionScore           int  `json:"submission_score" gorm:"column:submission_score;default:0"`
	SubmissionMaxScore        int  `json:"submission_max_score" gorm:"column:submission_max_score;default:40"`
	SubmissionPassed          bool `json:"submission_passed" gorm:"column:submission_passed;default:false;index:idx_submission_passed"`
	SubmissionScorePercentage int  `json:"submission_score_percentage" gorm:"column:submission_score_percentage;default:0"`

	// Progress
	SubmissionCurrentStep int  `json:"submission_current_step" gorm:"column:submission_current_step;default:1"`
	SubmissionCompleted   bool `json:"submission_completed" gorm:"column:submission_completed;default:false;index:idx_submission_completed"`

	// Declaration
	SubmissionDeclarationAccepted bool `json:"submission_declaration_accepted" gorm:"column:submission_declaration_accepted;default:false"`

	// Meta
	SubmissionIPAddress string    `json:"submission_ip_address" gorm:"column:submission_ip_address;type:varchar(64)"`
	SubmissionUserAgent string    `json:"submission_user_agent" gorm:"column:submission_user_agent;type:varchar(255)"`
	SubmissionTime      time.Time `json:"submission_time" gorm:"column:submission_time"` // refreshed on every write

	// Audit
	SubmissionCreatedAt time.Time `json:"submission_created_at" gorm:"column:submission_created_at;autoCreateTime;index:idx_submission_created_at"`
	SubmissionUpdatedAt time.Time `json:"submission_updated_at" gorm:"column:submission_updated_at;autoUpdateTime"`
}

func (SubmissionModel) TableName() string { return "submissions" }

func (m *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	if m.SubmissionTime.IsZero() {
		m.SubmissionTime = time.Now()
	}
	if m.SubmissionMaxScore == 0 {
		m.SubmissionMaxScore = 40
	}
	if len(m.SubmissionAnswers) == 0 {
		m.SubmissionAnswers = make(datatypes.JSONSlice[int], AnswerCount)
	}
	return nil
}

// AnsweredCount returns how many positional slots are filled.
func (m *SubmissionModel) AnsweredCount() int {
	n := 0
	for _, a := range m.SubmissionAnswers {
		if a != 0 {
			n++
		}
	}
	return n
}
