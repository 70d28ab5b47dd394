// file: internals/features/funnel/submissions/dto/submission_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "suitability_backend/internals/features/funnel/submissions/model"
)

/* ==============================
   Admin viewer responses
============================== */

type SubmissionResponse struct {
	SubmissionID uuid.UUID `json:"submission_id"`

	Email string `json:"email"`
	Phone string `json:"phone"`

	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	IDNumber         string `json:"id_number,omitempty"`
	Gender           string `json:"gender,omitempty"`
	BirthDate        string `json:"birth_date,omitempty"`
	Citizenship      string `json:"citizenship,omitempty"`
	Address          string `json:"address,omitempty"`
	MaritalStatus    string `json:"marital_status,omitempty"`
	EmploymentStatus string `json:"employment_status,omitempty"`
	Education        string `json:"education,omitempty"`
	Profession       string `json:"profession,omitempty"`

	SelectedPackage string  `json:"selected_package,omitempty"`
	PackagePrice    float64 `json:"package_price,omitempty"`
	Source          string  `json:"source,omitempty"`

	Answers         []int `json:"answers"`
	Score           int   `json:"score"`
	MaxScore        int   `json:"max_score"`
	ScorePercentage int   `json:"score_percentage"`
	Passed          bool  `json:"passed"`

	CurrentStep         int  `json:"current_step"`
	Completed           bool `json:"completed"`
	DeclarationAccepted bool `json:"declaration_accepted"`

	IPAddress      string    `json:"ip_address,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	SubmissionTime time.Time `json:"submission_time"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModel(m *model.SubmissionModel) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID:        m.SubmissionID,
		Email:               m.SubmissionEmail,
		Phone:               m.SubmissionPhone,
		FirstName:           m.SubmissionFirstName,
		LastName:            m.SubmissionLastName,
		IDNumber:            m.SubmissionIDNumber,
		Gender:              m.SubmissionGender,
		BirthDate:           m.SubmissionBirthDate,
		Citizenship:         m.SubmissionCitizenship,
		Address:             m.SubmissionAddress,
		MaritalStatus:       m.SubmissionMaritalStatus,
		EmploymentStatus:    m.SubmissionEmploymentStatus,
		Education:           m.SubmissionEducation,
		Profession:          m.SubmissionProfession,
		SelectedPackage:     m.SubmissionSelectedPackage.String(),
		PackagePrice:        m.SubmissionPackagePrice,
		Source:              m.SubmissionSource,
		Answers:             m.SubmissionAnswers,
		Score:               m.SubmissionScore,
		MaxScore:            m.SubmissionMaxScore,
		ScorePercentage:     m.SubmissionScorePercentage,
		Passed:              m.SubmissionPassed,
		CurrentStep:         m.SubmissionCurrentStep,
		Completed:           m.SubmissionCompleted,
		DeclarationAccepted: m.SubmissionDeclarationAccepted,
		IPAddress:           m.SubmissionIPAddress,
		UserAgent:           m.SubmissionUserAgent,
		SubmissionTime:      m.SubmissionTime,
		CreatedAt:           m.SubmissionCreatedAt,
	}
}

func FromModels(ms []model.SubmissionModel) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

/* ==============================
   Admin login
============================== */

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
