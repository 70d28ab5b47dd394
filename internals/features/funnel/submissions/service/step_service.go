// file: internals/features/funnel/submissions/service/step_service.go
package service

import (
	"fmt"
	"strconv"

	smodel "suitability_backend/internals/features/funnel/submissions/model"
	helper "suitability_backend/internals/helpers"
)

/* =========================================================
   STEP PROCESSOR
   Pure validation + normalization of one step's raw form payload.
   Persistence is the lifecycle's job. Field ownership:
     step 1: first_name, last_name, phone (required), email, package/source
     step 2: demographics
     step 3: answers 1–5
     step 4: answers 6–10 + declaration + signature
   Free text is trimmed/sanitized only; format validation stays loose on
   purpose (the funnel never enforced phone/email formats).
========================================================= */

// NormalizedStep is the cleaned, typed view of one step submission.
type NormalizedStep struct {
	Step int

	// identity
	Email string
	Phone string

	// personal
	FirstName        string
	LastName         string
	IDNumber         string
	Gender           string
	BirthDate        string
	Citizenship      string
	Address          string
	MaritalStatus    string
	EmploymentStatus string
	Education        string
	Profession       string

	// package
	SelectedPackage smodel.SelectedPackage
	PackagePrice    float64
	Source          string

	// quiz
	Answers map[int]int // position (1-based) → points

	// declaration
	DeclarationAccepted bool
	SignatureData       string
}

type StepService struct{}

func NewStepService() *StepService {
	return &StepService{}
}

// Process validates and normalizes the payload for the given step.
func (s *StepService) Process(step int, raw map[string]string) (*NormalizedStep, error) {
	if step < 1 || step > 4 {
		return nil, validationErr(ReasonInvalidStep)
	}

	clean := helper.SanitizePayload(raw)
	n := &NormalizedStep{Step: step, Answers: map[int]int{}}

	switch step {
	case 1:
		n.FirstName = clean["first_name"]
		n.LastName = clean["last_name"]
		n.Phone = clean["phone"]
		if n.FirstName == "" || n.LastName == "" || n.Phone == "" {
			return nil, validationErr(ReasonMissingRequiredFields)
		}
		n.Email = clean["email"]
		s.readPackage(clean, n)

	case 2:
		n.Email = clean["email"]
		n.Phone = clean["phone"]
		n.IDNumber = clean["id_number"]
		n.Gender = clean["gender"]
		n.BirthDate = clean["birth_date"]
		n.Citizenship = clean["citizenship"]
		n.Address = clean["address"]
		n.MaritalStatus = clean["marital_status"]
		n.EmploymentStatus = clean["employment_status"]
		n.Education = clean["education"]
		n.Profession = clean["profession"]
		s.readPackage(clean, n)

	case 3, 4:
		n.Email = clean["email"]
		s.readAnswers(clean, n)
		if step == 4 {
			n.DeclarationAccepted = isTruthy(clean["final_declaration_accepted"])
			n.SignatureData = raw["signature_data"] // data-URL, never sanitized as text
			if !n.DeclarationAccepted || n.SignatureData == "" {
				return nil, validationErr(ReasonDeclarationOrSignatureMissing)
			}
		}
	}

	return n, nil
}

// readAnswers collects answer_1..answer_10. Out-of-range or unparsable
// values are dropped here; completeness is enforced at scoring time.
func (s *StepService) readAnswers(clean map[string]string, n *NormalizedStep) {
	for pos := 1; pos <= smodel.AnswerCount; pos++ {
		v, ok := clean[fmt.Sprintf("answer_%d", pos)]
		if !ok || v == "" {
			continue
		}
		points, err := strconv.Atoi(v)
		if err != nil || points < 1 || points > 4 {
			continue
		}
		n.Answers[pos] = points
	}
}

func (s *StepService) readPackage(clean map[string]string, n *NormalizedStep) {
	if pkg := smodel.SelectedPackage(clean["selected_package"]); pkg.Valid() {
		n.SelectedPackage = pkg
	}
	if priceStr := clean["package_price"]; priceStr != "" {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil && price >= 0 {
			n.PackagePrice = price
		}
	}
	n.Source = clean["source"]
}

// Apply writes the step-owned fields onto a submission record. Fields the
// step does not own are left untouched; current_step only moves forward.
func (n *NormalizedStep) Apply(m *smodel.SubmissionModel) {
	setIfPresent := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	switch n.Step {
	case 1:
		m.SubmissionFirstName = n.FirstName
		m.SubmissionLastName = n.LastName
		m.SubmissionPhone = n.Phone
		setIfPresent(&m.SubmissionEmail, n.Email)
	case 2:
		setIfPresent(&m.SubmissionEmail, n.Email)
		setIfPresent(&m.SubmissionPhone, n.Phone)
		setIfPresent(&m.SubmissionIDNumber, n.IDNumber)
		setIfPresent(&m.SubmissionGender, n.Gender)
		setIfPresent(&m.SubmissionBirthDate, n.BirthDate)
		setIfPresent(&m.SubmissionCitizenship, n.Citizenship)
		setIfPresent(&m.SubmissionAddress, n.Address)
		setIfPresent(&m.SubmissionMaritalStatus, n.MaritalStatus)
		setIfPresent(&m.SubmissionEmploymentStatus, n.EmploymentStatus)
		setIfPresent(&m.SubmissionEducation, n.Education)
		setIfPresent(&m.SubmissionProfession, n.Profession)
	case 3, 4:
		setIfPresent(&m.SubmissionEmail, n.Email)
		if len(m.SubmissionAnswers) < smodel.AnswerCount {
			grown := make([]int, smodel.AnswerCount)
			copy(grown, m.SubmissionAnswers)
			m.SubmissionAnswers = grown
		}
		for pos, points := range n.Answers {
			m.SubmissionAnswers[pos-1] = points
		}
		if n.Step == 4 {
			m.SubmissionDeclarationAccepted = n.DeclarationAccepted
		}
	}

	if n.SelectedPackage != "" {
		m.SubmissionSelectedPackage = n.SelectedPackage
	}
	if n.PackagePrice > 0 {
		m.SubmissionPackagePrice = n.PackagePrice
	}
	setIfPresent(&m.SubmissionSource, n.Source)

	if n.Step > m.SubmissionCurrentStep {
		m.SubmissionCurrentStep = n.Step
	}
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
