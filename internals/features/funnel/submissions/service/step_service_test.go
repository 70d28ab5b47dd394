// file: internals/features/funnel/submissions/service/step_service_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smodel "suitability_backend/internals/features/funnel/submissions/model"
)

func TestProcessStep1RequiresNameAndPhone(t *testing.T) {
	svc := NewStepService()

	_, err := svc.Process(1, map[string]string{"first_name": "Dana"})
	require.ErrorIs(t, err, ErrValidation)

	// whitespace-only counts as missing
	_, err = svc.Process(1, map[string]string{
		"first_name": "Dana",
		"last_name":  "   ",
		"phone":      "0501234567",
	})
	require.ErrorIs(t, err, ErrValidation)

	n, err := svc.Process(1, map[string]string{
		"first_name": "  Dana ",
		"last_name":  "Cohen",
		"phone":      "0501234567",
		"email":      "dana@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana", n.FirstName)
	assert.Equal(t, "dana@example.com", n.Email)
}

func TestProcessRejectsUnknownStep(t *testing.T) {
	svc := NewStepService()
	_, err := svc.Process(0, map[string]string{})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Process(5, map[string]string{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestProcessStep2NormalizesDemographics(t *testing.T) {
	svc := NewStepService()

	n, err := svc.Process(2, map[string]string{
		"email":          "dana@example.com",
		"gender":         " female ",
		"profession":     "engineer\x00", // control chars stripped
		"marital_status": "married",
	})
	require.NoError(t, err)
	assert.Equal(t, "female", n.Gender)
	assert.Equal(t, "engineer", n.Profession)
	assert.Equal(t, "married", n.MaritalStatus)
}

func TestProcessStep3CollectsAnswers(t *testing.T) {
	svc := NewStepService()

	n, err := svc.Process(3, map[string]string{
		"answer_1": "4",
		"answer_2": "banana", // unparsable, dropped
		"answer_3": "7",      // out of range, dropped
		"answer_5": "2",
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 4, 5: 2}, n.Answers)
}

func TestProcessStep4RequiresDeclarationAndSignature(t *testing.T) {
	svc := NewStepService()

	_, err := svc.Process(4, map[string]string{
		"answer_6":                   "3",
		"final_declaration_accepted": "1",
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Process(4, map[string]string{
		"signature_data": "data:image/png;base64,AAAA",
	})
	require.ErrorIs(t, err, ErrValidation)

	n, err := svc.Process(4, map[string]string{
		"answer_6":                   "3",
		"final_declaration_accepted": "true",
		"signature_data":             "data:image/png;base64,AAAA",
	})
	require.NoError(t, err)
	assert.True(t, n.DeclarationAccepted)
	assert.NotEmpty(t, n.SignatureData)
}

func TestApplyOwnsOnlyItsStepFields(t *testing.T) {
	svc := NewStepService()

	m := &smodel.SubmissionModel{
		SubmissionFirstName:   "Dana",
		SubmissionLastName:    "Cohen",
		SubmissionPhone:       "0501234567",
		SubmissionEmail:       "dana@example.com",
		SubmissionCurrentStep: 3,
		SubmissionAnswers:     []int{4, 4, 4, 4, 4, 0, 0, 0, 0, 0},
	}

	// re-posting step 1 rewrites step-1 fields but never rolls the step back
	n, err := svc.Process(1, map[string]string{
		"first_name": "Dana",
		"last_name":  "Levi",
		"phone":      "0507654321",
	})
	require.NoError(t, err)
	n.Apply(m)

	assert.Equal(t, "Levi", m.SubmissionLastName)
	assert.Equal(t, "0507654321", m.SubmissionPhone)
	assert.Equal(t, 3, m.SubmissionCurrentStep)
	assert.Equal(t, []int{4, 4, 4, 4, 4, 0, 0, 0, 0, 0}, []int(m.SubmissionAnswers))
}

func TestApplyAdvancesStepForward(t *testing.T) {
	svc := NewStepService()

	m := &smodel.SubmissionModel{SubmissionCurrentStep: 1}
	n, err := svc.Process(2, map[string]string{"gender": "male"})
	require.NoError(t, err)
	n.Apply(m)
	assert.Equal(t, 2, m.SubmissionCurrentStep)
	assert.Equal(t, "male", m.SubmissionGender)
}
