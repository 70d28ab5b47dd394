// file: internals/features/funnel/submissions/service/lifecycle_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	checkoutservice "suitability_backend/internals/features/funnel/checkout/service"
	qmodel "suitability_backend/internals/features/funnel/quiz/model"
	qservice "suitability_backend/internals/features/funnel/quiz/service"
	smodel "suitability_backend/internals/features/funnel/submissions/model"
)

func newTestLifecycle(db *gorm.DB) *LifecycleService {
	return &LifecycleService{
		DB:       db,
		Identity: NewIdentityService(db),
		Steps:    NewStepService(),
		Dedup:    &DedupService{DB: db, Window: 10 * time.Minute},
		Scoring:  qservice.NewScoringService(),
		Quiz:     qservice.NewQuizService(db),
		Checkout: &checkoutservice.CheckoutService{
			CheckoutURL: "/checkout",
			ReviewURL:   "/review",
			FollowupURL: "/followup",
		},
	}
}

// answersPayload fills answer_1..answer_10 from the given points.
func answersPayload(points []int) map[string]string {
	p := map[string]string{}
	for i, v := range points {
		p[fmt.Sprintf("answer_%d", i+1)] = fmt.Sprintf("%d", v)
	}
	return p
}

func finalPayload(points []int) map[string]string {
	p := answersPayload(points)
	p["final_declaration_accepted"] = "1"
	p["signature_data"] = "data:image/png;base64,AAAA"
	return p
}

func signatureCount(t *testing.T, db *gorm.DB, id uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&smodel.SignatureModel{}).
		Where("signature_submission_id = ?", id).Count(&n).Error)
	return n
}

func TestFullFunnelPass(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	step1, err := lc.SubmitStep(ctx, SubmitStepInput{
		Step: 1,
		Payload: map[string]string{
			"first_name":       "Dana",
			"last_name":        "Cohen",
			"phone":            "0501234567",
			"email":            "dana@example.com",
			"selected_package": "monthly",
			"package_price":    "99",
		},
		IPAddress: "203.0.113.7",
		UserAgent: "funnel-test",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, step1.CurrentStep)

	// 3×5 + 2×5 = 25 → pass
	res, err := lc.SubmitFinal(ctx, SubmitFinalInput{
		SubmissionID: step1.SubmissionID,
		Payload:      finalPayload([]int{3, 3, 3, 3, 3, 2, 2, 2, 2, 2}),
	})
	require.NoError(t, err)

	assert.Equal(t, step1.SubmissionID, res.SubmissionID)
	assert.Equal(t, 25, res.Score)
	assert.Equal(t, 40, res.MaxScore)
	assert.True(t, res.Passed)
	assert.Equal(t, qservice.BandPass, res.Band)
	assert.Contains(t, res.RedirectURL, "/checkout?")
	assert.Contains(t, res.RedirectURL, "package=monthly")
	require.NotNil(t, res.Checkout)
	assert.Equal(t, "monthly", res.Checkout.PackageType)
	assert.Equal(t, 99.0, res.Checkout.PackagePrice)

	stored := mustReload(t, db, step1.SubmissionID)
	assert.True(t, stored.SubmissionCompleted)
	assert.True(t, stored.SubmissionPassed)
	assert.Equal(t, 4, stored.SubmissionCurrentStep)
	assert.Equal(t, 25, stored.SubmissionScore)
	assert.EqualValues(t, 1, signatureCount(t, db, stored.SubmissionID))
}

func TestFullFunnelBorderlineGoesToReview(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	// 2×10 = 20 → borderline
	res, err := lc.SubmitFinal(ctx, SubmitFinalInput{
		Payload: finalPayload([]int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}),
	})
	require.NoError(t, err)

	assert.Equal(t, 20, res.Score)
	assert.False(t, res.Passed)
	assert.Equal(t, qservice.BandBorderline, res.Band)
	assert.Equal(t, "/review", res.RedirectURL)
	assert.Nil(t, res.Checkout)

	// borderline still completes the submission
	stored := mustReload(t, db, res.SubmissionID)
	assert.True(t, stored.SubmissionCompleted)
	assert.False(t, stored.SubmissionPassed)
}

func TestFullFunnelFailGoesToFollowup(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	res, err := lc.SubmitFinal(ctx, SubmitFinalInput{
		Payload: finalPayload([]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 3}),
	})
	require.NoError(t, err)

	assert.Equal(t, 12, res.Score)
	assert.Equal(t, qservice.BandFail, res.Band)
	assert.Equal(t, "/followup", res.RedirectURL)
	assert.Nil(t, res.Checkout)
}

func TestFinalizationLeavesStateUntouchedOnIncompleteAnswers(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	step1, err := lc.SubmitStep(ctx, SubmitStepInput{
		Step: 1,
		Payload: map[string]string{
			"first_name": "Dana",
			"last_name":  "Cohen",
			"phone":      "0501234567",
			"email":      "dana@example.com",
		},
	})
	require.NoError(t, err)

	step3, err := lc.SubmitStep(ctx, SubmitStepInput{
		Step:         3,
		SubmissionID: step1.SubmissionID,
		Payload: map[string]string{
			"answer_1": "3", "answer_2": "3", "answer_3": "3",
			"answer_4": "3", "answer_5": "3",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, step3.CurrentStep)

	// only four of the remaining five answers — slot 10 stays empty
	_, err = lc.SubmitFinal(ctx, SubmitFinalInput{
		SubmissionID: step1.SubmissionID,
		Payload:      finalPayload([]int{0, 0, 0, 0, 0, 2, 2, 2, 2, 0}),
	})
	require.ErrorIs(t, err, qservice.ErrIncompleteAnswers)

	stored := mustReload(t, db, step1.SubmissionID)
	assert.Equal(t, 3, stored.SubmissionCurrentStep)
	assert.False(t, stored.SubmissionCompleted)
	assert.Equal(t, 0, stored.SubmissionScore)
	assert.EqualValues(t, 0, signatureCount(t, db, stored.SubmissionID))
}

func TestFinalizationRollsBackWhenSignatureWriteFails(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	// force the signature insert to fail mid-finalization
	require.NoError(t, db.Migrator().DropTable(&smodel.SignatureModel{}))

	_, err := lc.SubmitFinal(ctx, SubmitFinalInput{
		Payload: finalPayload([]int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}),
	})
	require.Error(t, err)

	// the submission insert must roll back with it: no completed record
	// without its signature
	assert.EqualValues(t, 0, countSubmissions(t, db))
}

func TestRepeatedStepPostsHitTheSameRecord(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	payload := map[string]string{
		"first_name": "Dana",
		"last_name":  "Cohen",
		"phone":      "0501234567",
		"email":      "dana@example.com",
	}

	first, err := lc.SubmitStep(ctx, SubmitStepInput{Step: 1, Payload: payload})
	require.NoError(t, err)

	// double-click replay without a token still resolves by email
	second, err := lc.SubmitStep(ctx, SubmitStepInput{Step: 1, Payload: payload})
	require.NoError(t, err)

	assert.Equal(t, first.SubmissionID, second.SubmissionID)
	assert.EqualValues(t, 1, countSubmissions(t, db))
}

func TestOutOfOrderStepCreatesRecord(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	res, err := lc.SubmitStep(ctx, SubmitStepInput{
		Step: 2,
		Payload: map[string]string{
			"email":  "dana@example.com",
			"gender": "female",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.CurrentStep)

	stored := mustReload(t, db, res.SubmissionID)
	assert.Equal(t, "female", stored.SubmissionGender)
	assert.Equal(t, "", stored.SubmissionFirstName)
}

func TestFinalWithoutDeclarationFailsValidation(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	p := answersPayload([]int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3})
	p["signature_data"] = "data:image/png;base64,AAAA"
	_, err := lc.SubmitFinal(ctx, SubmitFinalInput{Payload: p})
	require.ErrorIs(t, err, ErrValidation)
	assert.EqualValues(t, 0, countSubmissions(t, db))
}

func TestFinalRequiresQuizDefinition(t *testing.T) {
	db := openTestDB(t)
	lc := newTestLifecycle(db)
	ctx := context.Background()

	// a broken quiz table must block finalization before any write
	require.NoError(t, db.Where("quiz_question_position > ?", 5).
		Delete(&qmodel.QuizQuestionModel{}).Error)

	_, err := lc.SubmitFinal(ctx, SubmitFinalInput{
		Payload: finalPayload([]int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}),
	})
	require.ErrorIs(t, err, qservice.ErrBadDefinition)
	assert.EqualValues(t, 0, countSubmissions(t, db))
}
