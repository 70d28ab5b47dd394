// file: internals/features/funnel/submissions/service/lifecycle_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	checkoutservice "suitability_backend/internals/features/funnel/checkout/service"
	qservice "suitability_backend/internals/features/funnel/quiz/service"
	smodel "suitability_backend/internals/features/funnel/submissions/model"
	helper "suitability_backend/internals/helpers"
)

/* =========================================================
   SUBMISSION LIFECYCLE
   The single entry point used by the form handler. State machine over
   current_step 1..4, terminal state completed=true. Transitions only move
   forward; re-posting an earlier step rewrites that step's fields only.
   Finalization (step 4) validates everything first and commits in one
   transaction — a failed final leaves stored state untouched.
========================================================= */

type LifecycleService struct {
	DB       *gorm.DB
	Identity *IdentityService
	Steps    *StepService
	Dedup    *DedupService
	Scoring  *qservice.ScoringService
	Quiz     *qservice.QuizService
	Checkout *checkoutservice.CheckoutService
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{
		DB:       db,
		Identity: NewIdentityService(db),
		Steps:    NewStepService(),
		Dedup:    NewDedupService(db),
		Scoring:  qservice.NewScoringService(),
		Quiz:     qservice.NewQuizService(db),
		Checkout: checkoutservice.NewCheckoutService(),
	}
}

type SubmitStepInput struct {
	Step         int
	SubmissionID uuid.UUID // correlation token from step 1, may be Nil
	Payload      map[string]string
	IPAddress    string
	UserAgent    string
}

type SubmitStepResult struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	CurrentStep  int       `json:"current_step"`
	Merged       bool      `json:"merged,omitempty"`
}

// SubmitStep handles steps 1–3 (and step-4 field accumulation without
// finalization semantics would go through SubmitFinal instead).
func (s *LifecycleService) SubmitStep(ctx context.Context, in SubmitStepInput) (*SubmitStepResult, error) {
	n, err := s.Steps.Process(in.Step, in.Payload)
	if err != nil {
		return nil, err
	}

	sub, err := s.Identity.Resolve(ctx, in.SubmissionID, n.Email)
	switch {
	case err == nil:
		// existing record: rewrite only this step's fields
		updated, uerr := s.applyToExisting(ctx, sub.SubmissionID, n, in.IPAddress, in.UserAgent, nil)
		if uerr != nil {
			return nil, uerr
		}
		return &SubmitStepResult{SubmissionID: updated.SubmissionID, CurrentStep: updated.SubmissionCurrentStep}, nil

	case errors.Is(err, ErrIdentityNotFound):
		// no resolvable identity — create a fresh record, even for step ≥2
		// (out-of-order arrival must not hard-fail)
		m := s.newRecord(n, in.IPAddress, in.UserAgent)
		stored, merged, ierr := s.Dedup.InterceptInsert(ctx, m, nil)
		if ierr != nil {
			return nil, ierr
		}
		return &SubmitStepResult{SubmissionID: stored.SubmissionID, CurrentStep: stored.SubmissionCurrentStep, Merged: merged}, nil

	default:
		return nil, err
	}
}

type SubmitFinalInput struct {
	SubmissionID uuid.UUID
	Payload      map[string]string
	IPAddress    string
	UserAgent    string
}

type SubmitFinalResult struct {
	SubmissionID uuid.UUID                        `json:"submission_id"`
	Score        int                              `json:"score"`
	MaxScore     int                              `json:"max_score"`
	Percentage   int                              `json:"percentage"`
	Passed       bool                             `json:"passed"`
	Band         qservice.Band                    `json:"band"`
	RedirectURL  string                           `json:"redirect_url"`
	Checkout     *checkoutservice.CheckoutPayload `json:"checkout,omitempty"`
}

// SubmitFinal runs the whole step-4 finalization: declaration/signature
// check, scoring over all 10 answers, atomic persist, redirect decision.
func (s *LifecycleService) SubmitFinal(ctx context.Context, in SubmitFinalInput) (*SubmitFinalResult, error) {
	n, err := s.Steps.Process(4, in.Payload)
	if err != nil {
		return nil, err
	}

	// quiz definition precondition, checked before anything is scored
	if _, err := s.Quiz.LoadDefinition(ctx); err != nil {
		return nil, err
	}

	var existing *smodel.SubmissionModel
	sub, rerr := s.Identity.Resolve(ctx, in.SubmissionID, n.Email)
	switch {
	case rerr == nil:
		existing = sub
	case errors.Is(rerr, ErrIdentityNotFound):
		existing = nil
	default:
		return nil, rerr
	}

	// effective answers = stored slots overlaid with this payload's slots;
	// validated BEFORE any write so a failed final never mutates state
	answers := make([]int, smodel.AnswerCount)
	if existing != nil {
		copy(answers, existing.SubmissionAnswers)
	}
	for pos, points := range n.Answers {
		answers[pos-1] = points
	}
	result, err := s.Scoring.Score(answers)
	if err != nil {
		return nil, err
	}

	sigImage, sigContentType := s.prepareSignature(n.SignatureData)

	var final *smodel.SubmissionModel
	if existing == nil {
		m := s.newRecord(n, in.IPAddress, in.UserAgent)
		s.applyScore(m, answers, result)
		// signature write shares the insert's transaction: a failed write
		// must not leave a completed record behind
		stored, _, ierr := s.Dedup.InterceptInsert(ctx, m, func(tx *gorm.DB, stored *smodel.SubmissionModel) error {
			return s.storeSignature(ctx, tx, stored, sigImage, sigContentType)
		})
		if ierr != nil {
			return nil, ierr
		}
		final = stored
	} else {
		updated, uerr := s.applyToExisting(ctx, existing.SubmissionID, n, in.IPAddress, in.UserAgent, func(tx *gorm.DB, m *smodel.SubmissionModel) error {
			s.applyScore(m, answers, result)
			return s.storeSignature(ctx, tx, m, sigImage, sigContentType)
		})
		if uerr != nil {
			return nil, uerr
		}
		final = updated
	}

	redirect, payload := s.Checkout.Resolve(result.Band, final.SubmissionSelectedPackage, final.SubmissionPackagePrice)

	log.Printf("[FUNNEL] finalized submission=%s score=%d band=%s", final.SubmissionID, result.Score, result.Band)

	return &SubmitFinalResult{
		SubmissionID: final.SubmissionID,
		Score:        result.Score,
		MaxScore:     result.MaxScore,
		Percentage:   result.Percentage,
		Passed:       result.Passed,
		Band:         result.Band,
		RedirectURL:  redirect,
		Checkout:     payload,
	}, nil
}

// newRecord builds an unsaved submission from a normalized step.
func (s *LifecycleService) newRecord(n *NormalizedStep, ip, ua string) *smodel.SubmissionModel {
	m := &smodel.SubmissionModel{
		SubmissionAnswers: make([]int, smodel.AnswerCount),
	}
	n.Apply(m)
	m.SubmissionIPAddress = ip
	m.SubmissionUserAgent = ua
	m.SubmissionTime = time.Now()
	return m
}

// applyToExisting is the single-record read-modify-write used for every
// step update. It re-reads the row inside the transaction so concurrent
// writers serialize at the store.
func (s *LifecycleService) applyToExisting(
	ctx context.Context,
	id uuid.UUID,
	n *NormalizedStep,
	ip, ua string,
	extra func(tx *gorm.DB, m *smodel.SubmissionModel) error,
) (*smodel.SubmissionModel, error) {
	var out smodel.SubmissionModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m smodel.SubmissionModel
		if err := tx.First(&m, "submission_id = ?", id).Error; err != nil {
			return err
		}
		n.Apply(&m)
		m.SubmissionTime = time.Now()
		if ip != "" {
			m.SubmissionIPAddress = ip
		}
		if ua != "" {
			m.SubmissionUserAgent = ua
		}
		if extra != nil {
			if err := extra(tx, &m); err != nil {
				return err
			}
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LifecycleService) applyScore(m *smodel.SubmissionModel, answers []int, result *qservice.ScoreResult) {
	m.SubmissionAnswers = answers
	m.SubmissionScore = result.Score
	m.SubmissionMaxScore = result.MaxScore
	m.SubmissionScorePercentage = result.Percentage
	m.SubmissionPassed = result.Passed
	m.SubmissionCompleted = true
	m.SubmissionCurrentStep = 4
}

// prepareSignature decodes + normalizes the opaque canvas blob up front;
// storage happens inside the finalization transaction.
func (s *LifecycleService) prepareSignature(dataURL string) ([]byte, string) {
	raw, contentType, err := helper.DecodeSignatureDataURL(dataURL)
	if err != nil {
		// opaque contract: keep whatever the widget sent
		return []byte(dataURL), "application/octet-stream"
	}
	img, ct, _ := helper.NormalizeSignatureImage(raw, contentType)
	return img, ct
}

func (s *LifecycleService) storeSignature(ctx context.Context, tx *gorm.DB, m *smodel.SubmissionModel, image []byte, contentType string) error {
	if err := tx.WithContext(ctx).
		Where("signature_submission_id = ?", m.SubmissionID).
		Delete(&smodel.SignatureModel{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&smodel.SignatureModel{
		SignatureSubmissionID: m.SubmissionID,
		SignatureEmail:        m.SubmissionEmail,
		SignatureImage:        image,
		SignatureContentType:  contentType,
	}).Error
}
