// file: internals/features/funnel/submissions/service/dedup_service.go
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"suitability_backend/internals/configs"
	smodel "suitability_backend/internals/features/funnel/submissions/model"
)

/* =========================================================
   DEDUPLICATION MERGER
   Two cooperating procedures keyed by email:

   1. InterceptInsert — synchronous pre-insert hook. A would-be new record
      whose email already appeared within the window (default 10m) is
      merged into that record instead of inserted. The per-email mutex is
      the serialization point for the check-then-act; without it two
      concurrent step-1 posts race past the window check and both insert.

   2. Sweep — periodic pass. Groups records by email, merges each group
      into a keeper (highest current_step, then oldest/lowest id) and
      deletes the rest. Failures log and skip the group.

   Merge rule everywhere: first non-empty wins — an existing non-empty
   value is never clobbered. current_step is the one exception (max wins).
========================================================= */

type DedupService struct {
	DB     *gorm.DB
	Window time.Duration

	emailLocks sync.Map // email → *sync.Mutex
}

func NewDedupService(db *gorm.DB) *DedupService {
	return &DedupService{
		DB:     db,
		Window: configs.DedupWindow(),
	}
}

func (s *DedupService) lockEmail(email string) func() {
	v, _ := s.emailLocks.LoadOrStore(email, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// InterceptInsert commits a new submission, unless a same-email record was
// created within the window — then the incoming fields are merged into that
// record and no row is inserted. Returns the surviving record and whether
// a merge happened. extra (optional) runs against the surviving record in
// the same transaction, so a failing follow-up write rolls the insert back
// too.
func (s *DedupService) InterceptInsert(
	ctx context.Context,
	incoming *smodel.SubmissionModel,
	extra func(tx *gorm.DB, stored *smodel.SubmissionModel) error,
) (*smodel.SubmissionModel, bool, error) {
	email := incoming.SubmissionEmail

	if email != "" {
		unlock := s.lockEmail(email)
		defer unlock()
	}

	var stored *smodel.SubmissionModel
	merged := false

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if email != "" {
			var existing smodel.SubmissionModel
			cutoff := time.Now().Add(-s.Window)
			err := tx.
				Where("submission_email = ? AND submission_created_at >= ?", email, cutoff).
				Order("submission_created_at DESC, submission_id DESC").
				First(&existing).Error
			if err == nil {
				MergeInto(&existing, incoming)
				existing.SubmissionTime = time.Now()
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				stored = &existing
				merged = true
				if extra != nil {
					return extra(tx, stored)
				}
				return nil
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}
		}

		if err := tx.Create(incoming).Error; err != nil {
			return err
		}
		stored = incoming
		if extra != nil {
			return extra(tx, stored)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if merged {
		log.Printf("[DEDUP] merged incoming submission for %s into %s", email, stored.SubmissionID)
	}
	return stored, merged, nil
}

// MergeInto folds src's fields into dst under first-non-empty-wins.
// current_step moves forward only. When src reached step 2 or later the
// merged record is force-marked completed — that mirrors the behavior the
// funnel has always had, even though completion elsewhere requires the
// full step-4 finalization. Keep this rule inside the merger only.
func MergeInto(dst, src *smodel.SubmissionModel) {
	fill := func(dstF *string, srcV string) {
		if *dstF == "" && srcV != "" {
			*dstF = srcV
		}
	}

	fill(&dst.SubmissionPhone, src.SubmissionPhone)
	fill(&dst.SubmissionFirstName, src.SubmissionFirstName)
	fill(&dst.SubmissionLastName, src.SubmissionLastName)
	fill(&dst.SubmissionIDNumber, src.SubmissionIDNumber)
	fill(&dst.SubmissionGender, src.SubmissionGender)
	fill(&dst.SubmissionBirthDate, src.SubmissionBirthDate)
	fill(&dst.SubmissionCitizenship, src.SubmissionCitizenship)
	fill(&dst.SubmissionAddress, src.SubmissionAddress)
	fill(&dst.SubmissionMaritalStatus, src.SubmissionMaritalStatus)
	fill(&dst.SubmissionEmploymentStatus, src.SubmissionEmploymentStatus)
	fill(&dst.SubmissionEducation, src.SubmissionEducation)
	fill(&dst.SubmissionProfession, src.SubmissionProfession)
	fill(&dst.SubmissionSource, src.SubmissionSource)
	fill(&dst.SubmissionIPAddress, src.SubmissionIPAddress)
	fill(&dst.SubmissionUserAgent, src.SubmissionUserAgent)

	if dst.SubmissionSelectedPackage == "" && src.SubmissionSelectedPackage != "" {
		dst.SubmissionSelectedPackage = src.SubmissionSelectedPackage
	}
	if dst.SubmissionPackagePrice == 0 && src.SubmissionPackagePrice > 0 {
		dst.SubmissionPackagePrice = src.SubmissionPackagePrice
	}

	// per-answer slots — same granularity the old per-column schema had
	if len(dst.SubmissionAnswers) < smodel.AnswerCount {
		grown := make([]int, smodel.AnswerCount)
		copy(grown, dst.SubmissionAnswers)
		dst.SubmissionAnswers = grown
	}
	for i := 0; i < smodel.AnswerCount && i < len(src.SubmissionAnswers); i++ {
		if dst.SubmissionAnswers[i] == 0 && src.SubmissionAnswers[i] != 0 {
			dst.SubmissionAnswers[i] = src.SubmissionAnswers[i]
		}
	}

	if dst.SubmissionScore == 0 && src.SubmissionScore > 0 {
		dst.SubmissionScore = src.SubmissionScore
		dst.SubmissionScorePercentage = src.SubmissionScorePercentage
		dst.SubmissionPassed = src.SubmissionPassed
	}
	if !dst.SubmissionDeclarationAccepted && src.SubmissionDeclarationAccepted {
		dst.SubmissionDeclarationAccepted = true
	}

	// progress only moves forward
	if src.SubmissionCurrentStep > dst.SubmissionCurrentStep {
		dst.SubmissionCurrentStep = src.SubmissionCurrentStep
	}
	if src.SubmissionCompleted {
		dst.SubmissionCompleted = true
	}
	if src.SubmissionCurrentStep >= 2 {
		dst.SubmissionCompleted = true
	}
}

// Sweep reconciles every email with more than one record. Returns how many
// groups were merged; per-group failures are logged and skipped so one bad
// group never aborts the whole pass.
func (s *DedupService) Sweep(ctx context.Context) (int, error) {
	var emails []string
	if err := s.DB.WithContext(ctx).
		Model(&smodel.SubmissionModel{}).
		Select("submission_email").
		Where("submission_email <> ''").
		Group("submission_email").
		Having("COUNT(*) > 1").
		Pluck("submission_email", &emails).Error; err != nil {
		return 0, err
	}

	merged := 0
	for _, email := range emails {
		if err := s.sweepEmail(ctx, email); err != nil {
			log.Printf("[SWEEP ERROR] email=%s: %v", email, err)
			continue
		}
		merged++
	}
	return merged, nil
}

func (s *DedupService) sweepEmail(ctx context.Context, email string) error {
	unlock := s.lockEmail(email)
	defer unlock()

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var records []smodel.SubmissionModel
		if err := tx.
			Where("submission_email = ?", email).
			Order("submission_current_step DESC, submission_created_at ASC, submission_id ASC").
			Find(&records).Error; err != nil {
			return err
		}
		if len(records) < 2 {
			return nil
		}

		keeper := &records[0]
		for i := 1; i < len(records); i++ {
			MergeInto(keeper, &records[i])
		}
		// id and submission_time of the keeper stay as they were
		if err := tx.Save(keeper).Error; err != nil {
			return err
		}

		// keeper is saved before anything is deleted: the group can never
		// end up with zero records mid-sweep
		for i := 1; i < len(records); i++ {
			if err := tx.Delete(&records[i]).Error; err != nil {
				return err
			}
		}

		log.Printf("[SWEEP] email=%s merged %d records into %s", email, len(records)-1, keeper.SubmissionID)
		return nil
	})
}
