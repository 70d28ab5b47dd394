// file: internals/features/funnel/submissions/service/testutil_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	qmodel "suitability_backend/internals/features/funnel/quiz/model"
	qservice "suitability_backend/internals/features/funnel/quiz/service"
	smodel "suitability_backend/internals/features/funnel/submissions/model"
)

// openTestDB gives every test an isolated in-memory store. Max one open
// connection so the memory DB is not duplicated across pool conns.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&smodel.SubmissionModel{},
		&smodel.SignatureModel{},
		&qmodel.QuizQuestionModel{},
	))

	require.NoError(t, qservice.NewQuizService(db).SeedDefaultQuestions())

	return db
}

func mustReload(t *testing.T, db *gorm.DB, id any) *smodel.SubmissionModel {
	t.Helper()
	var m smodel.SubmissionModel
	require.NoError(t, db.First(&m, "submission_id = ?", id).Error)
	return &m
}

func countSubmissions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&smodel.SubmissionModel{}).Count(&n).Error)
	return n
}
