package services

import (
	"testing"

	"lms/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCreateTransactionEnrollsUser(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "c1")
	svc := NewPurchaseService(db)

	result, err := svc.CreateTransaction(PurchaseInput{
		UserID:          "u1",
		CourseID:        "c1",
		TransactionID:   "pi_123",
		PaymentProvider: "stripe",
		Amount:          4900,
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", result.Transaction.TransactionID)
	assert.Equal(t, int64(4900), result.Transaction.Amount)

	// The snapshot mirrors the course's shape at purchase time, everything
	// incomplete.
	snapshot := result.Progress.Sections.Data()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "s1", snapshot[0].SectionID)
	require.Len(t, snapshot[0].Chapters, 2)
	assert.Equal(t, "ch1", snapshot[0].Chapters[0].ChapterID)
	assert.Equal(t, "s2", snapshot[1].SectionID)
	require.Len(t, snapshot[1].Chapters, 1)
	for _, section := range snapshot {
		for _, chapter := range section.Chapters {
			assert.False(t, chapter.Completed)
		}
	}
	assert.Equal(t, 0, result.Progress.OverallProgress)

	var enrollmentCount int64
	db.Model(&models.Enrollment{}).Where("course_id = ? AND user_id = ?", "c1", "u1").Count(&enrollmentCount)
	assert.Equal(t, int64(1), enrollmentCount)

	var stored models.UserCourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", "u1", "c1").First(&stored).Error)
	assert.Equal(t, 0, stored.OverallProgress)
}

func TestCreateTransactionUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	_, err := svc.CreateTransaction(PurchaseInput{
		UserID:        "u1",
		CourseID:      "missing",
		TransactionID: "pi_404",
	})
	assert.ErrorIs(t, err, ErrCourseNotFound)

	var txCount int64
	db.Model(&models.Transaction{}).Count(&txCount)
	assert.Equal(t, int64(0), txCount)
}

func TestCreateTransactionMissingFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewPurchaseService(db)

	_, err := svc.CreateTransaction(PurchaseInput{UserID: "u1", CourseID: "c1"})
	assert.ErrorIs(t, err, ErrInvalidPurchase)
}

func TestCreateTransactionDuplicateTransactionID(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "c1")
	svc := NewPurchaseService(db)

	_, err := svc.CreateTransaction(PurchaseInput{
		UserID:          "u1",
		CourseID:        "c1",
		TransactionID:   "pi_once",
		PaymentProvider: "stripe",
	})
	require.NoError(t, err)

	// Webhook redelivery: same external id from another enrollment attempt.
	_, err = svc.CreateTransaction(PurchaseInput{
		UserID:          "u2",
		CourseID:        "c1",
		TransactionID:   "pi_once",
		PaymentProvider: "stripe",
	})
	assert.ErrorIs(t, err, ErrDuplicateTransaction)

	var txCount int64
	db.Model(&models.Transaction{}).Count(&txCount)
	assert.Equal(t, int64(1), txCount)

	var u2Enrollments int64
	db.Model(&models.Enrollment{}).Where("user_id = ?", "u2").Count(&u2Enrollments)
	assert.Equal(t, int64(0), u2Enrollments, "rolled-back purchase must leave no enrollment")
}

func TestCreateTransactionRollsBackAllWrites(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "c1")
	svc := NewPurchaseService(db)

	// Pre-existing progress row makes the snapshot insert fail after the
	// transaction record has already been written inside the workflow.
	existing := models.UserCourseProgress{
		UserID:   "u1",
		CourseID: "c1",
		Sections: datatypes.NewJSONType([]models.SectionProgress{}),
		Version:  1,
	}
	require.NoError(t, db.Create(&existing).Error)

	_, err := svc.CreateTransaction(PurchaseInput{
		UserID:          "u1",
		CourseID:        "c1",
		TransactionID:   "pi_rollback",
		PaymentProvider: "stripe",
	})
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var txCount int64
	db.Model(&models.Transaction{}).Count(&txCount)
	assert.Equal(t, int64(0), txCount, "transaction record must not survive the rollback")

	var enrollmentCount int64
	db.Model(&models.Enrollment{}).Count(&enrollmentCount)
	assert.Equal(t, int64(0), enrollmentCount)
}

func TestListTransactionsFiltersByUser(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "c1")
	svc := NewPurchaseService(db)

	_, err := svc.CreateTransaction(PurchaseInput{
		UserID: "u1", CourseID: "c1", TransactionID: "pi_a", PaymentProvider: "stripe",
	})
	require.NoError(t, err)
	_, err = svc.CreateTransaction(PurchaseInput{
		UserID: "u2", CourseID: "c1", TransactionID: "pi_b", PaymentProvider: "stripe",
	})
	require.NoError(t, err)

	all, err := svc.ListTransactions("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListTransactions("u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "pi_a", mine[0].TransactionID)
}
