package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPromotionMock(t *testing.T) (*PromotionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPromotionRepo(db), mock
}

// Side-table loads must be scoped to the promotions just listed, not
// full scans filtered in Go.  No WithArgs on the side queries because
// the id order comes from map iteration.
func TestList_ScopesSideTableQueries(t *testing.T) {
	repo, mock := newPromotionMock(t)

	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, creator_id, name, discount_percent, starts_on, ends_on, created_at FROM promotions ORDER BY id").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "creator_id", "name", "discount_percent", "starts_on", "ends_on", "created_at"}).
			AddRow(1, 5, "summer", 20, day, day.AddDate(0, 1, 0), day).
			AddRow(2, 5, "autumn", 10, day, day.AddDate(0, 2, 0), day))

	mock.ExpectQuery("SELECT promotion_id, weekday FROM promotion_weekdays WHERE promotion_id IN (?,?) ORDER BY promotion_id, weekday").
		WillReturnRows(sqlmock.NewRows([]string{"promotion_id", "weekday"}).
			AddRow(1, 2).AddRow(1, 4))
	mock.ExpectQuery("SELECT promotion_id, hour FROM promotion_hours WHERE promotion_id IN (?,?) ORDER BY promotion_id, hour").
		WillReturnRows(sqlmock.NewRows([]string{"promotion_id", "hour"}).
			AddRow(2, 18))
	mock.ExpectQuery("SELECT promotion_id, pitch_id FROM promotion_pitches WHERE promotion_id IN (?,?) ORDER BY promotion_id, pitch_id").
		WillReturnRows(sqlmock.NewRows([]string{"promotion_id", "pitch_id"}).
			AddRow(1, 7))

	promos, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(promos) != 2 {
		t.Fatalf("got %d promotions, want 2", len(promos))
	}
	if len(promos[0].Weekdays) != 2 || promos[0].Weekdays[0] != time.Tuesday {
		t.Fatalf("weekdays not loaded: %v", promos[0].Weekdays)
	}
	if len(promos[1].Hours) != 1 || promos[1].Hours[0] != 18 {
		t.Fatalf("hours not loaded: %v", promos[1].Hours)
	}
	if len(promos[0].PitchIDs) != 1 || promos[0].PitchIDs[0] != 7 {
		t.Fatalf("pitches not loaded: %v", promos[0].PitchIDs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestList_NoPromotionsSkipsSideTables(t *testing.T) {
	repo, mock := newPromotionMock(t)

	mock.ExpectQuery("SELECT id, creator_id, name, discount_percent, starts_on, ends_on, created_at FROM promotions ORDER BY id").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "creator_id", "name", "discount_percent", "starts_on", "ends_on", "created_at"}))

	promos, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if promos != nil {
		t.Fatalf("got %v, want nil", promos)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}
