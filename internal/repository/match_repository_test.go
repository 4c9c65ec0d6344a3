package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/fbranqinho/sportify-studio-sub001/internal/model"
)

func newMockDB(t *testing.T) (*MatchRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMatchRepo(db), mock
}

// Claiming the away side must settle the opponent and flip the match
// to SCHEDULED in a single guarded statement; callers do not issue a
// separate status update afterwards.
func TestClaimAwaySide_SchedulesInOneStatement(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("UPDATE matches SET away_team_id=?, status=? WHERE id=? AND away_team_id IS NULL").
		WithArgs(uint64(9), model.MatchScheduled, uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ClaimAwaySide(context.Background(), 4, 9); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestClaimAwaySide_AlreadyTaken(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec("UPDATE matches SET away_team_id=?, status=? WHERE id=? AND away_team_id IS NULL").
		WithArgs(uint64(9), model.MatchScheduled, uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.ClaimAwaySide(context.Background(), 4, 9); err != ErrConflict {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}
