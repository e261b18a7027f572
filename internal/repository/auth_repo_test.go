package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"aquafeed/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewUserRepository(db), mock
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		hash        string
		expect      func(sqlmock.Sqlmock)
		wantID      int
		errContains string
	}{
		{
			name:     "success",
			username: "alice",
			hash:     "h123",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "h123").
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name:     "exec error",
			username: "bob",
			hash:     "h456",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("bob", "h456").
					WillReturnError(errors.New("UNIQUE constraint failed: users.username"))
			},
			errContains: "insert user",
		},
		{
			name:     "last insert id error",
			username: "carol",
			hash:     "h789",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol", "h789").
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			errContains: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockUserRepo(t)
			tt.expect(mock)

			id, err := repo.Create(context.Background(), tt.username, tt.hash)
			if tt.errContains != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("expected error containing %q, got %v", tt.errContains, err)
				}
				if id != 0 {
					t.Fatalf("expected id=0 on error, got %d", id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("id: want %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		expect      func(sqlmock.Sqlmock)
		wantUser    *models.User
		errContains string
	}{
		{
			name:     "found",
			username: "alice",
			expect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow(7, "alice", "h123")
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).WithArgs("alice").WillReturnRows(rows)
			},
			wantUser: &models.User{ID: 7, Username: "alice", PasswordHash: "h123"},
		},
		{
			name:     "not found",
			username: "missing",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).WithArgs("missing").WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name:     "query error",
			username: "bob",
			expect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).WithArgs("bob").WillReturnError(errors.New("disk I/O error"))
			},
			errContains: "select user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockUserRepo(t)
			tt.expect(mock)

			u, err := repo.GetByUsername(context.Background(), tt.username)
			if tt.errContains != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil || *u != *tt.wantUser {
				t.Fatalf("user: want %+v, got %+v", tt.wantUser, u)
			}
		})
	}
}
