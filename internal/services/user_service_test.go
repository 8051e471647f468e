package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ghostlake/jobtrack/internal/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func userColumns() []string {
	return []string{"id", "created_at", "updated_at", "email", "password_hash"}
}

func TestAuthenticate_IssuesVerifiableCredential(t *testing.T) {
	db, mock := newMockDB(t)
	tokens := token.NewManager("svc-test-secret", time.Hour)
	svc := NewUserService(db, tokens)

	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough1"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("a@b.com", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userID, now, now, "a@b.com", string(hash)))

	tok, err := svc.Authenticate("a@b.com", "longenough1")
	require.NoError(t, err)

	subject, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, token.NewManager("svc-test-secret", time.Hour))

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("a@b.com", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(uuid.New(), now, now, "a@b.com", string(hash)))

	_, err = svc.Authenticate("a@b.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

// Unknown email reads the same as a wrong password.
func TestAuthenticate_UnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db, token.NewManager("svc-test-secret", time.Hour))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("missing@b.com", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := svc.Authenticate("missing@b.com", "whatever")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
