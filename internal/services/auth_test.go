package services_test

import (
	"testing"

	"tasknest/backend/internal/database"
	"tasknest/backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func TestRegisterThenLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(4)

	registered, err := svc.RegisterUser(db, "a@x.com", "pw", "A")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", registered.Email)
	assert.Equal(t, "A", registered.Name)
	assert.NotEqual(t, "pw", registered.Password, "password must be stored hashed")

	loggedIn, err := svc.LoginUser(db, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(4)

	_, err := svc.RegisterUser(db, "a@x.com", "pw", "A")
	require.NoError(t, err)

	_, err = svc.RegisterUser(db, "a@x.com", "other", "B")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestRegisterMissingFields(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(4)

	cases := []struct {
		name     string
		email    string
		password string
		display  string
	}{
		{"empty email", "", "pw", "A"},
		{"empty password", "a@x.com", "", "A"},
		{"empty name", "a@x.com", "pw", ""},
		{"whitespace email", "   ", "pw", "A"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterUser(db, tc.email, tc.password, tc.display)
			assert.ErrorIs(t, err, services.ErrMissingFields)
		})
	}
}

func TestLoginDoesNotLeakWhichFieldWasWrong(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(4)

	_, err := svc.RegisterUser(db, "a@x.com", "pw", "A")
	require.NoError(t, err)

	_, wrongPassword := svc.LoginUser(db, "a@x.com", "not-pw")
	_, unknownEmail := svc.LoginUser(db, "nobody@x.com", "pw")

	assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestRegisterTrimsEmailAndName(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewAuthService(4)

	user, err := svc.RegisterUser(db, "  a@x.com  ", "pw", "  A  ")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "A", user.Name)

	_, err = svc.LoginUser(db, "a@x.com", "pw")
	assert.NoError(t, err)
}
