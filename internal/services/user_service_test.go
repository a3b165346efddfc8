package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("hashes the password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("alice", "alice@example.com", "s3cret", false, false)
		testutil.AssertNoError(t, err)

		if user.Password == "s3cret" {
			t.Error("password stored in plaintext")
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("bob", "", "pw", false, false)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser("bob", "", "pw", false, false)
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("failed duplicate check surfaces instead of inserting", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		if err := db.Migrator().DropTable(&models.User{}); err != nil {
			t.Fatalf("failed to drop users table: %v", err)
		}

		_, err := svc.CreateUser("carol", "", "pw", false, false)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		got, err := svc.Authenticate(user.Username, "password123")
		testutil.AssertNoError(t, err)
		if got.ID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Authenticate(user.Username, "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.Authenticate("ghost", "pw")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("inactive user rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)
		user := testutil.CreateTestUser(t, db)

		user.IsActive = false
		if err := db.Save(user).Error; err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}

		_, err := svc.Authenticate(user.Username, "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}
