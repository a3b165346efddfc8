package services

import (
	"regexp"
	"testing"
	"time"

	"fintrack/internal/testutil"
	"fintrack/internal/timeutil"
)

var controlNumberPattern = regexp.MustCompile(`^PC-[0-9A-F]{8}$`)

func TestCreatePettyCash(t *testing.T) {
	t.Run("assigns a control number", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		entry, err := svc.Create(Actor{UserID: user.ID}, "Office supplies", 1200, timeutil.Today(time.UTC), false, "")
		testutil.AssertNoError(t, err)

		if !controlNumberPattern.MatchString(entry.ControlNumber) {
			t.Errorf("control number %q does not match PC-XXXXXXXX", entry.ControlNumber)
		}
	})

	t.Run("control numbers are distinct", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			entry, err := svc.Create(Actor{UserID: user.ID}, "Entry", 100, timeutil.Today(time.UTC), false, "")
			testutil.AssertNoError(t, err)
			if seen[entry.ControlNumber] {
				t.Fatalf("duplicate control number %q", entry.ControlNumber)
			}
			seen[entry.ControlNumber] = true
		}
	})

	t.Run("missing date rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)

		_, err := svc.Create(Actor{UserID: 1}, "No date", 100, timeutil.Date{}, false, "")
		testutil.AssertAppError(t, err, "VALIDATION_FAILED")
	})
}

func TestUpdatePettyCash(t *testing.T) {
	t.Run("control number is immutable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		entry, err := svc.Create(Actor{UserID: user.ID}, "Original", 100, timeutil.Today(time.UTC), false, "")
		testutil.AssertNoError(t, err)

		name := "Renamed"
		approved := true
		updated, err := svc.Update(Actor{UserID: user.ID}, entry.ID, PettyCashUpdate{Name: &name, IsApproved: &approved})
		testutil.AssertNoError(t, err)

		if updated.ControlNumber != entry.ControlNumber {
			t.Errorf("control number changed: %q -> %q", entry.ControlNumber, updated.ControlNumber)
		}
		if updated.Name != "Renamed" || !updated.IsApproved {
			t.Errorf("update not applied: %+v", updated)
		}
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		entry := testutil.CreateTestPettyCash(t, db, owner.ID, 100, false, timeutil.Today(time.UTC))

		name := "Hijacked"
		_, err := svc.Update(Actor{UserID: other.ID}, entry.ID, PettyCashUpdate{Name: &name})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestPettyCashQueries(t *testing.T) {
	t.Run("pending excludes approved", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		today := timeutil.Today(time.UTC)
		testutil.CreateTestPettyCash(t, db, user.ID, 100, false, today)
		testutil.CreateTestPettyCash(t, db, user.ID, 200, true, today)

		pending, err := svc.ListPending()
		testutil.AssertNoError(t, err)
		if len(pending) != 1 {
			t.Fatalf("expected 1 pending entry, got %d", len(pending))
		}
		if pending[0].IsApproved {
			t.Error("pending list contains an approved entry")
		}
	})

	t.Run("total sums approved only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		today := timeutil.Today(time.UTC)
		testutil.CreateTestPettyCash(t, db, user.ID, 100, false, today)
		testutil.CreateTestPettyCash(t, db, user.ID, 200, true, today)
		testutil.CreateTestPettyCash(t, db, user.ID, 300, true, today)

		total, err := svc.TotalApproved()
		testutil.AssertNoError(t, err)
		if total != 500 {
			t.Errorf("expected approved total 500, got %d", total)
		}
	})

	t.Run("total is zero on empty table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)

		total, err := svc.TotalApproved()
		testutil.AssertNoError(t, err)
		if total != 0 {
			t.Errorf("expected 0, got %d", total)
		}
	})

	t.Run("todays entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPettyCashService(db, time.UTC)
		user := testutil.CreateTestUser(t, db)

		today := timeutil.Today(time.UTC)
		testutil.CreateTestPettyCash(t, db, user.ID, 100, false, today)
		testutil.CreateTestPettyCash(t, db, user.ID, 200, false, today.AddDays(-1))

		rows, err := svc.ListToday()
		testutil.AssertNoError(t, err)
		if len(rows) != 1 {
			t.Fatalf("expected 1 entry today, got %d", len(rows))
		}
	})
}
