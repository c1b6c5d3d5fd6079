package store

import (
	"testing"
	"time"
)

func TestLoginAttemptWindow(t *testing.T) {
	ls := NewLoginAttemptStore(newTestDB(t))
	if err := ls.CreateTable(); err != nil {
		t.Fatal(err)
	}

	now := time.Now()

	// Two recent attempts and one outside the window.
	if err := ls.Record("sam@example.com", now.Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := ls.Record("sam@example.com", now.Add(-2*time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := ls.Record("sam@example.com", now.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}

	// Another account's attempts don't count.
	if err := ls.Record("frodo@example.com", now); err != nil {
		t.Fatal(err)
	}

	count, err := ls.CountSince("sam@example.com", now.Add(-15*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 attempts in the window, got %d", count)
	}

	if err := ls.Clear("sam@example.com"); err != nil {
		t.Fatal(err)
	}

	count, err = ls.CountSince("sam@example.com", now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected 0 attempts after clear, got %d", count)
	}

	count, err = ls.CountSince("frodo@example.com", now.Add(-time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("clear should only touch one account, got %d", count)
	}
}
