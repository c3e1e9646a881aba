package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatal("nil error is not a violation")
	}
	err := errors.New(`ERROR: duplicate key value violates unique constraint "pending_changes_one_open_per_entity"`)
	if !IsUniqueViolation(err) {
		t.Fatal("expected generic duplicate key match")
	}
	if !IsUniqueViolation(err, "pending_changes_one_open_per_entity") {
		t.Fatal("expected constraint name match")
	}
	if IsUniqueViolation(err, "some_other_constraint") {
		t.Fatal("unexpected match for different constraint")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: page_content.page")) {
		t.Fatal("expected sqlite-style match")
	}
}
