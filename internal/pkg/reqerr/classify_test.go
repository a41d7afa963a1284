package reqerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClassifier(env string) (*Classifier, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewClassifier(zap.New(core), env), logs
}

func TestClassifyDomainError(t *testing.T) {
	c, _ := newTestClassifier("dev")

	msg, status := c.Classify(Forbidden("You cannot message this media"))
	if msg != "You cannot message this media" || status != http.StatusForbidden {
		t.Fatalf("unexpected classification: %q %d", msg, status)
	}

	msg, status = c.Classify(&Err{Message: "bad input"})
	if msg != "bad input" || status != http.StatusBadRequest {
		t.Fatalf("zero status should default to 400: %q %d", msg, status)
	}
}

func TestClassifyWrappedDomainError(t *testing.T) {
	c, _ := newTestClassifier("dev")

	wrapped := fmt.Errorf("create message: %w", NotFound("Media not found"))
	msg, status := c.Classify(wrapped)
	if msg != "Media not found" || status != http.StatusNotFound {
		t.Fatalf("unexpected classification: %q %d", msg, status)
	}
}

func TestClassifyUniqueViolation(t *testing.T) {
	c, _ := newTestClassifier("dev")

	err := fmt.Errorf("insert media: %w", &pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	msg, status := c.Classify(err)
	if msg != "This already exists!" || status != http.StatusConflict {
		t.Fatalf("unexpected classification: %q %d", msg, status)
	}
}

func TestClassifyMissingRelation(t *testing.T) {
	c, _ := newTestClassifier("dev")

	err := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	msg, status := c.Classify(err)
	if msg != "This does not exist!" || status != http.StatusNotFound {
		t.Fatalf("unexpected classification: %q %d", msg, status)
	}

	msg, status = c.Classify(fmt.Errorf("load author: %w", pgx.ErrNoRows))
	if msg != "This does not exist!" || status != http.StatusNotFound {
		t.Fatalf("unexpected no-rows classification: %q %d", msg, status)
	}
}

func TestClassifyOtherStoreErrorUsesLastLine(t *testing.T) {
	c, _ := newTestClassifier("dev")

	err := &pgconn.PgError{Code: "22001", Message: "value too long\nfor type character varying(80)"}
	msg, status := c.Classify(err)
	if msg != "for type character varying(80)" || status != http.StatusBadRequest {
		t.Fatalf("unexpected classification: %q %d", msg, status)
	}
}

func TestClassifyUnknownErrorIsGenericAndLogged(t *testing.T) {
	c, logs := newTestClassifier("production")

	msg, status := c.Classify(errors.New("boom"))
	if msg != "Something went wrong!" || status != http.StatusInternalServerError {
		t.Fatalf("unexpected classification: %q %d", msg, status)
	}
	if logs.FilterLevelExact(zap.ErrorLevel).Len() != 1 {
		t.Fatalf("unclassified error must be logged even in production")
	}
}

func TestRecognizedErrorsNotLoggedInProduction(t *testing.T) {
	c, logs := newTestClassifier("production")
	c.Classify(New("nope"))
	if logs.Len() != 0 {
		t.Fatalf("domain error must not be logged in production, got %d entries", logs.Len())
	}

	devC, devLogs := newTestClassifier("dev")
	devC.Classify(New("nope"))
	if devLogs.Len() != 1 {
		t.Fatalf("domain error should be logged in dev, got %d entries", devLogs.Len())
	}
}
