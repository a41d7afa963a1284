package reqerr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Classifier reduces any error reaching the boundary to a user-facing
// (message, status) pair. Unclassified failures are always logged;
// recognized domain and store errors are logged only outside production.
type Classifier struct {
	log        *zap.Logger
	production bool
}

func NewClassifier(log *zap.Logger, env string) *Classifier {
	return &Classifier{
		log:        log,
		production: strings.EqualFold(env, "prod") || strings.EqualFold(env, "production"),
	}
}

func (c *Classifier) Classify(err error) (string, int) {
	if err == nil {
		return "", http.StatusOK
	}

	var domainErr *Err
	if errors.As(err, &domainErr) {
		c.logRecognized(err)
		status := domainErr.StatusCode
		if status == 0 {
			status = http.StatusBadRequest
		}
		return domainErr.Message, status
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		c.logRecognized(err)
		switch pgErr.Code {
		case pgUniqueViolation:
			return "This already exists!", http.StatusConflict
		case pgForeignKeyViolation:
			return "This does not exist!", http.StatusNotFound
		}
		return lastLine(pgErr.Message), http.StatusBadRequest
	}

	if errors.Is(err, pgx.ErrNoRows) {
		c.logRecognized(err)
		return "This does not exist!", http.StatusNotFound
	}

	if c.log != nil {
		c.log.Error("unclassified error", zap.Error(err))
	}
	return "Something went wrong!", http.StatusInternalServerError
}

func (c *Classifier) logRecognized(err error) {
	if c.production || c.log == nil {
		return
	}
	c.log.Debug("request error", zap.Error(err))
}

func lastLine(message string) string {
	lines := strings.Split(strings.TrimSpace(message), "\n")
	return lines[len(lines)-1]
}
