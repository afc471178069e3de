package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"friendgraph/internal/models"
	"friendgraph/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes the store reacts to.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgConnectionClass     = "08"
)

// constraintMessages overrides the client-facing message per constraint kind.
type constraintMessages map[models.ConstraintKind]string

// classifyError maps a raw store error onto the models error taxonomy.
// It never retries and never reinterprets beyond the four store codes.
func classifyError(err error, messages constraintMessages) *models.AppError {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if kind, ok := constraintKind(err); ok {
		msg := messages[kind]
		if msg == "" {
			msg = string(kind) + " constraint violated"
		}
		return models.NewConstraintViolationError(kind, msg, err)
	}

	if isUnavailable(err) {
		return models.NewStoreUnavailableError(err)
	}

	return models.NewUnknownError(err)
}

func constraintKind(err error) (models.ConstraintKind, bool) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ConstraintUnique, true
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.ConstraintForeignKey, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return models.ConstraintUnique, true
		case pgForeignKeyViolation:
			return models.ConstraintForeignKey, true
		}
		return "", false
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value"):
		return models.ConstraintUnique, true
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return models.ConstraintForeignKey, true
	}
	return "", false
}

func isUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgConnectionClass)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// storeError classifies err, counts it and logs it for the given repository operation.
func storeError(ctx context.Context, log *observability.RepoLogger, op string, err error, messages constraintMessages) error {
	appErr := classifyError(err, messages)
	observability.StoreErrors.WithLabelValues(op, appErr.Code).Inc()
	if appErr.Code != models.CodeConstraintViolation {
		log.LogError(ctx, err, op)
	}
	return appErr
}

// escapeLike escapes the LIKE metacharacters so q is matched literally.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
