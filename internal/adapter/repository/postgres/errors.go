package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/khata/internal/domain"
)

// PostgreSQL constraint violation codes.
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// translateError maps driver errors onto domain errors. notFound is returned
// for pgx.ErrNoRows and foreign key violations, duplicate for unique
// violations. Everything else becomes a storage error.
func translateError(op string, err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}

	switch pgErrorCode(err) {
	case pgErrUniqueViolation:
		if duplicate != nil {
			return duplicate
		}
	case pgErrForeignKeyViolation:
		if notFound != nil {
			return notFound
		}
	}

	return domain.StorageError(op, err)
}
