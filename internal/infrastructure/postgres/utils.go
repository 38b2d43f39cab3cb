package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidTextRep      = "22P02" // p. ej. un id que no es UUID
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translate mapea violaciones de constraint a errores de dominio; el resto se envuelve con op.
func translate(op string, err error) error {
	switch pgCode(err) {
	case codeUniqueViolation:
		return domain.ErrDuplicate
	case codeForeignKeyViolation, codeInvalidTextRep:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case codeCheckViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// validID indica si id puede existir en una columna UUID. Un id mal formado se trata
// como inexistente, igual que en el almacenamiento en memoria.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
