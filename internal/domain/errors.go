package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cualquier error que no sea uno de estos se trata como falla del almacenamiento.
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrNegativeStock = errors.New("la cantidad no puede ser negativa")
)
