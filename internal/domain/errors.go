package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrAlreadyInitialized = errors.New("el material ya tiene stock inicializado")
	ErrLotState           = errors.New("el lote no está en el estado requerido")
	ErrNegativeStock      = errors.New("la operación dejaría stock o valor negativo")
)
