package budgeting

import "errors"

// Erros específicos para o contexto de orçamentos
var (
	ErrBrandIDRequired  = errors.New("brand ID is required")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrInvalidResetType = errors.New("invalid reset type")
)
