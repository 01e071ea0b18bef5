package usecase

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

// ErrNoLocalData é um estado, não uma falha: não há nada para migrar.
// Precisa ser distinguível de MIGRATION_FAILED pelo chamador.
var ErrNoLocalData = &DomainError{
	Code:    "NO_LOCAL_DATA",
	Message: "nenhum dado local encontrado para migrar",
}
