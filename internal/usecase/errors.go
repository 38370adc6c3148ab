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


// TransitionError: movimento inválido no Kanban. Nunca é fatal — o painel
// mostra a notificação e recarrega o funil do estado remoto real.
// Codes: LEAD_NOT_FOUND, INVALID_STATUS, WIN_PRICE_REQUIRED.
type TransitionError struct {
	Code    string
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}


func IsTransitionError(err error) bool {
	_, ok := err.(*TransitionError)
	return ok
}
