package httperr

import (
	"errors"
	"fmt"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ===============================
// Invalid State
// ===============================

// InvalidStateError carrega o estado atual e a transição tentada.
// Violação de regra de negócio: reportada ao chamador, nunca re-tentada.
type InvalidStateError struct {
	Entity    string
	Current   string
	Attempted string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("invalid_state: %s %s -> %s", e.Entity, e.Current, e.Attempted)
}

func ErrInvalidState(entity, current, attempted string) error {
	return InvalidStateError{
		Entity:    entity,
		Current:   current,
		Attempted: attempted,
	}
}

func IsInvalidState(err error) bool {
	var ise InvalidStateError
	return errors.As(err, &ise)
}

func AsInvalidState(err error) (InvalidStateError, bool) {
	var ise InvalidStateError
	ok := errors.As(err, &ise)
	return ise, ok
}
