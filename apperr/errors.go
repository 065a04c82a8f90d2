package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind clasifica los errores de negocio del servicio.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindValidation
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// NotFound -> la entidad referenciada no existe
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflict -> la precondicion de negocio no se cumple (mesa ocupada, transicion ilegal, doble pago)
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Validation -> entrada malformada o inconsistente
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	return is(err, KindNotFound)
}

func IsConflict(err error) bool {
	return is(err, KindConflict)
}

func IsValidation(err error) bool {
	return is(err, KindValidation)
}

func is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// StatusCode traduce un error de negocio a su codigo HTTP.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNotFound:
			return http.StatusNotFound
		case KindConflict:
			return http.StatusConflict
		case KindValidation:
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}
