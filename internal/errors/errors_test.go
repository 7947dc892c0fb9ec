package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := fmt.Errorf("login: %w", Wrap(TransportFailure, "request failed", cause))

	assert.Equal(t, TransportFailure, KindOf(err))
	assert.Equal(t, Kind(""), KindOf(cause))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.ErrorIs(t, err, cause)
}

func TestIsMatchesKind(t *testing.T) {
	sentinel := New(NotAuthenticated, "")
	err := New(NotAuthenticated, "sessão inválida")

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, New(RejectedCredentials, "x"), sentinel)
	assert.NotErrorIs(t, New(NotAuthenticated, "other"), New(NotAuthenticated, "sessão inválida"))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Usuário ou senha inválidos", MessageOf(New(RejectedCredentials, "Usuário ou senha inválidos")))
	assert.Equal(t, "boom", MessageOf(stderrors.New("boom")))
	assert.Equal(t, "", MessageOf(nil))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "validation: campo vazio", New(Validation, "campo vazio").Error())
	assert.Equal(t, "transport_failure: get: eof", Wrap(TransportFailure, "get", stderrors.New("eof")).Error())
}
