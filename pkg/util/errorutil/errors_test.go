package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestIsCode(t *testing.T) {
	err := NewAlreadyExists("email already registered", nil)
	require.True(t, IsCode(err, "ALREADY_EXISTS"))
	require.False(t, IsCode(err, "NOT_FOUND"))
	require.False(t, IsCode(errors.New("plain"), "NOT_FOUND"))
	require.False(t, IsCode(nil, "NOT_FOUND"))
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.Equal(t, "NOT_FOUND", mapped.Code)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("disk is full"))
	require.Equal(t, "INTERNAL_ERROR", mapped.Code)
	require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewForbidden("only the author can update this comment")
	mapped := ToDomainError(err)
	require.Equal(t, "FORBIDDEN", mapped.Code)
	require.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("ticket", nil)
	require.EqualError(t, err, "ticket not found")
}
