package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUserRequestValidate(t *testing.T) {
	valid := CreateUserRequest{FullName: "Jane Smith", Email: "jane@example.com", Password: "secret1"}
	require.Empty(t, valid.Validate())

	details := CreateUserRequest{FullName: "J", Email: "not-an-email", Password: "short"}.Validate()
	require.Contains(t, details, "full_name")
	require.Contains(t, details, "email")
	require.Contains(t, details, "password")

	long := CreateUserRequest{
		FullName: "Jane Smith",
		Email:    strings.Repeat("a", 175) + "@example.com",
		Password: "secret1",
	}.Validate()
	require.Contains(t, long, "email")
}

func TestUpdateUserRequestValidatesPresentFieldsOnly(t *testing.T) {
	require.Empty(t, UpdateUserRequest{}.Validate())

	bad := "x"
	details := UpdateUserRequest{FullName: &bad}.Validate()
	require.Contains(t, details, "full_name")
	require.NotContains(t, details, "email")
}

func TestCreateTicketRequestValidate(t *testing.T) {
	valid := CreateTicketRequest{
		Subject:     "Printer is on fire",
		Description: "Smoke is coming out of the tray.",
	}
	require.Empty(t, valid.Validate())

	details := CreateTicketRequest{Subject: "Hi", Description: "too short"}.Validate()
	require.Contains(t, details, "subject")
	require.Contains(t, details, "description")

	tooLong := CreateTicketRequest{
		Subject:     strings.Repeat("s", 201),
		Description: "A sufficiently long description.",
	}.Validate()
	require.Contains(t, tooLong, "subject")
}

func TestUpdateTicketRequestValidate(t *testing.T) {
	require.Empty(t, UpdateTicketRequest{}.Validate())

	short := "tiny"
	details := UpdateTicketRequest{Subject: &short}.Validate()
	require.Contains(t, details, "subject")
}

func TestCommentRequestValidate(t *testing.T) {
	require.Empty(t, CreateCommentRequest{Body: "hello", TicketID: 1}.Validate())

	details := CreateCommentRequest{Body: "   "}.Validate()
	require.Contains(t, details, "body")
	require.Contains(t, details, "ticket_id")

	require.Contains(t, UpdateCommentRequest{Body: ""}.Validate(), "body")
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{FullName: "Jane Smith", Email: "jane@example.com", Password: "secret1"}
	require.Empty(t, valid.Validate())

	details := RegisterRequest{FullName: "", Email: "", Password: ""}.Validate()
	require.Len(t, details, 3)
}
