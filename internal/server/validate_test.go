package server

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStructReportsEveryViolation(t *testing.T) {
	t.Parallel()

	req := registerRequest{
		FirstName: "A",
		LastName:  "",
		Email:     "not-an-email",
		Phone:     "0800-call-me",
		Password:  "ab",
	}

	errs := validateStruct(req)
	require.Len(t, errs, 5)

	byField := make(map[string]string, len(errs))
	for _, fe := range errs {
		byField[fe.Field] = fe.Message
	}
	require.Equal(t, "FirstName must be at least 2 characters long.", byField["FirstName"])
	require.Equal(t, "LastName is required.", byField["LastName"])
	require.Equal(t, "Invalid email format.", byField["Email"])
	require.Equal(t, "Invalid phone number format.", byField["Phone"])
	require.Equal(t, "Password must be at least 6 characters long.", byField["Password"])
}

func TestValidateStructPassesValidInput(t *testing.T) {
	t.Parallel()

	req := registerRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "+15550000001",
		Password:  "secret1",
	}
	require.Nil(t, validateStruct(req))
}
