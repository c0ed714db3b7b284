package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, ValidateCredentials(Credentials{Email: "admin@example.com", Password: "secret1"}))
	})

	t.Run("bad email and short password", func(t *testing.T) {
		verr := ValidateCredentials(Credentials{Email: "nope", Password: "123"})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Issues, "email")
		assert.Contains(t, verr.Issues, "password")
	})
}

func TestValidateSignup(t *testing.T) {
	t.Run("passwords must match", func(t *testing.T) {
		verr := ValidateSignup(SignupInput{
			Email:           "admin@example.com",
			Password:        "secret1",
			ConfirmPassword: "secret2",
		})
		require.NotNil(t, verr)
		require.Contains(t, verr.Issues, "confirmPassword")
		assert.Equal(t, "Passwords don't match", verr.Issues["confirmPassword"][0])
	})

	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, ValidateSignup(SignupInput{
			Email:           "admin@example.com",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		}))
	})
}
