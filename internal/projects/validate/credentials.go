package validate

import "github.com/go-playground/validator/v10"

// Credentials is the login input.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignupInput additionally carries the password confirmation.
type SignupInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=6"`
}

// ValidateCredentials checks login input, returning per-field messages.
func ValidateCredentials(c Credentials) *Error {
	return credentialIssues(check.Struct(c), nil)
}

// ValidateSignup checks signup input including the confirmation match.
func ValidateSignup(in SignupInput) *Error {
	var verr *Error
	if in.Password != in.ConfirmPassword && in.ConfirmPassword != "" {
		verr = &Error{}
		verr.add("confirmPassword", "Passwords don't match")
	}
	return credentialIssues(check.Struct(in), verr)
}

func credentialIssues(err error, verr *Error) *Error {
	if err == nil {
		return verr
	}
	if verr == nil {
		verr = &Error{}
	}
	ferrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.add("", err.Error())
		return verr
	}
	for _, fe := range ferrs {
		switch fieldName(fe) {
		case "email":
			verr.add("email", "Please enter a valid email address.")
		case "password":
			verr.add("password", "Password must be at least 6 characters.")
		case "confirmPassword":
			verr.add("confirmPassword", "Password must be at least 6 characters.")
		}
	}
	return verr
}
