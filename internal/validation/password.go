package validation

import "regexp"

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	specialChars := regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	return specialChars.MatchString(s)
}

// Password enforces the account password policy.
func (v *Validator) Password(field, password string) {
	v.Check(len(password) >= MinPasswordLength, field, "must be at least 8 characters")
	v.Check(len(password) <= MaxPasswordLength, field, "must be at most 72 characters")
	v.Check(HasSpecialChar(password), field, "must contain a special character")
}
