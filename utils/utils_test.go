package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"jane@acme.example", "a.b+c@sub.domain.co", " padded@acme.example "}
	for _, v := range valid {
		assert.True(t, ValidateEmail(v), v)
	}

	invalid := []string{"", "plain", "missing@tld", "two@@at.example", "spa ce@acme.example"}
	for _, v := range invalid {
		assert.False(t, ValidateEmail(v), v)
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"+66812345678", "0812345678", "1234567"}
	for _, v := range valid {
		assert.True(t, ValidatePhoneNumber(v), v)
	}

	invalid := []string{"", "123456", "phone", "+66 81 234 5678", "12345678901234567"}
	for _, v := range invalid {
		assert.False(t, ValidatePhoneNumber(v), v)
	}
}
