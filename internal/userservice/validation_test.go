package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkstone-dev/inkstone/internal/common"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		email string
		valid bool
	}{
		{"valid email", "ann@example.com", true},
		{"valid email with plus", "ann+blog@example.com", true},
		{"missing at sign", "ann.example.com", false},
		{"missing domain", "ann@", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validateEmail(v, tc.email)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"eight characters", "password", true},
		{"seven characters", "passwor", false},
		{"empty", "", false},
		{"over 72 characters", string(make([]byte, 73)), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			assert.Equal(t, tc.valid, v.Valid())
		})
	}
}
