package cdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidEmail(t *testing.T) {
	for _, email := range []string{"a@b.co", "first.last@sub.example.com", "x+tag@example.io"} {
		assert.True(t, validEmail(email), email)
	}
	for _, email := range []string{"", "plain", "a@b", "a b@c.co", "@example.com"} {
		assert.False(t, validEmail(email), email)
	}
}

func Test_ValidPhone(t *testing.T) {
	for _, phone := range []string{"+61400000000", "+123456789"} {
		assert.True(t, validPhone(phone), phone)
	}
	for _, phone := range []string{"", "0400000000", "+1 234 567 890", "+12345678", "+i23456789"} {
		assert.False(t, validPhone(phone), phone)
	}
}
