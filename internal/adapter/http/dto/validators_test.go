package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStruct(t *testing.T) {
	username := "  <b>bold</b>  "
	req := CreateUserRequest{
		WalletAddress: "  7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU  ",
		Username:      &username,
	}

	SanitizeStruct(&req)

	assert.Equal(t, "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", req.WalletAddress)
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", *req.Username)
}

func TestSanitizeStruct_NilPointerField(t *testing.T) {
	req := CreateUserRequest{WalletAddress: "wallet"}

	// Must not panic on nil *string fields
	SanitizeStruct(&req)
	assert.Nil(t, req.Username)
}

func TestSanitizeStruct_NonStruct(t *testing.T) {
	s := "plain"
	SanitizeStruct(&s)
	SanitizeStruct(nil)
	assert.Equal(t, "plain", s)
}

func TestSafeIDPattern(t *testing.T) {
	valid := []string{"7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", "wallet_1", "a.b-c"}
	for _, s := range valid {
		assert.True(t, safeStringRe.MatchString(s), s)
	}

	invalid := []string{"", "has space", "semi;colon", "<script>", "quote'"}
	for _, s := range invalid {
		assert.False(t, safeStringRe.MatchString(s), s)
	}
}
