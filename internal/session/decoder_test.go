// Copyright (c) 2026 SUBG QUIZ. All rights reserved.
// Author: platform@subgquiz.com

package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subgquiz/subg-api/internal/session"
)

// mintToken signs a token over arbitrary claims. The signing secret is
// irrelevant to the decoder, which never verifies signatures.
func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeToken_ValidToken(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	token := mintToken(t, jwt.MapClaims{
		"userId":          "user-42",
		"role":            "student",
		"adminPrivileges": false,
		"exp":             expiry.Unix(),
	})

	claims, err := session.DecodeToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "student", claims.Role)
	assert.False(t, claims.AdminPrivileges)
	assert.True(t, claims.ExpiresAt.Equal(expiry))
}

func TestDecodeToken_IgnoresSignature(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"userId": "user-1",
		"role":   "admin",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	// Corrupt the signature segment; the payload must still decode.
	tampered := token[:len(token)-4] + "AAAA"

	claims, err := session.DecodeToken(tampered)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestDecodeToken_Malformed(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "two segments", token: "aaaa.bbbb"},
		{name: "invalid base64 payload", token: "eyJhbGciOiJIUzI1NiJ9.%%%%.sig"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			claims, err := session.DecodeToken(testCase.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, session.ErrMalformedToken)
		})
	}
}

/*
TestDecodeToken_AdminPrivilegesExactBool pins the exact-boolean contract:
only a JSON true grants the flag, never a truthy string or number.
*/
func TestDecodeToken_AdminPrivilegesExactBool(t *testing.T) {
	testCases := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "boolean true", value: true, want: true},
		{name: "boolean false", value: false, want: false},
		{name: "string true", value: "true", want: false},
		{name: "number one", value: 1, want: false},
		{name: "null", value: nil, want: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			token := mintToken(t, jwt.MapClaims{
				"userId":          "user-1",
				"role":            "admin",
				"adminPrivileges": testCase.value,
				"exp":             time.Now().Add(time.Hour).Unix(),
			})

			claims, err := session.DecodeToken(token)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, claims.AdminPrivileges)
		})
	}
}

func TestDecodeToken_MissingExpiry(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"userId": "user-1",
		"role":   "student",
	})

	claims, err := session.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestDecodeToken_MissingOptionalClaims(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := session.DecodeToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)
	assert.Empty(t, claims.Role)
	assert.False(t, claims.AdminPrivileges)
}
