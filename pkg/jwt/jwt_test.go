package jwt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	tok, err := Generate("secreto", "ana", "shop", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", "shop", tok)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Subject)
	assert.Equal(t, RoleOperator, claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := Generate("secreto", "ana", "shop", 5)
	require.NoError(t, err)
	expired, err := Generate("secreto", "ana", "shop", -1)
	require.NoError(t, err)

	cases := map[string]struct{ secret, issuer, token string }{
		"firma incorrecta": {"otro", "shop", tok},
		"issuer distinto":  {"secreto", "otra-app", tok},
		"expirado":         {"secreto", "shop", expired},
		"basura":           {"secreto", "", "no.es.jwt"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.secret, tc.issuer, tc.token)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := Generate("", "ana", "shop", 5)
	assert.Error(t, err)
}
