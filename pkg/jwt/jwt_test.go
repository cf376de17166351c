package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/brewery-api/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "brewer", "brewery-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "brewer", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "brewer", "brewery-api", 5)
	require.NoError(t, err)

	_, _, err = jwt.Parse("other", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := jwt.Generate("secret", "user-1", "brewer", "brewery-api", -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse("secret", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "brewer", "brewery-api", 5)
	assert.Error(t, err)
	_, _, err = jwt.Parse("", "x")
	assert.Error(t, err)
}
