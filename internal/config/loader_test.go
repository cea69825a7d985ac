package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("ESSAY_TEST_HOST", "db.internal")

	out := expandEnv("host: ${ESSAY_TEST_HOST:localhost}")
	assert.Equal(t, "host: db.internal", out)
}

func TestExpandEnv_DefaultApplied(t *testing.T) {
	out := expandEnv("port: ${ESSAY_TEST_UNSET_PORT:5432}")
	assert.Equal(t, "port: 5432", out)
}

func TestExpandEnv_NoDefaultKeepsPlaceholder(t *testing.T) {
	out := expandEnv("secret: ${ESSAY_TEST_UNSET_SECRET}")
	assert.Equal(t, "secret: ${ESSAY_TEST_UNSET_SECRET}", out)
}

func TestExpandEnv_EmptyDefault(t *testing.T) {
	out := expandEnv("password: ${ESSAY_TEST_UNSET_PASSWORD:}")
	assert.Equal(t, "password: ", out)
}

func TestExpandEnv_MultiplePlaceholders(t *testing.T) {
	t.Setenv("ESSAY_TEST_A", "one")

	out := expandEnv("${ESSAY_TEST_A:x}-${ESSAY_TEST_B:two}")
	assert.Equal(t, "one-two", out)
}
