package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withEnv(t *testing.T, values map[string]string) {
	t.Helper()
	prev := Env
	Env = values
	t.Cleanup(func() { Env = prev })
}

func TestGetEnv_PrefersLoadedFile(t *testing.T) {
	withEnv(t, map[string]string{"RF_TEST_KEY": "from-file"})
	t.Setenv("RF_TEST_KEY", "from-process")

	assert.Equal(t, "from-file", GetEnv("RF_TEST_KEY", "def"))
}

func TestGetEnv_FallsBackToProcess(t *testing.T) {
	withEnv(t, map[string]string{})
	t.Setenv("RF_TEST_KEY", "from-process")

	assert.Equal(t, "from-process", GetEnv("RF_TEST_KEY", "def"))
	assert.Equal(t, "def", GetEnv("RF_TEST_MISSING", "def"))
}

func TestGetEnvBool(t *testing.T) {
	withEnv(t, map[string]string{"ON": "true", "OFF": "0", "BAD": "yes please"})

	assert.True(t, GetEnvBool("ON", false))
	assert.False(t, GetEnvBool("OFF", true))
	assert.True(t, GetEnvBool("BAD", true))
	assert.False(t, GetEnvBool("MISSING", false))
}

func TestGetEnvInt(t *testing.T) {
	withEnv(t, map[string]string{"N": " 42 ", "BAD": "x"})

	assert.Equal(t, 42, GetEnvInt("N", 1))
	assert.Equal(t, 7, GetEnvInt("BAD", 7))
}

func TestGetEnvDuration(t *testing.T) {
	withEnv(t, map[string]string{"D": "2m", "NEG": "-5s", "BAD": "soon"})

	assert.Equal(t, 2*time.Minute, GetEnvDuration("D", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("NEG", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("BAD", time.Second))
	assert.Equal(t, 15*time.Second, GetEnvDuration("MISSING", 15*time.Second))
}
