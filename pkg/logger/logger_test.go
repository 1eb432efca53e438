package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetOutput_JSON(t *testing.T) {
	defer SetOutput(os.Stdout, "console")

	buf := &bytes.Buffer{}
	SetOutput(buf, "json")
	Log.Info().Str("user_id", "60019117005").Msg("uploaded file to user")

	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `"user_id":"60019117005"`)
	assert.Contains(t, buf.String(), `"message":"uploaded file to user"`)
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	SetLevel("WARN")
	assert.Equal(t, zerolog.WarnLevel, Log.GetLevel())

	SetLevel("not-a-level")
	assert.Equal(t, zerolog.InfoLevel, Log.GetLevel())
}

func TestSetOutput_KeepsLevel(t *testing.T) {
	defer SetLevel("info")
	defer SetOutput(os.Stdout, "console")

	SetLevel("error")
	buf := &bytes.Buffer{}
	SetOutput(buf, "json")
	Log.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}
