package main

import (
	"errors"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/material-price-dispatch/internal/domain"
)

func TestExitError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.NewConfigurationError("AWS_S3_BUCKET", ""), exitConfiguration},
		{&domain.AuthError{StatusCode: 401, Body: "invalid_client"}, exitAuth},
		{&domain.StorageError{Bucket: "b", Key: "k", Err: errors.New("NoSuchKey")}, exitStorage},
		{errors.New("boom"), 1},
	}
	for _, tc := range cases {
		var coder cli.ExitCoder
		require.True(t, errors.As(exitError(tc.err), &coder))
		assert.Equal(t, tc.code, coder.ExitCode(), tc.err.Error())
	}
}

func TestFlagOverrides(t *testing.T) {
	for _, env := range flagEnv {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	app := newApp()
	set := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	for _, f := range app.Flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse([]string{"--bucket", "prices", "--user-ids", "1,2"}))

	overrides := flagOverrides(cli.NewContext(app, set, nil))
	assert.Equal(t, "prices", overrides["AWS_S3_BUCKET"])
	assert.Equal(t, "1,2", overrides["ZOHO_CLIQ_USER_IDS"])
	assert.NotContains(t, overrides, "AWS_S3_FILE_KEY")
}

func TestFlagEnvCoversStringFlags(t *testing.T) {
	for _, f := range newApp().Flags {
		if sf, ok := f.(*cli.StringFlag); ok {
			assert.Contains(t, flagEnv, sf.Name)
		}
	}
}
