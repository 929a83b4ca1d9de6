// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearAWSEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAccessKeyID, EnvSecretAccessKey, EnvRegion, EnvBucket, EnvAccountID} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv(t *testing.T) {
	clearAWSEnv(t)
	t.Setenv(EnvAccessKeyID, "AKIDEXAMPLE")
	t.Setenv(EnvSecretAccessKey, "secret")
	t.Setenv(EnvRegion, " us-east-1 ")
	t.Setenv(EnvBucket, "my-site")
	t.Setenv(EnvAccountID, "123456789012")

	s := FromEnv()
	assert.Equal(t, Settings{
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Bucket:          "my-site",
		AccountID:       "123456789012",
	}, s)
	assert.True(t, s.HasStaticCredentials())
}

func TestSettings_HasStaticCredentials(t *testing.T) {
	assert.False(t, Settings{AccessKeyID: "AKID"}.HasStaticCredentials())
	assert.False(t, Settings{SecretAccessKey: "secret"}.HasStaticCredentials())
	assert.False(t, Settings{}.HasStaticCredentials())
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		missing  []string
	}{
		{
			name:     "complete",
			settings: Settings{Bucket: "b", Region: "r", AccountID: "a"},
		},
		{
			name:     "no bucket",
			settings: Settings{Region: "r", AccountID: "a"},
			missing:  []string{"bucket"},
		},
		{
			name:     "blank region",
			settings: Settings{Bucket: "b", Region: "   ", AccountID: "a"},
			missing:  []string{"region"},
		},
		{
			name:     "nothing",
			settings: Settings{},
			missing:  []string{"bucket", "region", "account id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if len(tt.missing) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrMissingSetting)
			for _, m := range tt.missing {
				assert.Contains(t, err.Error(), m)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearAWSEnv(t)
	t.Setenv(EnvRegion, "us-east-1")

	err := LoadDotEnv(filepath.Join("testdata", "app.env"))
	require.NoError(t, err)

	s := FromEnv()
	assert.Equal(t, "env-file-bucket", s.Bucket)
	assert.Equal(t, "123456789012", s.AccountID)
	// Already-set variables are not overridden.
	assert.Equal(t, "us-east-1", s.Region)

	// godotenv sets these outside of t.Setenv, so clean up by hand.
	require.NoError(t, os.Unsetenv(EnvBucket))
	require.NoError(t, os.Unsetenv(EnvAccountID))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join("testdata", "does-not-exist.env")))
}
