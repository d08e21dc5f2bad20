package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingConfigFlagIsFatal(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "absent.ini")
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"--config", missing})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, errStartup)
	assert.Contains(t, out.String(), "** Welcome to PhotoApp **")
	assert.Contains(t, out.String(), "**ERROR: config file '"+missing+"' does not exist, exiting")
}

func TestConfigPromptedWhenFlagOmitted(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "typed.ini")
	cmd := newRootCmd(strings.NewReader(missing+"\n"), &out)
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	assert.ErrorIs(t, err, errStartup)
	assert.Contains(t, out.String(), "Press ENTER to use default (photoapp-config.ini),")
	assert.Contains(t, out.String(), "'"+missing+"' does not exist")
}

func TestBadConfigIsFatal(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.ini")
	require.NoError(t, os.WriteFile(p, []byte("[rds]\nendpoint=h\n"), 0o600))
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out)
	cmd.SetArgs([]string{"-c", p})

	assert.ErrorIs(t, cmd.ExecuteContext(context.Background()), errStartup)
	assert.Contains(t, out.String(), "bucket_name is required")
}
