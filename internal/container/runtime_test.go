// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records piped calls and answers from configured tables.
type mockExecutor struct {
	availableBins map[string]bool
	runnableCmds  map[string]bool
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout io.Writer) error
	lastArgs      []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(_ context.Context, name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	m.lastArgs = args
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout)
	}
	return nil
}

func TestDetectWith(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker on PATH but daemon down",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := DetectWith(context.Background(), tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no container runtime available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	ctx := context.Background()
	exec := &mockExecutor{runnableCmds: map[string]bool{
		"docker image inspect poppler:latest": true,
		"podman image exists poppler:latest":  true,
	}}

	assert.NoError(t, newDockerRuntime(exec).ImageExists(ctx, "poppler:latest"))
	assert.NoError(t, newPodmanRuntime(exec).ImageExists(ctx, "poppler:latest"))

	err := newDockerRuntime(exec).ImageExists(ctx, "missing:latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing:latest")
}

func TestRun_PipesStdio(t *testing.T) {
	exec := &mockExecutor{
		runPipedFunc: func(name string, args []string, stdin io.Reader, stdout io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("text of " + string(data)))
			return nil
		},
	}
	rt := newDockerRuntime(exec)

	var out bytes.Buffer
	err := rt.Run(context.Background(), "poppler:latest", []string{"pdftotext", "-", "-"}, strings.NewReader("pdf"), &out)
	require.NoError(t, err)

	assert.Equal(t, "text of pdf", out.String())
	assert.Equal(t, []string{"run", "--rm", "-i", "--network=none", "poppler:latest", "pdftotext", "-", "-"}, exec.lastArgs)
}

func TestRun_WrapsFailure(t *testing.T) {
	exec := &mockExecutor{
		runPipedFunc: func(string, []string, io.Reader, io.Writer) error {
			return errors.New("exit status 1")
		},
	}
	err := newPodmanRuntime(exec).Run(context.Background(), "img", nil, strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "podman")
}
