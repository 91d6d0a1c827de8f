// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if !IsDockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}
}

// IsDockerAvailable checks if the Docker daemon is running and accessible.
func IsDockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "docker", "info")
	return cmd.Run() == nil
}

// CleanupContainer terminates container and logs failures instead of
// failing the test.
func CleanupContainer(t *testing.T, ctx context.Context, container testcontainers.Container) {
	t.Helper()

	if container != nil {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// Option configures a container.
type Option func(*containerConfig)

type containerConfig struct {
	image        string
	startTimeout time.Duration
}

// WithImage overrides the default image.
func WithImage(image string) Option {
	return func(c *containerConfig) {
		c.image = image
	}
}

// WithStartTimeout bounds how long to wait for the service to accept
// connections.
func WithStartTimeout(timeout time.Duration) Option {
	return func(c *containerConfig) {
		c.startTimeout = timeout
	}
}

// startService runs image with one exposed port and returns the
// container and its host:port address. ready must only pass once the
// service accepts connections.
func startService(ctx context.Context, cfg *containerConfig, port string, ready wait.Strategy) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{port + "/tcp"},
		WaitingFor:   wait.ForAll(ready).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create %s container: %w", cfg.image, err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, "", fmt.Errorf("get mapped port: %w", err)
	}
	return container, endpoint, nil
}
