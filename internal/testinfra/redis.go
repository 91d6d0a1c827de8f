// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

//go:build integration

package testinfra

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultRedisImage is the Redis image used by NewRedisContainer.
	DefaultRedisImage = "redis:7-alpine"

	// DefaultRedisPort is Redis' listening port inside the container.
	DefaultRedisPort = "6379"
)

// RedisContainer is a running Redis server without a password.
type RedisContainer struct {
	testcontainers.Container
	Addr string
}

// NewRedisContainer starts Redis and waits until it accepts connections.
func NewRedisContainer(ctx context.Context, opts ...Option) (*RedisContainer, error) {
	cfg := &containerConfig{image: DefaultRedisImage, startTimeout: 60 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	container, endpoint, err := startService(ctx, cfg, DefaultRedisPort,
		wait.ForLog("Ready to accept connections"))
	if err != nil {
		return nil, err
	}
	return &RedisContainer{Container: container, Addr: endpoint}, nil
}
