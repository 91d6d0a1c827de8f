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
	// DefaultMongoImage is the MongoDB image used by NewMongoContainer.
	DefaultMongoImage = "mongo:7"

	// DefaultMongoPort is MongoDB's listening port inside the container.
	DefaultMongoPort = "27017"
)

// MongoContainer is a running single-node MongoDB without authentication.
type MongoContainer struct {
	testcontainers.Container
	URI string
}

// NewMongoContainer starts MongoDB and waits until it accepts connections.
func NewMongoContainer(ctx context.Context, opts ...Option) (*MongoContainer, error) {
	cfg := &containerConfig{image: DefaultMongoImage, startTimeout: 90 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}

	container, endpoint, err := startService(ctx, cfg, DefaultMongoPort,
		wait.ForLog("Waiting for connections"))
	if err != nil {
		return nil, err
	}
	return &MongoContainer{Container: container, URI: "mongodb://" + endpoint}, nil
}
