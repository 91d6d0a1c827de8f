// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Package supervisor runs the server's long-lived services under a suture
// supervision tree so a crashed service is restarted with backoff instead
// of taking the process down.
//
//	pinewood (root)
//	├── data-layer   cache janitor
//	└── api-layer    HTTP server
package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds restart policy settings.
type TreeConfig struct {
	// FailureThreshold is how many failures trigger backoff. Default 5.
	FailureThreshold float64

	// FailureDecay is the failure counter half-life in seconds. Default 30.
	FailureDecay float64

	// FailureBackoff is the pause once the threshold is hit. Default 15s.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds how long each service may take to stop. Default 10s.
	ShutdownTimeout time.Duration
}

// withDefaults fills zero fields.
func (c TreeConfig) withDefaults() TreeConfig {
	if c.FailureThreshold == 0 {
		c.FailureThreshold = 5
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = 30
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = 15 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}

// Tree is the root supervisor with one child per layer.
type Tree struct {
	root   *suture.Supervisor
	data   *suture.Supervisor
	api    *suture.Supervisor
	config TreeConfig
}

// NewTree builds the tree. Supervisor events (restarts, backoff, timeouts)
// are written to logger through sutureslog.
func NewTree(logger *slog.Logger, config TreeConfig) *Tree {
	config = config.withDefaults()

	spec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	rootSpec := spec
	rootSpec.EventHook = (&sutureslog.Handler{Logger: logger}).MustHook()

	t := &Tree{
		root:   suture.New("pinewood", rootSpec),
		data:   suture.New("data-layer", spec),
		api:    suture.New("api-layer", spec),
		config: config,
	}
	t.root.Add(t.data)
	t.root.Add(t.api)
	return t
}

// AddDataService supervises a background maintenance service.
func (t *Tree) AddDataService(svc suture.Service) suture.ServiceToken {
	return t.data.Add(svc)
}

// AddAPIService supervises a request-serving service.
func (t *Tree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives the
// result of Serve.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that missed the shutdown timeout.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
