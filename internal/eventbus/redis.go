/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package eventbus mirrors in-process events across instances over Redis
// pub/sub, so a favorites mutation served by one instance still reaches
// views connected to another. Delivery is best effort; the in-memory bus
// remains the source of truth for same-node subscribers.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/praisefmmedia/praisefm_companion/internal/events"
)

const (
	channelPrefix = "praisefm:events:"
	relayedKey    = "_relayed_from"
)

// Config contains Redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// message is the wire format carried over Redis.
type message struct {
	NodeID  string         `json:"node_id"`
	Type    string         `json:"type"`
	Payload events.Payload `json:"payload"`
	SentAt  time.Time      `json:"sent_at"`
}

// Mirror relays selected event types between the local bus and Redis.
type Mirror struct {
	client *redis.Client
	local  *events.Bus
	logger zerolog.Logger
	nodeID string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	degraded bool
}

// NewMirror connects to Redis and starts relaying the given event types.
// A failed connection degrades to local-only delivery rather than failing
// startup.
func NewMirror(cfg Config, local *events.Bus, types []events.EventType, logger zerolog.Logger) (*Mirror, error) {
	ctx, cancel := context.WithCancel(context.Background())

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	m := &Mirror{
		client: client,
		local:  local,
		logger: logger,
		nodeID: uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, events stay node-local")
		m.degraded = true
		return m, nil
	}

	for _, et := range types {
		m.relayOutbound(et)
		m.relayInbound(et)
	}

	logger.Info().Str("addr", cfg.Addr).Msg("redis event mirror started")
	return m, nil
}

// relayOutbound forwards local publications of et to Redis.
func (m *Mirror) relayOutbound(et events.EventType) {
	sub := m.local.Subscribe(et)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.local.Unsubscribe(sub)
		for {
			select {
			case <-m.ctx.Done():
				return
			case ev := <-sub:
				// Payloads relayed in from Redis are tagged; sending them
				// back out would bounce events between nodes forever.
				if _, relayed := ev.Payload[relayedKey]; relayed {
					continue
				}
				if m.isDegraded() {
					continue
				}
				data, err := json.Marshal(message{
					NodeID:  m.nodeID,
					Type:    string(et),
					Payload: ev.Payload,
					SentAt:  time.Now(),
				})
				if err != nil {
					m.logger.Error().Err(err).Msg("marshal mirror message")
					continue
				}
				ctx, cancel := context.WithTimeout(m.ctx, 2*time.Second)
				err = m.client.Publish(ctx, channelPrefix+string(et), data).Err()
				cancel()
				if err != nil {
					m.logger.Warn().Err(err).Str("event_type", string(et)).Msg("redis publish failed")
					m.setDegraded(true)
				}
			}
		}
	}()
}

// relayInbound delivers remote publications of et into the local bus.
func (m *Mirror) relayInbound(et events.EventType) {
	pubsub := m.client.Subscribe(m.ctx, channelPrefix+string(et))
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ch := pubsub.Channel()
		for {
			select {
			case <-m.ctx.Done():
				_ = pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var decoded message
				if err := json.Unmarshal([]byte(msg.Payload), &decoded); err != nil {
					m.logger.Error().Err(err).Msg("unmarshal mirror message")
					continue
				}
				// Skip our own publications to prevent echo loops.
				if decoded.NodeID == m.nodeID {
					continue
				}
				if decoded.Payload == nil {
					decoded.Payload = events.Payload{}
				}
				decoded.Payload[relayedKey] = decoded.NodeID
				m.local.Publish(et, decoded.Payload)
			}
		}
	}()
}

func (m *Mirror) isDegraded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.degraded
}

func (m *Mirror) setDegraded(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degraded = v
}

// Close stops the relays and releases the Redis connection.
func (m *Mirror) Close() error {
	m.cancel()
	m.wg.Wait()
	if err := m.client.Close(); err != nil {
		return fmt.Errorf("close redis client: %w", err)
	}
	return nil
}
