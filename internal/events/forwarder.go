// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import (
	"context"
	"fmt"

	"github.com/tomtom215/splatfolio/internal/logging"
)

// Broadcaster delivers a typed message to live clients.
type Broadcaster interface {
	BroadcastJSON(messageType string, data interface{})
}

// Forwarder relays bus events to a Broadcaster. It is a suture service.
type Forwarder struct {
	bus *Bus
	hub Broadcaster
}

// NewForwarder returns a Forwarder from bus to hub.
func NewForwarder(bus *Bus, hub Broadcaster) *Forwarder {
	return &Forwarder{bus: bus, hub: hub}
}

// Serve subscribes to the bus and forwards until ctx is cancelled.
// Broadcast never fails, so every message is acked; malformed payloads are
// logged and dropped.
func (f *Forwarder) Serve(ctx context.Context) error {
	messages, err := f.bus.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", Topic, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("subscription to %s closed", Topic)
			}

			event, err := DecodeEvent(msg)
			if err != nil {
				logging.Warn().Err(err).Msg("Dropping malformed asset event")
			} else {
				f.hub.BroadcastJSON(event.Type, event)
			}
			msg.Ack()
		}
	}
}

// String names the service in supervisor logs.
func (f *Forwarder) String() string {
	return "event-forwarder"
}
