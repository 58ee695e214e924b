// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package websocket pushes live asset events to browser clients.

The Hub owns the set of connected clients and fans every broadcast out to
them. Each Client runs a read pump (ping handling, read deadlines) and a
write pump (outgoing messages, keep-alive pings) in its own goroutines.

Messages are JSON objects:

	{"type": "asset.created", "data": {"kind": "model", "id": "...", ...}}

Clients may send {"type": "ping"} and receive {"type": "pong"}.

Lifecycle:

The hub is a suture service; Serve blocks until its context is cancelled and
then closes every client:

	hub := websocket.NewHub()
	supervisor.Add(hub)

Ordering:

Broadcasts reach clients in connection order (ascending client ID), so tests
and logs see a stable sequence.
*/
package websocket
