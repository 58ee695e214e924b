// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package supervisor runs the long-lived parts of the server under a suture
supervisor tree.

	splatfolio (root)
	├── messaging-layer   websocket hub, event forwarder
	└── api-layer         HTTP server

A service that returns an error is restarted with backoff; a crash in the
messaging layer leaves the API serving. Supervisor events are logged
through sutureslog, which writes to the zerolog-backed slog handler from
internal/logging.

Services implement suture.Service:

	Serve(ctx context.Context) error

and usually fmt.Stringer so restarts are logged with a readable name.
*/
package supervisor
