// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package api is the HTTP surface of the portfolio backend, routed with chi.

Routes:

	POST   /api/upload-photo|model|video   multipart upload (JWT)
	GET    /api/photos|models|videos       stored file URLs
	GET    /api/{kind}/details             asset metadata with category names
	DELETE /api/{kind}/{id}                delete an asset (JWT)
	GET    /api/categories                 list categories
	POST   /api/categories                 create a category (JWT)
	GET    /api/stats                      per-kind asset counts
	POST   /api/login                      exchange credentials for a token
	GET    /api/events                     websocket feed of asset changes
	GET    /static/{folder}/{file}         stored files (also under /public)
	GET    /health/live, /health/ready     probes
	GET    /metrics                        Prometheus

Success bodies are bare JSON in the shapes the portfolio frontend reads.
Errors use the APIResponse envelope with a machine-readable code.

Model files are served through the splat codec so clients only ever see
whole 24-byte point records.
*/
package api
