// Splatfolio - Portfolio Asset Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package auth provides admin authentication for the mutating API routes.

Key Components:

  - JWTManager: HS256 token issue and validation
  - Authenticator: username and password verification against the store's
    admin collection or an admin configured through the environment
  - Middleware: bearer token enforcement for chi routes
  - HashPassword / CheckPassword: bcrypt helpers

Flow:

 1. POST /api/login with {username, password}
 2. Authenticator.Authenticate verifies the credentials
 3. JWTManager.GenerateToken issues a token valid for security.token_ttl
 4. Clients send "Authorization: Bearer <token>" on uploads, deletes and
    category creation; Middleware.Require validates it and stores the
    Claims in the request context

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(jwtManager, nil)

	r.With(mw.Require).Post("/api/upload-model", h.UploadModel)

Security:

  - Tokens are signed with HMAC-SHA256; any other alg is rejected
  - Passwords are stored as bcrypt hashes (cost 12)
  - Lookups for unknown users still perform a bcrypt comparison so response
    time does not reveal which usernames exist
*/
package auth
