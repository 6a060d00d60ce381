// Package auth verifies bearer tokens issued by the external identity
// provider. Tokens are checked either against a shared HMAC secret or
// against the provider's published JWKS; this service never issues tokens.
package auth
