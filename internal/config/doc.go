// Package config loads application settings from an optional config.yaml and
// ECOM_-prefixed environment variables, then validates them before any
// component is constructed.
package config
