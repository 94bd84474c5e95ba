//go:build tools

package tools

// This file tracks CLI tools used during development.
// It is not compiled into the binary.
//
// Pinned through the go.mod tool directive:
// - github.com/pressly/goose/v3/cmd/goose: authoring and applying migrations
//   under migrations/ by hand.
//
// Not pinned: moq is expected on PATH for the //go:generate lines next to
// each consumer interface that regenerate the *_mock_test.go files.
