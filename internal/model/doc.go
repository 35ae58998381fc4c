// Package model provides the domain types shared by every strand package.
//
// This package contains type definitions and their serialization only. All
// other internal packages import model; model imports nothing internal.
//
// Key design constraints:
//   - A Record's ID is always the SHA-256 hex digest of its Value
//   - Records are immutable once stored (create, then optionally delete)
//   - All JSON tags use snake_case and match the public HTTP API
//   - FilterSet fields are pointers so "unset" differs from the zero value
package model
