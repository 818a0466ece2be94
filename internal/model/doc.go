// Package model defines the domain types shared by every layer of mamba:
// video records, platforms, profile slots, statuses and the reference data
// (profile display names and passwords) that travel with a snapshot.
//
// # Slots and labels
//
// Videos are grouped into three fixed slots ("Profile 1", "Profile 2",
// "Profile 3"). A slot key never changes; ProfileConfig only supplies a
// human-readable label for it per user and platform.
//
// # Identifiers
//
// Video ids are opaque strings. The backing spreadsheet sometimes returns
// them as JSON numbers, so ID decodes from either form and ids are always
// compared as strings.
package model
