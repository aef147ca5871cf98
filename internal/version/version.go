/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version carries build identification.
package version

// Version is set at build time via ldflags:
//
//	-X github.com/praisefmmedia/praisefm_companion/internal/version.Version=X.Y.Z
var Version = "0.3.0"
