// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders deployment reports and plans as text tables, JSON
// or YAML.
package output
