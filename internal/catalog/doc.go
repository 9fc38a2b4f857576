// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog holds the model capability table: display names,
// providers, categories, streaming support, and per-model system
// preambles.
//
// Lookups never fail. An identifier outside the curated table degrades to
// an inferred entry: provider from the "provider/model" or
// "namespace:provider/model" shape or a known name prefix, category
// "Other", streaming on unless the model belongs to a known batch-only
// family.
//
// # Key Functions
//
//   - ListAll: Every curated model, de-duplicated, in category order
//   - ByCategory: Curated models grouped by category
//   - Resolve: Entry for any identifier, curated or inferred
//   - DisplayName: Human-readable name (uppercased id as fallback)
//   - SupportsStreaming: Incremental-delivery capability
//   - SystemPrompt: Identity preamble for the model, "" when none
//
// # Usage
//
//	entry := catalog.Resolve("openrouter:meta-llama/llama-4")
//	fmt.Printf("%s by %s\n", entry.DisplayName, entry.Provider)
//
//	if catalog.SupportsStreaming("o1") {
//	    // never reached: the o1 family is batch-only
//	}
package catalog
