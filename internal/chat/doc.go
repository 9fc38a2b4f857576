// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the session controller: the state machine that
// turns user intent (submit, regenerate, clear) into provider calls,
// streaming reconciliation, and persistence.
//
// The controller moves Idle -> Sending -> Streaming -> Finalizing -> Idle.
// Provider failures never escape Submit: they land in the transcript as an
// error-kind message and the controller returns to Idle. Only one request
// is ever in flight; submit and regenerate are silent no-ops while busy.
//
// # Key Types
//
//   - Controller: The per-conversation state machine
//   - Completer: Provider surface the controller depends on
//   - NotifyFunc: Snapshot callback fired after every visible change
//
// # Usage
//
//	ctrl := chat.New(client, mem, store, "gpt-4o",
//	    chat.WithNotify(onChange),
//	    chat.WithTuning(2000, 0.7),
//	)
//	ctrl.Submit(ctx, "Hello!")
package chat
