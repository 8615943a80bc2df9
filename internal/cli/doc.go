// Package cli provides the interactive iTrade operator console.
//
// It wires configuration, the local credential store, the backend API client
// and an interactive REPL of operator views. Typical flow: verify the stored
// session (or prompt for credentials), then open views for client balances,
// deposit moderation, referral payouts, employee administration, bot control,
// Telegram broadcasts and business metrics.
//
// Every protected view re-verifies the session on entry; accounts awaiting
// manager activation land in a polling wait screen. The REPL is started via
// App.Root(ctx), which blocks until the operator exits.
package cli
