// Package cli provides the interactive promptmart command-line client.
//
// It wires configuration, persisted client state, the marketplace API
// client, the AI preview gateway, and an interactive REPL. Typical flow:
// restore any persisted session, load the catalog on first use, and execute
// user commands against the locally cached view.
//
// Key features:
//   - Register / Login / Logout with persisted bearer token
//   - Browse the catalog with category, search, and sort filters
//   - Create, edit, and delete owned prompts
//   - AI previews, tag suggestions, and quality scoring
//   - Purchase premium prompts through hosted checkout
//   - Seller sales dashboard
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
