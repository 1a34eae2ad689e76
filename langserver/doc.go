// Package langserver drives an external language server over stdio to
// answer completion requests.
//
// Architecture:
//   - client.go: JSON-RPC session with one server process (initialize,
//     didChangeConfiguration, didOpen, completion, shutdown)
//   - service.go: completion.Service that runs one short session per request
//
// Any server that accepts compile commands through
// workspace/didChangeConfiguration works: sourcekit-lsp and clangd both do.
package langserver
