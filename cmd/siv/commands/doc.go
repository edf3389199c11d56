// Package commands wires up the siv CLI: deterministic file encryption and
// decryption with AES-SIV (RFC 5297).
package commands
