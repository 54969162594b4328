// Package persistence snapshots vectors to blob storage and restores them.
//
// A snapshot is a single self-describing frame: magic, format version, codec,
// element count, the (optionally compressed) little-endian float64 payload,
// and a trailing CRC32 checksum. Loads verify the checksum before any values
// reach a vector, so a corrupted snapshot never produces a partially-filled
// container.
package persistence
