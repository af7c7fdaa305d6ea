// Package domain contains the core entities and value objects for qrfountain.
//
// This package is the innermost layer. It has no dependencies on
// infrastructure concerns (file system, QR or PNG libraries, logging) and
// contains only the wire format and the invariants every stage relies on.
//
// # Entities
//
//   - [Constants]: validated rendering and framing settings
//   - [Symbol]: one erasure-coded unit tagged with its block and index
//   - [Packet]: a length header followed by a serialized symbol
//   - [ModuleMatrix]: the two-tone grid rendered from one packet
//   - [Frame]: one grayscale image of the animation plus its delay
//
// # Wire Format
//
// Every packet starts with a 4-byte big-endian header whose top bit is
// always set and whose low 31 bits carry the payload length. The header is
// followed by a 4-byte payload ID (24-bit source block number, 8-bit symbol
// index) and the symbol data.
package domain
