// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package combines the ByteOrder and AppendByteOrder interfaces of the
// standard encoding/binary package into a single EndianEngine interface.
//
// The canonical value blob is always big-endian:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint16(buf, 2566) // 0x0A 0x06
//
// Store record headers use the little-endian engine.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendInt16 appends v in two's complement using the given engine.
func AppendInt16(engine EndianEngine, buf []byte, v int16) []byte {
	return engine.AppendUint16(buf, uint16(v)) //nolint:gosec
}

// AppendInt32 appends v in two's complement using the given engine.
func AppendInt32(engine EndianEngine, buf []byte, v int32) []byte {
	return engine.AppendUint32(buf, uint32(v)) //nolint:gosec
}

// AppendInt64 appends v in two's complement using the given engine.
func AppendInt64(engine EndianEngine, buf []byte, v int64) []byte {
	return engine.AppendUint64(buf, uint64(v)) //nolint:gosec
}
