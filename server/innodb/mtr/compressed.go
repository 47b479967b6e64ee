package mtr

import "github.com/go-innodb/storage-engine/server/innodb/storage/store/logs"

// writeCompressed, readCompressed and compressedSize are thin aliases
// over the logs package's compressed-integer codec (see
// logs.WriteCompressed): the encoding lives there so that both this
// package and the redo log manager's recovery path can decode the same
// bytes without mtr and manager importing each other.
func writeCompressed(buf []byte, n uint32) []byte { return logs.WriteCompressed(buf, n) }

func readCompressed(buf []byte) (uint32, int) { return logs.ReadCompressed(buf) }

func compressedSize(n uint32) int { return logs.CompressedSize(n) }
