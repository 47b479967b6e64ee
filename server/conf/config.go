package conf

import (
	"fmt"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Cfg holds the tunables the storage engine reads at startup. Unlike the
// historical mysqld.cnf, this only carries the knobs the engine core itself
// consults: tablespace placement, buffer pool sizing, and the WAL/undo
// directories. Client-facing settings (bind address, ports, session
// timeouts) belong to whatever process embeds this engine, not here.
type Cfg struct {
	Raw *ini.File

	// DataDir is the root directory holding all tablespace files.
	DataDir string

	// InnodbDataDir overrides DataDir for the system tablespace files
	// (ibdata*) when set; otherwise it mirrors DataDir.
	InnodbDataDir string
	// InnodbDataFilePath mirrors innodb_data_file_path, e.g.
	// "ibdata1:100M:autoextend".
	InnodbDataFilePath string

	InnodbBufferPoolSize uint64
	InnodbPageSize       uint32

	InnodbLogFileSize         uint64
	InnodbLogBufferSize       uint64
	InnodbFlushLogAtTrxCommit int

	InnodbFileFormat       string
	InnodbDefaultRowFormat string

	InnodbDoublewrite       bool
	InnodbAdaptiveHashIndex bool

	InnodbRedoLogDir string
	InnodbUndoLogDir string
}

// Default values, chosen to match the reference engine's own defaults.
const (
	DefaultPageSize             = 16384
	DefaultBufferPoolSize       = 128 * 1024 * 1024
	DefaultLogFileSize          = 48 * 1024 * 1024
	DefaultLogBufferSize        = 16 * 1024 * 1024
	DefaultFlushLogAtTrxCommit  = 1
	DefaultFileFormat           = "Barracuda"
	DefaultRowFormat            = "DYNAMIC"
)

// NewCfg returns a Cfg populated with engine defaults rooted at dataDir.
func NewCfg(dataDir string) *Cfg {
	return &Cfg{
		Raw:                       ini.Empty(),
		DataDir:                   dataDir,
		InnodbDataDir:             dataDir,
		InnodbDataFilePath:        "ibdata1:100M:autoextend",
		InnodbBufferPoolSize:      DefaultBufferPoolSize,
		InnodbPageSize:            DefaultPageSize,
		InnodbLogFileSize:         DefaultLogFileSize,
		InnodbLogBufferSize:       DefaultLogBufferSize,
		InnodbFlushLogAtTrxCommit: DefaultFlushLogAtTrxCommit,
		InnodbFileFormat:          DefaultFileFormat,
		InnodbDefaultRowFormat:    DefaultRowFormat,
		InnodbDoublewrite:         true,
		InnodbAdaptiveHashIndex:   true,
		InnodbRedoLogDir:          filepath.Join(dataDir, "redo"),
		InnodbUndoLogDir:          filepath.Join(dataDir, "undo"),
	}
}

// LoadFile reads an ini-formatted config file under the "innodb" section and
// overlays it on top of the engine defaults rooted at dataDir.
func LoadFile(path string, dataDir string) (*Cfg, error) {
	cfg := NewCfg(dataDir)

	raw, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("conf: load %s: %w", path, err)
	}
	cfg.Raw = raw

	sec := raw.Section("innodb")
	cfg.InnodbDataDir = sec.Key("data_home_dir").MustString(cfg.InnodbDataDir)
	cfg.InnodbDataFilePath = sec.Key("data_file_path").MustString(cfg.InnodbDataFilePath)
	cfg.InnodbBufferPoolSize = uint64(sec.Key("buffer_pool_size").MustInt64(int64(cfg.InnodbBufferPoolSize)))
	cfg.InnodbPageSize = uint32(sec.Key("page_size").MustInt(int(cfg.InnodbPageSize)))
	cfg.InnodbLogFileSize = uint64(sec.Key("log_file_size").MustInt64(int64(cfg.InnodbLogFileSize)))
	cfg.InnodbLogBufferSize = uint64(sec.Key("log_buffer_size").MustInt64(int64(cfg.InnodbLogBufferSize)))
	cfg.InnodbFlushLogAtTrxCommit = sec.Key("flush_log_at_trx_commit").MustInt(cfg.InnodbFlushLogAtTrxCommit)
	cfg.InnodbFileFormat = sec.Key("file_format").MustString(cfg.InnodbFileFormat)
	cfg.InnodbDefaultRowFormat = sec.Key("default_row_format").MustString(cfg.InnodbDefaultRowFormat)
	cfg.InnodbDoublewrite = sec.Key("doublewrite").MustBool(cfg.InnodbDoublewrite)
	cfg.InnodbAdaptiveHashIndex = sec.Key("adaptive_hash_index").MustBool(cfg.InnodbAdaptiveHashIndex)
	cfg.InnodbRedoLogDir = sec.Key("redo_log_dir").MustString(cfg.InnodbRedoLogDir)
	cfg.InnodbUndoLogDir = sec.Key("undo_log_dir").MustString(cfg.InnodbUndoLogDir)

	return cfg, nil
}

// GetString resolves a dotted key against the handful of settings the engine
// exposes this way; callers outside this package mostly use the typed fields
// directly, this exists for code that builds a key dynamically.
func (c *Cfg) GetString(key string) string {
	switch key {
	case "innodb.data_dir":
		return c.InnodbDataDir
	case "innodb.data_file_path":
		return c.InnodbDataFilePath
	case "innodb.file_format":
		return c.InnodbFileFormat
	case "innodb.default_row_format":
		return c.InnodbDefaultRowFormat
	case "innodb.redo_log_dir":
		return c.InnodbRedoLogDir
	case "innodb.undo_log_dir":
		return c.InnodbUndoLogDir
	default:
		return ""
	}
}

// GetInt is the integer counterpart of GetString.
func (c *Cfg) GetInt(key string) int {
	switch key {
	case "innodb.buffer_pool_size":
		return int(c.InnodbBufferPoolSize)
	case "innodb.page_size":
		return int(c.InnodbPageSize)
	case "innodb.log_file_size":
		return int(c.InnodbLogFileSize)
	case "innodb.log_buffer_size":
		return int(c.InnodbLogBufferSize)
	case "innodb.flush_log_at_trx_commit":
		return c.InnodbFlushLogAtTrxCommit
	default:
		return 0
	}
}
