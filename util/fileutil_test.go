package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileBySeekStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_simple_protocol.ibd")

	buff := []byte{'A', 'B'}
	WriteFileBySeekStart(path, 38, buff)
	result := ReadFileBySeekStartWithSize(path, 38, 2)
	assert.Equal(t, buff, result)
}

func TestWriteByte(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	const startData = "1234567890123456789012345678901234567890"

	require.NoError(t, os.WriteFile(path, []byte(startData), 0644))

	f, err := os.OpenFile(path, os.O_RDWR, 0644)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Seek(20, 0)
	require.NoError(t, err)

	_, err = f.WriteAt([]byte("A"), 15)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('A'), data[15])
}
