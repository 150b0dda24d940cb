package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevel(t *testing.T) {
	require.NoError(t, Init("debug", "", false))
	assert.Equal(t, logrus.DebugLevel, Get().GetLevel())

	require.NoError(t, Init("not-a-level", "", false))
	assert.Equal(t, logrus.InfoLevel, Get().GetLevel())
}

func TestInitLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "texview.log")
	require.NoError(t, Init("info", path, false))

	WithField("handle", 7).Info("uploaded")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "uploaded")
	assert.Contains(t, string(data), "handle=7")
}
