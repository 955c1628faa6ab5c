package progress

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBar(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, "x")
	b.Width = 4
	for i := 1; i <= 4; i++ {
		b.Report(i, 4)
	}
	want := "\rx |█---| 25.00%" +
		"\rx |██--| 50.00%" +
		"\rx |███-| 75.00%" +
		"\rx |████| 100.00%\n"
	assert.Equal(t, want, buf.String())
}

func TestBarSkipsIdenticalRedraws(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, "")
	b.Width = 2
	for i := 1; i <= 100; i++ {
		b.Report(i, 100)
	}
	assert.Equal(t, 4, strings.Count(buf.String(), "\r"))
	assert.True(t, strings.HasSuffix(buf.String(), "100.00%\n"))
}

func TestBarIgnoresEmptyTotal(t *testing.T) {
	var buf bytes.Buffer
	NewBar(&buf, "").Report(0, 0)
	assert.Empty(t, buf.String())
}

func TestBarFinishesOnce(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf, "")
	b.Report(3, 3)
	b.Report(3, 3)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	l := NewLog(logger)
	l.Step = 50
	for i := 1; i <= 10; i++ {
		l.Report(i, 10)
	}
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "progress 50%", entries[0].Message)
	assert.Equal(t, "progress 100%", entries[1].Message)
	assert.Equal(t, logrus.InfoLevel, entries[1].Level)
	assert.Equal(t, 10, entries[1].Data["total"])
}

func TestNewWithoutTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "progress")
	require.NoError(t, err)
	defer f.Close()
	logger, _ := test.NewNullLogger()
	_, ok := New(f, logger).(*Log)
	assert.True(t, ok)
	Nop{}.Report(1, 1)
}
