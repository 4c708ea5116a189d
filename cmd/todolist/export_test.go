package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pearcec/todolist/internal/config"
	"github.com/pearcec/todolist/internal/directory"
)

func TestRunExportWritesCalendar(t *testing.T) {
	svc := &fakeService{records: []directory.Record{
		testRecord(1, "Standup", time.Now().Add(time.Hour), 2),
		testRecord(2, "Review", time.Now().Add(48*time.Hour), 0),
	}}
	srv := newFakeServer(t, svc)

	old := cfg
	t.Cleanup(func() { cfg = old })
	cfg = config.Default()
	cfg.API.URL = srv
	cfg.Username = "bob"
	cfg.Password = "secret"

	exportOutput = filepath.Join(t.TempDir(), "events.ics")
	t.Cleanup(func() { exportOutput = "" })

	var stderr bytes.Buffer
	exportCmd.SetErr(&stderr)
	exportCmd.SetContext(context.Background())
	require.NoError(t, runExport(exportCmd, nil))

	content, err := os.ReadFile(exportOutput)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(content), "BEGIN:VEVENT"))
	assert.Contains(t, string(content), "SUMMARY:Standup")
	assert.Contains(t, stderr.String(), "Exported 2 event(s)")
	assert.Equal(t, 1, svc.logouts)
}

func TestRunExportNothingToExport(t *testing.T) {
	svc := &fakeService{}
	srv := newFakeServer(t, svc)

	old := cfg
	t.Cleanup(func() { cfg = old })
	cfg = config.Default()
	cfg.API.URL = srv
	cfg.Username = "bob"
	cfg.Password = "secret"

	var stdout, stderr bytes.Buffer
	exportCmd.SetOut(&stdout)
	exportCmd.SetErr(&stderr)
	exportCmd.SetContext(context.Background())
	require.NoError(t, runExport(exportCmd, nil))

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "No events to export.")
}

func TestWriteExportFileRemovesFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ics")
	boom := errors.New("boom")

	err := writeExportFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "BEGIN:VCALENDAR\r\n")
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial export left at %s", path)
}

func TestWriteExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ics")

	require.NoError(t, writeExportFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\n")
		return err
	}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR\r\n", string(content))
}
