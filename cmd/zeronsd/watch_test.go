package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/mock"
)

func TestHostsWatcher(t *testing.T) {
	log.SetOut(&mock.IOWriter{})
	dir := t.TempDir()
	path := filepath.Join(dir, "hosts")
	err := os.WriteFile(path, []byte(testHosts), 0600)
	if err != nil {
		t.Fatal(err)
	}

	hw, err := newHostsWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	defer close(done)
	go hw.run(done)

	// Changes to other files in the directory are ignored
	err = os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-hw.Changed():
		t.Error("Unrelated file triggered a change")
	case <-time.After(200 * time.Millisecond):
	}

	err = os.WriteFile(path, []byte(testHosts+"192.0.2.10 scanner\n"), 0600)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-hw.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("No change notification for the hosts file")
	}

	// Replace by rename, as editors do
	tmp := filepath.Join(dir, "hosts.tmp")
	err = os.WriteFile(tmp, []byte(testHosts), 0600)
	if err != nil {
		t.Fatal(err)
	}
	for len(hw.Changed()) > 0 { // Drain anything left from the write
		<-hw.Changed()
	}
	err = os.Rename(tmp, path)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-hw.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("No change notification for a rename")
	}
}

func TestHostsWatcherMissingDir(t *testing.T) {
	_, err := newHostsWatcher(filepath.Join(t.TempDir(), "nodir", "hosts"))
	if err == nil {
		t.Error("Expected an error watching a missing directory")
	}
}
