package bot

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppiankov/tjporte/internal/roles"
)

type roleSink struct {
	mu    sync.Mutex
	table *roles.Table
}

func (s *roleSink) SetRoles(t roles.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = &t
}

func (s *roleSink) judge() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return ""
	}
	return s.table.Judge
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReloadAppliesRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "roles:\n  judge: Magistrado\n")

	sink := &roleSink{}
	r, err := NewReloader(sink, path, nil)
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	defer r.watcher.Close()

	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if sink.table == nil || sink.table.Judge != "Magistrado" {
		t.Fatalf("unexpected table %+v", sink.table)
	}
	if sink.table.Attorney != roles.DefaultTable().Attorney {
		t.Error("unset roles should keep defaults")
	}
}

func TestReloadInvalidKeepsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "roles:\n  judge: Juiz\n")

	sink := &roleSink{}
	r, err := NewReloader(sink, path, nil)
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	defer r.watcher.Close()

	writeConfig(t, path, "roles:\n  judge: Advogado\n")
	if err := r.Reload(); err == nil {
		t.Fatal("duplicate role names should fail")
	}
	if sink.table != nil {
		t.Error("failed reload must not touch the table")
	}
}

func TestReloaderMissingFile(t *testing.T) {
	if _, err := NewReloader(&roleSink{}, filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRelevantEventsNameTheConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "")

	r, err := NewReloader(&roleSink{}, path, nil)
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	defer r.watcher.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"replaced by rename", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"unclean name", fsnotify.Event{Name: dir + "/./config.yaml", Op: fsnotify.Write}, true},
		{"chmod", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"moved away", fsnotify.Event{Name: path, Op: fsnotify.Rename}, false},
		{"sibling file", fsnotify.Event{Name: filepath.Join(dir, "config.yaml.swp"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestRunReloadsAfterRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path, "roles:\n  judge: Juiz\n")

	sink := &roleSink{}
	r, err := NewReloader(sink, path, nil)
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Editors commonly save by writing a temp file and renaming it over
	// the original; do it twice to cover the watch outliving the first inode.
	for i, judge := range []string{"Magistrado", "Desembargador"} {
		tmp := filepath.Join(dir, "config.yaml.tmp")
		writeConfig(t, tmp, "roles:\n  judge: "+judge+"\n")
		if err := os.Rename(tmp, path); err != nil {
			t.Fatal(err)
		}

		deadline := time.Now().Add(5 * time.Second)
		for sink.judge() != judge {
			if time.Now().After(deadline) {
				t.Fatalf("save %d: judge = %q, want %q", i+1, sink.judge(), judge)
			}
			time.Sleep(20 * time.Millisecond)
		}
	}
}
