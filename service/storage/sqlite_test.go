package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) Service {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	svc, err := NewService(dbPath)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestSaveStampAndQueries(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	id, err := svc.SaveStamp(ctx, SaveStampInput{
		ModuleName:     "canu",
		Label:          "snapshot",
		Version:        "v2.3",
		Major:          "2",
		Minor:          "3",
		Commits:        "7",
		Revision:       1234,
		Hash1:          "aaaa",
		Hash2:          "bbbb",
		DirtyState:     "sync'd with remote",
		SubmoduleCount: 1,
		HeaderPath:     "canu_version.H",
		HeaderChanged:  true,
		CLIVersion:     "dev",
	})
	if err != nil {
		t.Fatalf("SaveStamp failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive stamp id, got %d", id)
	}

	if _, err := svc.SaveStamp(ctx, SaveStampInput{
		ModuleName: "meryl-utility",
		Label:      "release",
		Version:    "v1.0",
		HeaderPath: "meryl_version.H",
	}); err != nil {
		t.Fatalf("SaveStamp failed: %v", err)
	}

	all, err := svc.GetRecentStamps("", 10)
	if err != nil {
		t.Fatalf("GetRecentStamps failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 stamps, got %d", len(all))
	}

	canuOnly, err := svc.GetRecentStamps("canu", 10)
	if err != nil {
		t.Fatalf("GetRecentStamps failed: %v", err)
	}
	if len(canuOnly) != 1 {
		t.Fatalf("expected 1 canu stamp, got %d", len(canuOnly))
	}
	got := canuOnly[0]
	if got.StampID != id || got.Version != "v2.3" || got.Revision != 1234 || !got.HeaderChanged {
		t.Fatalf("unexpected stamp record: %+v", got)
	}
	if got.StampedAt.IsZero() {
		t.Fatalf("expected stamped_at to be set")
	}

	one, err := svc.GetStamp(id)
	if err != nil {
		t.Fatalf("GetStamp failed: %v", err)
	}
	if one.ModuleName != "canu" || one.DirtyState != "sync'd with remote" {
		t.Fatalf("unexpected stamp: %+v", one)
	}
}

func TestGetStampNotFound(t *testing.T) {
	svc := newTestStorage(t)
	if _, err := svc.GetStamp(999); err == nil {
		t.Fatalf("expected error for missing stamp")
	}
}

func TestSaveStampRequiresModule(t *testing.T) {
	svc := newTestStorage(t)
	if _, err := svc.SaveStamp(context.Background(), SaveStampInput{}); err == nil {
		t.Fatalf("expected error for missing module name")
	}
}

func TestVacuumAndPurge(t *testing.T) {
	svc := newTestStorage(t)
	ctx := context.Background()

	if _, err := svc.SaveStamp(ctx, SaveStampInput{ModuleName: "canu", Label: "release", Version: "v1.0", HeaderPath: "h.H"}); err != nil {
		t.Fatalf("SaveStamp failed: %v", err)
	}

	count, err := svc.PurgeOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected nothing purged, got %d", count)
	}

	if _, err := svc.PurgeOlderThan(ctx, 0); err == nil {
		t.Fatalf("expected error for non-positive days")
	}

	if err := svc.Vacuum(ctx); err != nil {
		t.Fatalf("Vacuum failed: %v", err)
	}
}
