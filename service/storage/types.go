package storage

import (
	"context"
	"time"
)

// Service defines persistence and query operations for stamp history.
type Service interface {
	SaveStamp(ctx context.Context, input SaveStampInput) (int64, error)
	GetRecentStamps(moduleName string, limit int) ([]StampRecord, error)
	GetStamp(stampID int64) (*StampRecord, error)
	Vacuum(ctx context.Context) error
	PurgeOlderThan(ctx context.Context, days int) (int64, error)
	Close() error
}

// SaveStampInput is the payload saved for one stamp run.
type SaveStampInput struct {
	ModuleName     string
	Label          string
	Version        string
	Major          string
	Minor          string
	Commits        string
	Revision       int
	Hash1          string
	Hash2          string
	DirtyState     string
	SubmoduleCount int
	HeaderPath     string
	HeaderChanged  bool
	CLIVersion     string
}

// StampRecord is a stored stamp run.
type StampRecord struct {
	StampID        int64
	ModuleName     string
	Label          string
	Version        string
	Major          string
	Minor          string
	Commits        string
	Revision       int
	Hash1          string
	Hash2          string
	DirtyState     string
	SubmoduleCount int
	HeaderPath     string
	HeaderChanged  bool
	CLIVersion     string
	StampedAt      time.Time
}
