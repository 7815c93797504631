package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is one class of expired records the scheduler removes.
type Category string

const (
	CategorySessions    Category = "sessions"
	CategoryInvitations Category = "invitation_tokens"
	CategoryOTPs        Category = "otps"
)

type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run is the log row written for one category of one cleanup pass.
type Run struct {
	ID              uuid.UUID
	RunID           uuid.UUID
	Category        Category
	Trigger         Trigger
	RecordsAffected int64
	Duration        time.Duration
	Status          RunStatus
	Error           string
	StartedAt       time.Time
}

// Report summarises a whole pass across categories.
type Report struct {
	RunID     uuid.UUID
	Trigger   Trigger
	StartedAt time.Time
	Duration  time.Duration
	Runs      []Run
}

// Failed reports whether any category failed.
func (r *Report) Failed() bool {
	for _, run := range r.Runs {
		if run.Status == RunFailed {
			return true
		}
	}
	return false
}

// Total is the number of records removed across categories.
func (r *Report) Total() int64 {
	var n int64
	for _, run := range r.Runs {
		n += run.RecordsAffected
	}
	return n
}

// Stats are the scheduler's in-process counters since start.
type Stats struct {
	Runs       int64
	Failures   int64
	LastRunAt  time.Time
	LastReport *Report
	Running    bool
}
