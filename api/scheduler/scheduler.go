package scheduler

import (
	"context"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/manage"
	"github.com/parkkaro/park-karo-api/models"
)

// maxHistoryItems caps how many history entries a profile keeps; the oldest
// entries beyond the cap are pruned by the nightly job.
const maxHistoryItems = 100

// Scheduler handles periodic background jobs for profile retention
type Scheduler struct {
	cron    *cron.Cron
	Service *manage.Service
	PDB     databases.ProfileDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(svc *manage.Service, pdb databases.ProfileDatabase) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		Service: svc,
		PDB:     pdb,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Prune expired active-status entries and oversized histories daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.runRetention)
	if err != nil {
		zap.S().Errorw("failed to register retention job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Profile retention scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Profile retention scheduler stopped")
}

func (s *Scheduler) runRetention() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	userIDs, err := s.PDB.UserIDs(ctx)
	if err != nil {
		zap.S().Errorw("failed to list profile owners", "error", err)
		return
	}

	zap.S().Infow("Running profile retention job", "profiles", len(userIDs))

	prunedStatus := 0
	prunedHistory := 0
	for _, userID := range userIDs {
		prunedStatus += s.pruneExpiredStatus(ctx, userID)
		prunedHistory += s.pruneHistory(ctx, userID)
	}

	zap.S().Infow("Profile retention job complete",
		"expiredStatusRemoved", prunedStatus,
		"historyRemoved", prunedHistory,
	)
}

// pruneExpiredStatus removes active-status items whose expires_at has passed.
// Each removal goes through the service so versioned writes still apply.
func (s *Scheduler) pruneExpiredStatus(ctx context.Context, userID string) int {
	profile, err := s.Service.GetProfile(ctx, userID)
	if err != nil {
		zap.S().Errorw("failed to read profile for retention", "userId", userID, "error", err)
		return 0
	}

	now := time.Now().UTC()
	pruned := 0
	for id, item := range profile.ActiveStatus {
		raw, ok := item["expires_at"].(string)
		if !ok {
			continue
		}
		expires, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil || expires.After(now) {
			continue
		}
		if err := s.Service.DeleteItem(ctx, userID, models.SectionActiveStatus, id); err != nil {
			zap.S().Errorw("failed to prune expired status", "userId", userID, "activeId", id, "error", err)
			continue
		}
		pruned++
	}
	return pruned
}

// pruneHistory trims histories beyond maxHistoryItems, oldest entries first.
func (s *Scheduler) pruneHistory(ctx context.Context, userID string) int {
	profile, err := s.Service.GetProfile(ctx, userID)
	if err != nil {
		zap.S().Errorw("failed to read profile for retention", "userId", userID, "error", err)
		return 0
	}
	excess := len(profile.History) - maxHistoryItems
	if excess <= 0 {
		return 0
	}

	type entry struct {
		id        string
		createdAt string
	}
	entries := make([]entry, 0, len(profile.History))
	for id, item := range profile.History {
		createdAt, _ := item["created_at"].(string)
		entries = append(entries, entry{id: id, createdAt: createdAt})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].createdAt < entries[j].createdAt })

	pruned := 0
	for _, e := range entries[:excess] {
		if err := s.Service.DeleteItem(ctx, userID, models.SectionHistory, e.id); err != nil {
			zap.S().Errorw("failed to prune history entry", "userId", userID, "historyId", e.id, "error", err)
			continue
		}
		pruned++
	}
	return pruned
}
