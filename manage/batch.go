package manage

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/models"
)

// Coordinator fans batch work out across the worker pool, one task per user,
// and fans the per-task results back into a single structure. A failure on
// one user never fails the whole batch; only a pool rejection does.
type Coordinator struct {
	svc  *Service
	pool *Pool
}

// NewCoordinator returns a batch coordinator running svc calls on pool.
func NewCoordinator(svc *Service, pool *Pool) *Coordinator {
	return &Coordinator{svc: svc, pool: pool}
}

// BatchFuture is the handle for a pending batch. Cancel prevents per-user
// tasks that have not started; tasks already running finish normally and
// their results are still collected.
type BatchFuture struct {
	parent   *Future
	children []*Future
}

// Wait blocks until every per-user task has resolved and the assembled
// result is ready, or until ctx is done.
func (b *BatchFuture) Wait(ctx context.Context) (interface{}, error) {
	return b.parent.Wait(ctx)
}

// Cancel cancels all not-yet-started per-user tasks.
func (b *BatchFuture) Cancel() {
	for _, child := range b.children {
		child.Cancel()
	}
}

func cancelAll(futs []*Future) {
	for _, fut := range futs {
		fut.Cancel()
	}
}

// fanOut submits one task per key and spawns the fan-in goroutine that feeds
// each child result to collect (in key order) before completing the parent.
func (c *Coordinator) fanOut(ctx context.Context, keys []string, task func(key string) Task, collect func(key string, result interface{}, err error), finish func() interface{}) (*BatchFuture, error) {
	children := make([]*Future, 0, len(keys))
	for _, key := range keys {
		fut, err := c.pool.Submit(ctx, task(key))
		if err != nil {
			cancelAll(children)
			return nil, err
		}
		children = append(children, fut)
	}

	parent := newFuture()
	go func() {
		for i, child := range children {
			result, err := child.Wait(context.Background())
			collect(keys[i], result, err)
		}
		parent.complete(finish(), nil)
	}()
	return &BatchFuture{parent: parent, children: children}, nil
}

// GetMany reads the aggregates for userIDs concurrently. The resolved value
// is a map[string]*models.Profile; users without a document are logged and
// omitted rather than mapped to nil.
func (c *Coordinator) GetMany(ctx context.Context, userIDs []string) (*BatchFuture, error) {
	found := make(map[string]*models.Profile, len(userIDs))
	return c.fanOut(ctx, userIDs,
		func(userID string) Task {
			return func(ctx context.Context) (interface{}, error) {
				return c.svc.GetExistingProfile(ctx, userID)
			}
		},
		func(userID string, result interface{}, err error) {
			if err != nil {
				zap.S().Warnw("user omitted from batch read", "userId", userID, "error", err)
				return
			}
			found[userID] = result.(*models.Profile)
		},
		func() interface{} { return found },
	)
}

// BatchAdd applies an add for each of a user's items, per user concurrently
// but strictly sequentially within one user to avoid compounding the
// read-modify-write race on a single document. The resolved value is a
// map[string][]string of succeeded surrogate ids; failed items are logged
// and excluded, and every requested user has an entry.
func (c *Coordinator) BatchAdd(ctx context.Context, section string, userItems map[string][]models.Item) (*BatchFuture, error) {
	userIDs := make([]string, 0, len(userItems))
	for userID := range userItems {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	results := make(map[string][]string, len(userItems))
	return c.fanOut(ctx, userIDs,
		func(userID string) Task {
			items := userItems[userID]
			return func(ctx context.Context) (interface{}, error) {
				added := []string{}
				for _, item := range items {
					if err := c.svc.AddItem(ctx, userID, section, item); err != nil {
						zap.S().Errorw("failed to add item in batch",
							"userId", userID,
							"section", section,
							"error", err,
						)
						continue
					}
					id, _ := models.ItemID(section, item)
					added = append(added, id)
				}
				return added, nil
			}
		},
		func(userID string, result interface{}, err error) {
			if err != nil {
				zap.S().Errorw("batch add task did not run", "userId", userID, "error", err)
				results[userID] = []string{}
				return
			}
			results[userID] = result.([]string)
		},
		func() interface{} { return results },
	)
}

// BatchUpdate applies updates to items of one user's section, sequentially
// in surrogate-id order. The resolved value is the []string of succeeded
// ids.
func (c *Coordinator) BatchUpdate(ctx context.Context, section, userID string, updates map[string]models.Item) (*BatchFuture, error) {
	itemIDs := make([]string, 0, len(updates))
	for itemID := range updates {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Strings(itemIDs)

	var updated []string
	return c.fanOut(ctx, []string{userID},
		func(string) Task {
			return func(ctx context.Context) (interface{}, error) {
				succeeded := []string{}
				for _, itemID := range itemIDs {
					if err := c.svc.UpdateItem(ctx, userID, section, itemID, updates[itemID]); err != nil {
						zap.S().Errorw("failed to update item in batch",
							"userId", userID,
							"section", section,
							"itemId", itemID,
							"error", err,
						)
						continue
					}
					succeeded = append(succeeded, itemID)
				}
				return succeeded, nil
			}
		},
		func(_ string, result interface{}, err error) {
			if err != nil {
				zap.S().Errorw("batch update task did not run", "userId", userID, "error", err)
				updated = []string{}
				return
			}
			updated = result.([]string)
		},
		func() interface{} { return updated },
	)
}

// GenerateReport reads each user's aggregate, tolerating missing documents,
// and resolves to a *models.ProfileReport with per-user section counts and
// cross-user totals. A user without a document gets an error marker entry
// and still counts toward total_users.
func (c *Coordinator) GenerateReport(ctx context.Context, userIDs []string) (*BatchFuture, error) {
	report := &models.ProfileReport{
		TotalUsers: len(userIDs),
		Users:      make([]models.UserSectionSummary, 0, len(userIDs)),
	}
	return c.fanOut(ctx, userIDs,
		func(userID string) Task {
			return func(ctx context.Context) (interface{}, error) {
				return c.svc.GetExistingProfile(ctx, userID)
			}
		},
		func(userID string, result interface{}, err error) {
			if err != nil {
				marker := "Read failed"
				if errors.Is(err, ErrNotFound) {
					marker = "User not found"
				}
				report.FailedUsers++
				report.Users = append(report.Users, models.UserSectionSummary{
					UserID:  userID,
					Error:   marker,
					Message: err.Error(),
				})
				return
			}
			profile := result.(*models.Profile)
			summary := models.UserSectionSummary{
				UserID:        userID,
				Vehicles:      profile.SectionCount(models.SectionVehicles),
				FavoriteSpots: profile.SectionCount(models.SectionFavoriteSpots),
				History:       profile.SectionCount(models.SectionHistory),
				ActiveStatus:  profile.SectionCount(models.SectionActiveStatus),
			}
			report.SuccessfulUsers++
			report.TotalVehicles += summary.Vehicles
			report.TotalFavoriteSpots += summary.FavoriteSpots
			report.TotalHistory += summary.History
			report.TotalActiveStatus += summary.ActiveStatus
			report.Users = append(report.Users, summary)
		},
		func() interface{} {
			report.GeneratedAt = models.Timestamp(time.Now())
			return report
		},
	)
}
