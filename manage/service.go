package manage

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/parkkaro/park-karo-api/databases"
	"github.com/parkkaro/park-karo-api/models"
)

// conflictRetries bounds how many times a read-modify-write cycle is rerun
// after losing the version race before giving up with ErrConflict.
const conflictRetries = 3

// Service owns the read-modify-write protocol for profile aggregates:
// validation, item location by surrogate id, timestamp stamping, and
// versioned re-persistence. It is used directly for single-user calls and as
// the unit of work inside the batch coordinator.
type Service struct {
	store databases.ProfileDatabase
	now   func() time.Time
}

// NewService returns a profile service over the given store.
func NewService(store databases.ProfileDatabase) *Service {
	return &Service{store: store, now: time.Now}
}

type mutation int

const (
	opAdd mutation = iota
	opUpdate
	opDelete
)

// AddItem upserts item into the named section of userID's profile, creating
// the profile when the user has no document yet. An existing item with the
// same surrogate id is replaced, never duplicated.
func (s *Service) AddItem(ctx context.Context, userID, section string, item models.Item) error {
	return s.mutate(ctx, userID, section, opAdd, "", item)
}

// UpdateItem replaces the item with surrogate id itemID in the named
// section. The id supplied in the item body must match itemID exactly.
func (s *Service) UpdateItem(ctx context.Context, userID, section, itemID string, item models.Item) error {
	return s.mutate(ctx, userID, section, opUpdate, itemID, item)
}

// DeleteItem removes the item with surrogate id itemID from the named
// section.
func (s *Service) DeleteItem(ctx context.Context, userID, section, itemID string) error {
	return s.mutate(ctx, userID, section, opDelete, itemID, nil)
}

func (s *Service) validate(section, idField string, op mutation, itemID string, item models.Item) error {
	if op == opDelete {
		if itemID == "" {
			return validationErr(idField, "item ID is required")
		}
		return nil
	}
	if len(item) == 0 {
		return validationErr(section, "item data cannot be empty")
	}
	id, err := models.ItemID(section, item)
	if err != nil {
		return validationErr("section", err.Error())
	}
	if id == "" {
		return validationErr(idField, "item ID is required")
	}
	if op == opUpdate && id != itemID {
		return validationErr(idField, "ID in path doesn't match request body")
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, userID, section string, op mutation, itemID string, item models.Item) error {
	idField, err := models.SectionIDField(section)
	if err != nil {
		return validationErr("section", err.Error())
	}
	if err := s.validate(section, idField, op, itemID, item); err != nil {
		return err
	}

	for attempt := 0; attempt < conflictRetries; attempt++ {
		doc, err := s.store.Get(ctx, userID)
		if err != nil {
			return storageErr(err)
		}

		var profile *models.Profile
		created := false
		if doc == nil {
			if op != opAdd {
				return notFoundErr("user data", userID)
			}
			profile = models.NewProfile(userID, s.now())
			created = true
		} else {
			profile = models.FromDocument(doc)
		}

		items, _ := profile.Section(section)
		ts := models.Timestamp(s.now())

		switch op {
		case opAdd:
			id, _ := models.ItemID(section, item)
			item["created_at"] = ts
			item["updated_at"] = ts
			items[id] = item
		case opUpdate:
			existing, ok := items[itemID]
			if !ok {
				return notFoundErr(section+" item", itemID)
			}
			if createdAt, ok := existing["created_at"]; ok {
				item["created_at"] = createdAt
			}
			item["updated_at"] = ts
			items[itemID] = item
		case opDelete:
			if _, ok := items[itemID]; !ok {
				return notFoundErr(section+" item", itemID)
			}
			delete(items, itemID)
		}

		profile.UpdatedAt = ts

		if created {
			profile.Version = 1
			err := s.store.Insert(ctx, profile.ToDocument())
			if err == nil {
				return nil
			}
			if errors.Is(err, databases.ErrStaleWrite) {
				// Another writer created the document between our read and
				// the insert. Re-read and merge through the versioned path.
				zap.S().Debugw("profile created concurrently, retrying",
					"userId", userID,
					"section", section,
					"attempt", attempt+1,
				)
				continue
			}
			return storageErr(err)
		}

		flat, _ := profile.SectionItems(section)
		err = s.store.SetFieldsVersioned(ctx, userID, profile.Version, map[string]interface{}{
			section:      flat,
			"updated_at": ts,
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, databases.ErrStaleWrite) {
			zap.S().Debugw("profile version changed since read, retrying",
				"userId", userID,
				"section", section,
				"attempt", attempt+1,
			)
			continue
		}
		return storageErr(err)
	}
	return conflictErr(userID, section)
}

// GetProfile returns the aggregate for userID with sections as id-keyed
// maps. A user without a document gets an empty profile back; the read side
// is forgiving where the write side is strict.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	doc, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	if doc == nil {
		return models.NewProfile(userID, s.now()), nil
	}
	return models.FromDocument(doc), nil
}

// GetExistingProfile is the strict read used by the batch layer: an absent
// document is ErrNotFound so callers can omit the user from their results.
func (s *Service) GetExistingProfile(ctx context.Context, userID string) (*models.Profile, error) {
	doc, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	if doc == nil {
		return nil, notFoundErr("user data", userID)
	}
	return models.FromDocument(doc), nil
}

// DeleteProfile removes the whole aggregate document for userID.
func (s *Service) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return storageErr(err)
	}
	return nil
}
