package models

import (
	"fmt"
	"sort"
	"time"
)

// Section names for the profile aggregate. Every profile carries all four,
// empty or not.
const (
	SectionVehicles      = "vehicles"
	SectionFavoriteSpots = "favoriteSpots"
	SectionHistory       = "history"
	SectionActiveStatus  = "activeStatus"
)

// SectionNames lists the four profile sections in their persisted order.
var SectionNames = []string{SectionVehicles, SectionFavoriteSpots, SectionHistory, SectionActiveStatus}

// sectionIDFields maps each section to its surrogate id field.
var sectionIDFields = map[string]string{
	SectionVehicles:      "vehicle_id",
	SectionFavoriteSpots: "spot_id",
	SectionHistory:       "history_id",
	SectionActiveStatus:  "active_id",
}

// Item is a single record inside a profile section, a flat property bag
// deserialized straight from the request body.
type Item map[string]interface{}

// SectionIDField returns the surrogate id field name for the given section.
func SectionIDField(section string) (string, error) {
	field, ok := sectionIDFields[section]
	if !ok {
		return "", fmt.Errorf("unknown section: %s", section)
	}
	return field, nil
}

// ItemID extracts the surrogate id of an item for the given section. The
// empty string is returned when the id field is absent or blank.
func ItemID(section string, item Item) (string, error) {
	field, err := SectionIDField(section)
	if err != nil {
		return "", err
	}
	v, ok := item[field]
	if !ok || v == nil {
		return "", nil
	}
	return fmt.Sprintf("%v", v), nil
}

// Profile is the in-memory representation of one user's aggregate. Sections
// are id-keyed maps so items are addressable by surrogate id; the persisted
// array layout only exists at the storage boundary (see ProfileDocument).
type Profile struct {
	UserID        string          `json:"userId"`
	Vehicles      map[string]Item `json:"vehicles"`
	FavoriteSpots map[string]Item `json:"favoriteSpots"`
	History       map[string]Item `json:"history"`
	ActiveStatus  map[string]Item `json:"activeStatus"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
	Version       int64           `json:"-"`
}

// ProfileDocument is the persisted layout of a profile in the manage_data
// collection. Each section is stored as an ordered array of property bags.
type ProfileDocument struct {
	UserID        string `bson:"user_id" json:"userId"`
	Vehicles      []Item `bson:"vehicles" json:"vehicles"`
	FavoriteSpots []Item `bson:"favoriteSpots" json:"favoriteSpots"`
	History       []Item `bson:"history" json:"history"`
	ActiveStatus  []Item `bson:"activeStatus" json:"activeStatus"`
	CreatedAt     string `bson:"created_at" json:"createdAt"`
	UpdatedAt     string `bson:"updated_at" json:"updatedAt"`
	Version       int64  `bson:"version" json:"-"`
}

// Timestamp renders t the way profile timestamps are persisted.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// NewProfile returns an empty profile for userID with both timestamps set to
// now. Used for lazy creation on the first add for an unknown user.
func NewProfile(userID string, now time.Time) *Profile {
	ts := Timestamp(now)
	return &Profile{
		UserID:        userID,
		Vehicles:      map[string]Item{},
		FavoriteSpots: map[string]Item{},
		History:       map[string]Item{},
		ActiveStatus:  map[string]Item{},
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
}

// Section returns the id-keyed map for the named section.
func (p *Profile) Section(section string) (map[string]Item, error) {
	switch section {
	case SectionVehicles:
		return p.Vehicles, nil
	case SectionFavoriteSpots:
		return p.FavoriteSpots, nil
	case SectionHistory:
		return p.History, nil
	case SectionActiveStatus:
		return p.ActiveStatus, nil
	default:
		return nil, fmt.Errorf("unknown section: %s", section)
	}
}

// SectionCount returns the number of items in the named section, zero for an
// unknown name.
func (p *Profile) SectionCount(section string) int {
	m, err := p.Section(section)
	if err != nil {
		return 0
	}
	return len(m)
}

// FromDocument converts the persisted array layout into the id-keyed
// in-memory form. Items missing their surrogate id are dropped rather than
// clobbering each other under the empty key.
func FromDocument(doc *ProfileDocument) *Profile {
	p := &Profile{
		UserID:        doc.UserID,
		Vehicles:      map[string]Item{},
		FavoriteSpots: map[string]Item{},
		History:       map[string]Item{},
		ActiveStatus:  map[string]Item{},
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
		Version:       doc.Version,
	}
	fill := func(section string, items []Item) {
		m, _ := p.Section(section)
		for _, item := range items {
			id, err := ItemID(section, item)
			if err != nil || id == "" {
				continue
			}
			m[id] = item
		}
	}
	fill(SectionVehicles, doc.Vehicles)
	fill(SectionFavoriteSpots, doc.FavoriteSpots)
	fill(SectionHistory, doc.History)
	fill(SectionActiveStatus, doc.ActiveStatus)
	return p
}

// ToDocument converts the in-memory form back to the persisted array layout.
// Items are ordered by surrogate id so a given profile always round-trips to
// the same document.
func (p *Profile) ToDocument() *ProfileDocument {
	flatten := func(m map[string]Item) []Item {
		ids := make([]string, 0, len(m))
		for id := range m {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		items := make([]Item, 0, len(m))
		for _, id := range ids {
			items = append(items, m[id])
		}
		return items
	}
	return &ProfileDocument{
		UserID:        p.UserID,
		Vehicles:      flatten(p.Vehicles),
		FavoriteSpots: flatten(p.FavoriteSpots),
		History:       flatten(p.History),
		ActiveStatus:  flatten(p.ActiveStatus),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// SectionItems returns the persisted array form of one section, ordered by
// surrogate id.
func (p *Profile) SectionItems(section string) ([]Item, error) {
	m, err := p.Section(section)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]Item, 0, len(m))
	for _, id := range ids {
		items = append(items, m[id])
	}
	return items, nil
}
