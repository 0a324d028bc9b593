package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

// tokenAttempts bounds share token generation retries on collision.
const tokenAttempts = 5

// ErrTokenExhausted is returned when no unused share token could be
// generated.
var ErrTokenExhausted = errors.New("could not generate a unique share token")

// ListInput holds the fields of a new shareable list. IsPublic defaults
// to true.
type ListInput struct {
	Name        string
	Description string
	LocationID  *int64
	IsPublic    *bool
	ExpiresAt   *time.Time
}

// ListPatch holds the fields to change on a shareable list. The share
// token cannot be changed.
type ListPatch struct {
	Name        *string
	Description *string
	LocationID  Optional[int64]
	IsPublic    *bool
	ExpiresAt   Optional[time.Time]
}

// SharedList is the public projection of a shareable list.
type SharedList struct {
	List  model.ShareableList `json:"list"`
	Items []model.Item        `json:"items"`
}

// ListLists returns all shareable lists, newest first.
func (s *Service) ListLists(ctx context.Context) ([]model.ShareableList, error) {
	lists, err := s.store.ListShareableLists(ctx)
	if err != nil {
		return nil, persistence("listing shareable lists", err)
	}
	return lists, nil
}

// GetList returns a shareable list by ID.
func (s *Service) GetList(ctx context.Context, id int64) (*model.ShareableList, error) {
	l, err := s.store.GetShareableList(ctx, id)
	if err != nil {
		return nil, persistence("getting shareable list", err)
	}
	if l == nil {
		return nil, notFound("shareable list")
	}
	return l, nil
}

// CreateList creates a shareable list under a fresh share token.
func (s *Service) CreateList(ctx context.Context, in ListInput) (*model.ShareableList, error) {
	now := s.clock()
	l := &model.ShareableList{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		LocationID:  in.LocationID,
		IsPublic:    true,
		ExpiresAt:   in.ExpiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsPublic != nil {
		l.IsPublic = *in.IsPublic
	}
	if err := s.validateList(ctx, l, true); err != nil {
		return nil, err
	}

	token, err := s.uniqueToken(ctx)
	if err != nil {
		return nil, err
	}
	l.ShareID = token

	if err := s.store.CreateShareableList(ctx, l); err != nil {
		return nil, persistence("creating shareable list", err)
	}

	slog.Info("shareable list created", "list", l.Name)
	return l, nil
}

func (s *Service) uniqueToken(ctx context.Context) (string, error) {
	for range tokenAttempts {
		token, err := s.newToken()
		if err != nil {
			return "", fmt.Errorf("generating share token: %w", err)
		}
		existing, err := s.store.GetShareableListByShareID(ctx, token)
		if err != nil {
			return "", persistence("checking share token", err)
		}
		if existing == nil {
			return token, nil
		}
		slog.Warn("share token collision, retrying")
	}
	return "", ErrTokenExhausted
}

// UpdateList applies a patch to a shareable list.
func (s *Service) UpdateList(ctx context.Context, id int64, p ListPatch) (*model.ShareableList, error) {
	l, err := s.GetList(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		l.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		l.Description = strings.TrimSpace(*p.Description)
	}
	if p.LocationID.Set {
		l.LocationID = p.LocationID.Value
	}
	if p.IsPublic != nil {
		l.IsPublic = *p.IsPublic
	}
	if p.ExpiresAt.Set {
		l.ExpiresAt = p.ExpiresAt.Value
	}
	if err := s.validateList(ctx, l, p.LocationID.Set); err != nil {
		return nil, err
	}

	l.UpdatedAt = s.clock()
	if err := s.store.UpdateShareableList(ctx, l); err != nil {
		return nil, persistence("updating shareable list", err)
	}

	slog.Info("shareable list updated", "list", l.Name)
	return l, nil
}

// DeleteList removes a shareable list and its item pairings.
func (s *Service) DeleteList(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteShareableList(ctx, id)
	if err != nil {
		return persistence("deleting shareable list", err)
	}
	if !ok {
		return notFound("shareable list")
	}

	slog.Info("shareable list deleted", "id", id)
	return nil
}

// GetListItems returns the pairings of a list whose items still exist.
func (s *Service) GetListItems(ctx context.Context, listID int64) ([]model.ShareableListItem, error) {
	if _, err := s.GetList(ctx, listID); err != nil {
		return nil, err
	}
	entries, err := s.store.ListShareableListItems(ctx, listID)
	if err != nil {
		return nil, persistence("listing shareable list items", err)
	}
	return entries, nil
}

// AddListItem pairs an existing item with an existing list.
func (s *Service) AddListItem(ctx context.Context, listID, itemID int64) (*model.ShareableListItem, error) {
	if _, err := s.GetList(ctx, listID); err != nil {
		return nil, err
	}
	it, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	e, err := s.store.AddShareableListItem(ctx, listID, itemID, s.clock())
	if err != nil {
		return nil, persistence("adding shareable list item", err)
	}
	e.Item = it
	return e, nil
}

// RemoveListItem removes a pairing. It returns ErrNotFound if the item
// was not on the list.
func (s *Service) RemoveListItem(ctx context.Context, listID, itemID int64) error {
	ok, err := s.store.RemoveShareableListItem(ctx, listID, itemID)
	if err != nil {
		return persistence("removing shareable list item", err)
	}
	if !ok {
		return notFound("shareable list item")
	}
	return nil
}

// ResolveShare looks up a list by its share token for public viewing.
// Unknown, private and expired lists are all reported as not found.
func (s *Service) ResolveShare(ctx context.Context, token string) (*SharedList, error) {
	l, err := s.store.GetShareableListByShareID(ctx, token)
	if err != nil {
		return nil, persistence("resolving share token", err)
	}
	if l == nil || !l.IsPublic || l.Expired(s.clock()) {
		return nil, notFound("shared list")
	}

	entries, err := s.store.ListShareableListItems(ctx, l.ID)
	if err != nil {
		return nil, persistence("listing shared items", err)
	}
	items := make([]model.Item, 0, len(entries))
	for _, e := range entries {
		if e.Item != nil {
			items = append(items, *e.Item)
		}
	}
	return &SharedList{List: *l, Items: items}, nil
}

// validateList checks a list before it is written. The location is only
// checked when it is being set, so lists whose location was deleted stay
// editable.
func (s *Service) validateList(ctx context.Context, l *model.ShareableList, checkLocation bool) error {
	if l.Name == "" {
		return invalid("name", "is required")
	}
	if checkLocation && l.LocationID != nil {
		loc, err := s.store.GetLocation(ctx, *l.LocationID)
		if err != nil {
			return persistence("getting location", err)
		}
		if loc == nil {
			return invalid("locationId", "location %d does not exist", *l.LocationID)
		}
	}
	return nil
}
