package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/erazemk/shramba/internal/locations"
	"github.com/erazemk/shramba/internal/model"
)

// LocationInput holds the fields of a new location.
type LocationInput struct {
	Name        string
	ParentID    *int64
	Description string
}

// LocationPatch holds the fields to change on a location. Nil pointers
// and unset optionals leave the current value.
type LocationPatch struct {
	Name        *string
	Description *string
	ParentID    Optional[int64]
}

// ListLocations returns all locations.
func (s *Service) ListLocations(ctx context.Context) ([]model.Location, error) {
	locs, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, persistence("listing locations", err)
	}
	return locs, nil
}

// LocationTree returns the locations as a forest.
func (s *Service) LocationTree(ctx context.Context) ([]*locations.Node, error) {
	locs, err := s.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	return locations.BuildHierarchy(locs), nil
}

// GetLocation returns a location by ID.
func (s *Service) GetLocation(ctx context.Context, id int64) (*model.Location, error) {
	l, err := s.store.GetLocation(ctx, id)
	if err != nil {
		return nil, persistence("getting location", err)
	}
	if l == nil {
		return nil, notFound("location")
	}
	return l, nil
}

// CreateLocation creates a location and computes its path from its
// parent.
func (s *Service) CreateLocation(ctx context.Context, in LocationInput) (*model.Location, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateLocationName(name); err != nil {
		return nil, err
	}

	var parent *model.Location
	if in.ParentID != nil {
		p, err := s.store.GetLocation(ctx, *in.ParentID)
		if err != nil {
			return nil, persistence("getting parent location", err)
		}
		if p == nil {
			return nil, invalid("parentId", "parent location %d does not exist", *in.ParentID)
		}
		parent = p
	}

	l := &model.Location{
		Name:        name,
		ParentID:    in.ParentID,
		Path:        locations.ComputePath(name, parent),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.clock(),
	}
	if err := s.store.CreateLocation(ctx, l); err != nil {
		return nil, persistence("creating location", err)
	}

	slog.Info("location created", "location", l.Path)
	s.reevaluate(ctx)
	return l, nil
}

// UpdateLocation applies a patch. Renaming or moving a location rewrites
// the paths of all its descendants in the same store write. Moving a
// location below itself is rejected.
func (s *Service) UpdateLocation(ctx context.Context, id int64, p LocationPatch) (*model.Location, error) {
	locs, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, persistence("listing locations", err)
	}

	byID := make(map[int64]model.Location, len(locs))
	for _, l := range locs {
		byID[l.ID] = l
	}
	l, ok := byID[id]
	if !ok {
		return nil, notFound("location")
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validateLocationName(name); err != nil {
			return nil, err
		}
		l.Name = name
	}
	if p.Description != nil {
		l.Description = strings.TrimSpace(*p.Description)
	}
	if p.ParentID.Set {
		if pid := p.ParentID.Value; pid != nil {
			if _, ok := byID[*pid]; !ok {
				return nil, invalid("parentId", "parent location %d does not exist", *pid)
			}
			if locations.IsDescendant(locs, id, *pid) {
				return nil, invalid("parentId", "location cannot be moved below itself")
			}
			parentID := *pid
			l.ParentID = &parentID
		} else {
			l.ParentID = nil
		}
	}

	var parent *model.Location
	if l.ParentID != nil {
		if pl, ok := byID[*l.ParentID]; ok {
			parent = &pl
		}
	}
	l.Path = locations.ComputePath(l.Name, parent)

	for i := range locs {
		if locs[i].ID == id {
			locs[i] = l
		}
	}
	updates := append([]model.Location{l}, locations.Repath(locs, l)...)
	if err := s.store.UpdateLocations(ctx, updates); err != nil {
		return nil, persistence("updating location", err)
	}

	slog.Info("location updated", "location", l.Path, "descendants", len(updates)-1)
	s.reevaluate(ctx)
	return &l, nil
}

// DeleteLocation removes a location. Its children and items keep their
// now dangling references.
func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteLocation(ctx, id)
	if err != nil {
		return persistence("deleting location", err)
	}
	if !ok {
		return notFound("location")
	}

	slog.Info("location deleted", "id", id)
	s.reevaluate(ctx)
	return nil
}

func validateLocationName(name string) error {
	if name == "" {
		return invalid("name", "is required")
	}
	if strings.Contains(name, model.PathSeparator) {
		return invalid("name", "must not contain %q", model.PathSeparator)
	}
	return nil
}
