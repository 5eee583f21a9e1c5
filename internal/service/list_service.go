package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskhive-be/internal/cache"
	"taskhive-be/internal/entities"
	"taskhive-be/internal/models"
	"taskhive-be/internal/realtime"
	"taskhive-be/internal/repository"
)

const listCacheTTL = 5 * time.Minute

// ListService defines the interface for list business logic.
//
// Every mutation follows the same skeleton: the caller has already been
// authenticated and authorized, the store write happens first, the
// canonical enriched view is re-read, and only then are change events
// emitted. A broadcast never fails a successful write.
type ListService interface {
	Create(ctx context.Context, userID, title string) (*entities.List, error)
	GetAll(ctx context.Context, userID string) ([]*models.ListResponse, error)
	Get(ctx context.Context, listID string) (*models.ListResponse, error)
	UpdateTitle(ctx context.Context, listID, title string) (*models.ListResponse, error)
	Delete(ctx context.Context, userID, listID string) error
	Share(ctx context.Context, listID, email, accessLevel string) (*models.ListResponse, error)
	RemoveShare(ctx context.Context, listID, targetUserID string) (*models.ListResponse, error)
}

type listService struct {
	listRepo    repository.ListRepository
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	cache       cache.Cache
	broadcaster Broadcaster
}

// NewListService creates a new list service. The cache may be nil.
func NewListService(
	listRepo repository.ListRepository,
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	cacheClient cache.Cache,
	broadcaster Broadcaster,
) ListService {
	return &listService{
		listRepo:    listRepo,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		cache:       cacheClient,
		broadcaster: broadcaster,
	}
}

// Create makes a new empty list owned by the caller. No broadcast: nobody
// else can see the list yet.
func (s *listService) Create(ctx context.Context, userID, title string) (*entities.List, error) {
	return s.listRepo.Create(ctx, title, userID)
}

// GetAll returns the enriched view of every list the user owns or is
// shared on
func (s *listService) GetAll(ctx context.Context, userID string) ([]*models.ListResponse, error) {
	ids, err := s.listRepo.FindIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lists := make([]*models.ListResponse, 0, len(ids))
	for _, id := range ids {
		list, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// Get returns the enriched list view: owner and share entries resolved to
// display fields, tasks resolved to full records
func (s *listService) Get(ctx context.Context, listID string) (*models.ListResponse, error) {
	if s.cache != nil {
		var cached models.ListResponse
		if err := s.cache.GetJSON(ctx, listCacheKey(listID), &cached); err == nil {
			return &cached, nil
		}
	}

	view, err := s.buildEnriched(ctx, listID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, listCacheKey(listID), view, listCacheTTL); err != nil {
			log.Printf("Warning: failed to cache list %s: %v", listID, err)
		}
	}
	return view, nil
}

// UpdateTitle renames a list and notifies both the open viewers and every
// user who can see the list on their home view
func (s *listService) UpdateTitle(ctx context.Context, listID, title string) (*models.ListResponse, error) {
	if err := s.listRepo.UpdateTitle(ctx, listID, title); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listID)

	view, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.ToList(listID, realtime.EventListUpdated, view)
	s.broadcaster.ToUser(view.Owner.ID, realtime.EventListNameUpdated, view)
	for _, share := range view.SharedWith {
		s.broadcaster.ToUser(share.User.ID, realtime.EventListNameUpdated, view)
	}
	return view, nil
}

// Delete removes a list (owner-only; the repository scopes the delete).
// Tasks cascade with the list. Every former share holder is told so the
// list disappears from their home view even if they don't have it open.
func (s *listService) Delete(ctx context.Context, userID, listID string) error {
	shares, err := s.listRepo.FindShares(ctx, listID)
	if err != nil {
		return err
	}

	if err := s.listRepo.Delete(ctx, listID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, listID)

	payload := map[string]string{"listId": listID}
	for _, share := range shares {
		s.broadcaster.ToUser(share.UserID, realtime.EventListDeleted, payload)
	}
	return nil
}

// Share grants a user access to a list by email. Sharing twice with the
// same user overwrites the access level; there is never more than one
// share entry per (list, user) pair.
func (s *listService) Share(ctx context.Context, listID, email, accessLevel string) (*models.ListResponse, error) {
	grantee, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if grantee.ID == list.OwnerID {
		// The owner already holds edit access implicitly and never
		// appears among the shares
		return nil, ErrShareWithOwner
	}

	if err := s.listRepo.UpsertShare(ctx, listID, grantee.ID, accessLevel); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listID)

	view, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.ToList(listID, realtime.EventListUpdated, view)
	s.broadcaster.ToUser(grantee.ID, realtime.EventListShared, view)
	return view, nil
}

// RemoveShare revokes a user's access. Removing a user who is not shared
// is a no-op that still returns the current list state.
func (s *listService) RemoveShare(ctx context.Context, listID, targetUserID string) (*models.ListResponse, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		return nil, err
	}

	if err := s.listRepo.RemoveShare(ctx, listID, targetUserID); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listID)

	view, err := s.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.ToList(listID, realtime.EventListUpdated, view)
	s.broadcaster.ToUser(targetUserID, realtime.EventListUnshared, map[string]string{"listId": listID})
	return view, nil
}

func (s *listService) buildEnriched(ctx context.Context, listID string) (*models.ListResponse, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, list.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve list owner: %w", err)
	}

	shares, err := s.listRepo.FindSharesWithUsers(ctx, listID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindByListID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*entities.Task{}
	}

	sharedWith := make([]models.ShareResponse, 0, len(shares))
	for _, share := range shares {
		sharedWith = append(sharedWith, models.ShareResponse{
			User: models.UserSummary{
				ID:        share.User.ID,
				FirstName: share.User.FirstName,
				LastName:  share.User.LastName,
				Email:     share.User.Email,
			},
			Access: share.Access,
		})
	}

	return &models.ListResponse{
		ID:    list.ID,
		Title: list.Title,
		Owner: models.UserSummary{
			ID:        owner.ID,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
			Email:     owner.Email,
		},
		SharedWith: sharedWith,
		Tasks:      tasks,
		CreatedAt:  list.CreatedAt,
	}, nil
}

func (s *listService) invalidate(ctx context.Context, listID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey(listID)); err != nil {
		log.Printf("Warning: failed to invalidate list cache %s: %v", listID, err)
	}
}

func listCacheKey(listID string) string {
	return fmt.Sprintf("list:%s", listID)
}
