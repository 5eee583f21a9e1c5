package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"taskhive-be/internal/entities"
	"taskhive-be/internal/repository"
)

type stubListRepo struct {
	lists  map[string]*entities.List
	shares map[string][]entities.ShareEntry
}

func (r *stubListRepo) Create(ctx context.Context, title, ownerID string) (*entities.List, error) {
	panic("not used")
}

func (r *stubListRepo) FindByID(ctx context.Context, id string) (*entities.List, error) {
	list, ok := r.lists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return list, nil
}

func (r *stubListRepo) FindIDsForUser(ctx context.Context, userID string) ([]string, error) {
	panic("not used")
}

func (r *stubListRepo) FindShares(ctx context.Context, listID string) ([]entities.ShareEntry, error) {
	return r.shares[listID], nil
}

func (r *stubListRepo) FindSharesWithUsers(ctx context.Context, listID string) ([]repository.ShareWithUser, error) {
	panic("not used")
}

func (r *stubListRepo) UpdateTitle(ctx context.Context, listID, title string) error { panic("not used") }
func (r *stubListRepo) Delete(ctx context.Context, listID, ownerID string) error    { panic("not used") }
func (r *stubListRepo) UpsertShare(ctx context.Context, listID, userID, access string) error {
	panic("not used")
}
func (r *stubListRepo) RemoveShare(ctx context.Context, listID, userID string) error {
	panic("not used")
}

func setupEditRouter(repo repository.ListRepository, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/lists/:id",
		func(c *gin.Context) { c.Set(ContextUserID, userID) },
		RequireListEdit(repo, "id"),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return router
}

func performPut(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func testRepo() *stubListRepo {
	return &stubListRepo{
		lists: map[string]*entities.List{
			"list-1": {ID: "list-1", Title: "Groceries", OwnerID: "owner-1"},
		},
		shares: map[string][]entities.ShareEntry{
			"list-1": {
				{ListID: "list-1", UserID: "editor-1", Access: entities.AccessEdit},
				{ListID: "list-1", UserID: "viewer-1", Access: entities.AccessView},
			},
		},
	}
}

func TestRequireListEditOwner(t *testing.T) {
	router := setupEditRouter(testRepo(), "owner-1")
	w := performPut(router, "/lists/list-1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireListEditEditor(t *testing.T) {
	router := setupEditRouter(testRepo(), "editor-1")
	w := performPut(router, "/lists/list-1")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireListEditViewerForbidden(t *testing.T) {
	router := setupEditRouter(testRepo(), "viewer-1")
	w := performPut(router, "/lists/list-1")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireListEditStrangerForbidden(t *testing.T) {
	router := setupEditRouter(testRepo(), "someone-else")
	w := performPut(router, "/lists/list-1")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireListEditMissingList(t *testing.T) {
	router := setupEditRouter(testRepo(), "owner-1")
	w := performPut(router, "/lists/no-such-list")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
