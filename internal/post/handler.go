package post

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/gatherhub/community/internal/ability"
	"github.com/gatherhub/community/internal/auth"
	"github.com/gatherhub/community/internal/transport"
	"github.com/gatherhub/community/pkg/logger"
)

type ServiceAPI interface {
	CreatePost(actor ability.Subject, groupID int64, dto CreatePostDTO) (*Post, string, error)
	GetPost(actor ability.Subject, postID int64) (*Post, error)
	ListPostsForGroup(actor ability.Subject, groupID int64) ([]*Post, error)
	ListRecent() ([]*Post, error)
	UpdatePost(actor ability.Subject, postID int64, dto UpdatePostDTO) (*Post, error)
	DeletePost(actor ability.Subject, postID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return
	}

	var dto CreatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, notice, err := h.Service.CreatePost(user.Subject(), groupID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"post":   p,
		"notice": notice,
	})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID, err := h.postID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	p, err := h.Service.GetPost(user.Subject(), postID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"post": p})
}

func (h *Handler) ListGroupPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return
	}

	posts, err := h.Service.ListPostsForGroup(user.Subject(), groupID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// ListRecent serves the cross-group article feed.
func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.ListRecent()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID, err := h.postID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	var dto UpdatePostDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdatePost(user.Subject(), postID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"post": p})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID, err := h.postID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid post ID")
		return
	}

	if err := h.Service.DeletePost(user.Subject(), postID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

func (h *Handler) postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
}
