package membership

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	internal "github.com/gatherhub/community/internal"
	"github.com/gatherhub/community/internal/ability"
	"github.com/gatherhub/community/internal/auth"
	"github.com/gatherhub/community/internal/transport"
	"github.com/gatherhub/community/pkg/logger"
)

type ServiceAPI interface {
	RequestJoin(actor ability.Subject, groupID int64) (*Membership, string, error)
	AcceptRequest(groupID, targetUserID int64) (*Membership, error)
	CheckRequestStatus(groupID, userID int64) bool
	PendingRequestCount(groupID int64) (int64, error)
	IsGroupAdmin(groupID, userID int64) (bool, error)
	ListRequests(groupID int64) ([]*Membership, error)
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

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID, err := h.groupID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return
	}

	m, notice, err := h.Service.RequestJoin(user.Subject(), groupID)
	if err != nil {
		if err == internal.ErrAlreadyJoined {
			h.WriteJSON(w, http.StatusConflict, map[string]string{"notice": notice})
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"membership": m,
		"notice":     notice,
	})
}

// ListRequests shows the group's memberships so the owner can review
// pending joins. Only the group owner or an admin may call it.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user, groupID, ok := h.requireOwnerOrAdmin(w, r)
	if !ok {
		return
	}

	memberships, err := h.Service.ListRequests(groupID)
	if err != nil {
		h.Logger.Error("ListRequests: service error", "error", err, "group_id", groupID, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	pending, err := h.Service.PendingRequestCount(groupID)
	if err != nil {
		h.Logger.Error("ListRequests: pending count error", "error", err, "group_id", groupID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"memberships":   memberships,
		"pending_count": pending,
	})
}

func (h *Handler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	_, groupID, ok := h.requireOwnerOrAdmin(w, r)
	if !ok {
		return
	}

	targetUserID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	m, err := h.Service.AcceptRequest(groupID, targetUserID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"membership": m,
		"notice":     NoticeAccepted,
	})
}

func (h *Handler) groupID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// requireOwnerOrAdmin implements the boundary authorization for request
// management: the group owner (earliest membership) or an admin.
func (h *Handler) requireOwnerOrAdmin(w http.ResponseWriter, r *http.Request) (*auth.User, int64, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return nil, 0, false
	}

	groupID, err := h.groupID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid group ID")
		return nil, 0, false
	}

	if user.IsAdmin {
		return user, groupID, true
	}

	isOwner, err := h.Service.IsGroupAdmin(groupID, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return nil, 0, false
	}
	if !isOwner {
		h.Logger.Warn("request management denied: not group owner", "group_id", groupID, "user_id", user.ID)
		status, body := internal.ErrNotGroupOwner.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return nil, 0, false
	}

	return user, groupID, true
}
