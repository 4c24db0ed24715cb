package group

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
	CreateGroup(actor ability.Subject, dto CreateGroupDTO) (*Group, string, error)
	GetGroup(actor ability.Subject, groupID int64) (*Group, error)
	UpdateGroup(actor ability.Subject, groupID int64, dto UpdateGroupDTO) (*Group, string, error)
	ListGroups(page int) (*GroupPage, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	baseURL string
}

func NewHandler(service ServiceAPI, baseURL string) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		baseURL:     baseURL,
	}
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, notice, err := h.Service.CreateGroup(user.Subject(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"group":    g,
		"join_url": JoinURL(h.baseURL, g.ID),
		"notice":   notice,
	})
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
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

	g, err := h.Service.GetGroup(user.Subject(), groupID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"group":    g,
		"join_url": JoinURL(h.baseURL, g.ID),
	})
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
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

	var dto UpdateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, notice, err := h.Service.UpdateGroup(user.Subject(), groupID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"group":  g,
		"notice": notice,
	})
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result, err := h.Service.ListGroups(page)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) groupID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
