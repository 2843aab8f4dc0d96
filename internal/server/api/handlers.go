package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/tradeboard/internal/logging"
	"github.com/dmitrijs2005/tradeboard/internal/server/listings"
	"github.com/dmitrijs2005/tradeboard/internal/server/users"
	"github.com/go-chi/chi/v5"
)

type handler struct {
	users    *users.Service
	listings *listings.Service
	log      logging.Logger
}

func actorFrom(u *users.User) listings.Actor {
	return listings.Actor{UserID: u.ID, Staff: u.IsStaff()}
}

func (h *handler) writeListingError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, listings.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "Invalid category")
	case errors.Is(err, listings.ErrNotFound):
		writeError(w, http.StatusNotFound, "Listing not found")
	case errors.Is(err, listings.ErrRedacted):
		writeError(w, http.StatusForbidden, "This post was removed by moderation")
	case errors.Is(err, listings.ErrForbidden):
		writeError(w, http.StatusForbidden, "You can only modify your own posts")
	case errors.Is(err, listings.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error(r.Context(), "listing operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.listings.Categories(r.Context())
	if err != nil {
		h.writeListingError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryResponse{Name: c.DisplayName, TableName: c.Key, ListingCount: c.Count})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	ls, err := h.listings.List(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		h.writeListingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponses(ls))
}

func (h *handler) getListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}
	l, err := h.listings.Get(r.Context(), chi.URLParam(r, "category"), id)
	if err != nil {
		h.writeListingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(l))
}

func (h *handler) createListing(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	var req listingRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	l, err := h.listings.Create(r.Context(), actorFrom(u), chi.URLParam(r, "category"), req.fields())
	if err != nil {
		h.writeListingError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toListingResponse(l))
}

func (h *handler) updateListing(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	var req listingRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	l, err := h.listings.Update(r.Context(), actorFrom(u), chi.URLParam(r, "category"), id, req.fields())
	if err != nil {
		h.writeListingError(w, r, err)
		return
	}
	writeSuccess(w, map[string]any{"listing": toListingResponse(l)})
}

func (h *handler) deleteListing(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid listing id")
		return
	}

	if err := h.listings.Delete(r.Context(), actorFrom(u), chi.URLParam(r, "category"), id); err != nil {
		h.writeListingError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.log.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(u), "token": token})
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Password, req.Name, users.RoleUser)
	switch {
	case errors.Is(err, users.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Email already registered")
		return
	case errors.Is(err, users.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.log.Error(r.Context(), "signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "user": toUserResponse(u)})
}

func (h *handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	all, err := h.users.List(r.Context())
	if err != nil {
		h.log.Error(r.Context(), "list users failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]adminUserResponse, 0, len(all))
	for _, u := range all {
		posts, err := h.listings.ListByUser(r.Context(), u.ID)
		if err != nil {
			h.writeListingError(w, r, err)
			return
		}
		out = append(out, adminUserResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			UserRole:  u.Role,
			CreatedAt: u.CreatedAt,
			Posts:     toListingResponses(posts),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) moderateDelete(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())

	var req moderateRequest
	if err := decodeBody(w, r, &req); err != nil || req.Category == "" || req.PostID <= 0 {
		writeError(w, http.StatusBadRequest, "category and post_id are required")
		return
	}

	if _, err := h.listings.Moderate(r.Context(), actorFrom(u), req.Category, req.PostID); err != nil {
		h.writeListingError(w, r, err)
		return
	}
	h.log.Info(r.Context(), "post redacted", "moderator_id", u.ID, "category", req.Category, "post_id", req.PostID)
	writeSuccess(w, map[string]any{"message": "Post deleted by moderation"})
}
