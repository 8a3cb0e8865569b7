package handler

import (
	"net/http"

	"connectsphere/internal/app/service"
	"connectsphere/internal/common"

	"github.com/go-chi/chi/v5"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.searchAll)
	r.Get("/users", h.searchUsers)
	r.Get("/posts", h.searchPosts)
}

func (h *SearchHandler) searchAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.searchService.SearchAll(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, results)
}

func (h *SearchHandler) searchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.searchService.SearchUsers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *SearchHandler) searchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.searchService.SearchPosts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, posts)
}
