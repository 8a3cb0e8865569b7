package handler

import (
	"encoding/json"
	"net/http"

	"connectsphere/internal/api/middleware"
	"connectsphere/internal/app/service"
	"connectsphere/internal/common"
	"connectsphere/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPosts) // feed is public

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/", h.createPost)
		authed.Put("/{postID}", h.updatePost)
		authed.Delete("/{postID}", h.deletePost)
		authed.Post("/{postID}/like", h.react(model.ReactionLike))
		authed.Post("/{postID}/dislike", h.react(model.ReactionDislike))
	})
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.postService.CreatePost(r.Context(), callerID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListPosts(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.postService.UpdatePost(r.Context(), callerID, chi.URLParam(r, "postID"), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, post)
}

func (h *PostHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.postService.DeletePost(r.Context(), callerID, chi.URLParam(r, "postID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Post deleted")
}

func (h *PostHandler) react(kind model.ReactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
			return
		}

		resp, err := h.postService.ToggleReaction(r.Context(), callerID, chi.URLParam(r, "postID"), kind)
		if err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		common.RespondWithJSON(w, http.StatusOK, resp)
	}
}
