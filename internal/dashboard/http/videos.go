package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/service"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/youtube"
)

// VideoHandler serves video metadata, comments and search.
type VideoHandler struct {
	VideoService *service.VideoService
	Events       *service.EventService
}

func (h *VideoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	v, err := h.VideoService.GetVideo(r.Context(), r.PathValue("id"))
	if err != nil {
		writeVideoError(w, err)
		return
	}
	setEventContext(r, domain.EventVideoFetched, v.YouTubeID, "", "")
	respondData(w, http.StatusOK, v, "")
}

func (h *VideoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
		return
	}

	videoID := r.PathValue("id")
	v, err := h.VideoService.UpdateVideo(r.Context(), videoID, body.Title, body.Description)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	setEventContext(r, domain.EventVideoUpdated, videoID, "", "")
	respondData(w, http.StatusOK, v, "Video updated")
}

func (h *VideoHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")
	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
	pageToken := r.URL.Query().Get("pageToken")

	threads, nextPage, err := h.VideoService.Comments(r.Context(), videoID, maxResults, pageToken)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"comments":      threads,
		"nextPageToken": nextPage,
	}, "")
}

func (h *VideoHandler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
		return
	}

	videoID := r.PathValue("id")
	c, err := h.VideoService.AddComment(r.Context(), videoID, body.Text)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	setEventContext(r, domain.EventCommentAdded, videoID, c.ID, "")
	respondData(w, http.StatusCreated, c, "Comment added")
}

func (h *VideoHandler) HandleReplyComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
		return
	}

	parentID := r.PathValue("id")
	c, err := h.VideoService.ReplyComment(r.Context(), parentID, body.Text)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	setEventContext(r, domain.EventCommentReplied, "", c.ID, "")
	respondData(w, http.StatusCreated, c, "Reply added")
}

func (h *VideoHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := r.PathValue("id")
	if err := h.VideoService.DeleteComment(r.Context(), commentID); err != nil {
		writeVideoError(w, err)
		return
	}
	setEventContext(r, domain.EventCommentDeleted, "", commentID, "")
	respondData(w, http.StatusOK, nil, "Comment deleted")
}

func (h *VideoHandler) HandleRefreshStatistics(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")
	if err := h.VideoService.RefreshStatistics(r.Context(), videoID); err != nil {
		writeVideoError(w, err)
		return
	}
	setEventContext(r, domain.EventVideoFetched, videoID, "", "")
	respondData(w, http.StatusOK, nil, "Statistics refreshed")
}

func (h *VideoHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))

	items, err := h.VideoService.Search(r.Context(), r.URL.Query().Get("q"), maxResults)
	if err != nil {
		writeVideoError(w, err)
		return
	}
	respondData(w, http.StatusOK, items, "")
}

func (h *VideoHandler) HandleTestPermissions(w http.ResponseWriter, r *http.Request) {
	channel, err := h.VideoService.TestPermissions(r.Context())
	if err != nil {
		writeVideoError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"canManage": true,
		"channel":   channel,
	}, "")
}

// writeVideoError maps service and YouTube client failures onto the response
// envelope.
func writeVideoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, youtube.ErrNotFound):
		respondError(w, http.StatusNotFound, "Video or comment not found", "NOT_FOUND")
	case errors.Is(err, youtube.ErrNoAccessToken):
		respondError(w, http.StatusUnauthorized, "YouTube account not connected. Please sign in.", "NO_OAUTH_TOKENS")
	case errors.Is(err, youtube.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "YouTube rejected the stored credentials. Please sign in again.", "OAUTH_TOKENS_REJECTED")
	case errors.Is(err, youtube.ErrQuotaExceeded):
		respondError(w, http.StatusTooManyRequests, "YouTube API quota exceeded. Try again later.", "QUOTA_EXCEEDED")
	case errors.Is(err, youtube.ErrForbidden):
		respondError(w, http.StatusForbidden, "Insufficient permissions for this operation", "FORBIDDEN")
	default:
		respondError(w, http.StatusBadGateway, "YouTube API request failed", "YOUTUBE_API_ERROR")
	}
}
