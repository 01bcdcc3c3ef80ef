// Package content define los DTOs de videos, comments y tweets.
package content

import (
	"time"

	"github.com/sanikant20/videoTube-Server/internal/store/core"
)

type CreateVideoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
}

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type VideoResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     float64   `json:"duration"`
	Published    bool      `json:"published"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToVideoResponse(v *core.Video) VideoResponse {
	return VideoResponse{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Published:    v.Published,
		ViewCount:    v.ViewCount,
		LikeCount:    v.LikeCount,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func ToVideoResponses(vs []core.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(vs))
	for i := range vs {
		out = append(out, ToVideoResponse(&vs[i]))
	}
	return out
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToCommentResponse(c *core.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCommentResponses(cs []core.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(cs))
	for i := range cs {
		out = append(out, ToCommentResponse(&cs[i]))
	}
	return out
}

type CreateTweetRequest struct {
	Content string `json:"content"`
}

type UpdateTweetRequest struct {
	Content string `json:"content"`
}

type TweetResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToTweetResponse(t *core.Tweet) TweetResponse {
	return TweetResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		LikeCount: t.LikeCount,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func ToTweetResponses(ts []core.Tweet) []TweetResponse {
	out := make([]TweetResponse, 0, len(ts))
	for i := range ts {
		out = append(out, ToTweetResponse(&ts[i]))
	}
	return out
}
