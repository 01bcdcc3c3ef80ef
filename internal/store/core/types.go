package core

import (
	"fmt"
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	// PasswordHash nunca se serializa hacia afuera.
	PasswordHash string `json:"-"`
	// RefreshHash es el SHA-256 del refresh token vigente.
	// nil = sin sesión activa. Lo muta exclusivamente el flujo de credenciales
	// (login/rotate lo setean, logout/reuse-detection lo limpian).
	RefreshHash     *string   `json:"-"`
	AvatarURL       string    `json:"avatar_url"`
	CoverImageURL   string    `json:"cover_image_url,omitempty"`
	WatchHistory    []string  `json:"watch_history,omitempty"`
	SubscriberCount int64     `json:"subscriber_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Video struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Duration     float64   `json:"duration"`
	Published    bool      `json:"published"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	LikeCount int64     `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TargetType discrimina el tipo de entidad sobre la que recae un engagement.
// Es un enum cerrado: exactamente un tipo por registro, nunca campos
// opcionales en paralelo.
type TargetType string

const (
	TargetVideo   TargetType = "video"
	TargetComment TargetType = "comment"
	TargetTweet   TargetType = "tweet"
	// TargetChannel modela suscripciones: el target es el usuario-canal.
	TargetChannel TargetType = "channel"
)

// Valid reporta si el tipo pertenece al enum.
func (t TargetType) Valid() bool {
	switch t {
	case TargetVideo, TargetComment, TargetTweet, TargetChannel:
		return true
	}
	return false
}

// ParseTargetType valida un tipo recibido por la API.
func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(s) {
	case TargetVideo, TargetComment, TargetTweet, TargetChannel:
		return TargetType(s), nil
	}
	return "", fmt.Errorf("%w: target type %q", ErrInvalid, s)
}

// Target identifica una entidad concreta (tipo + id).
type Target struct {
	Type TargetType
	ID   string
}

// Engagement es la evidencia durable de que un actor interactuó una vez con
// un target. Clave compuesta (actor_id, target_type, target_id) con
// constraint UNIQUE en la base; nunca se actualiza in place.
type Engagement struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	Target    Target    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// InsertOutcome es el resultado etiquetado de un intento de inserción de
// engagement. La rama del toggle se decide por este tag, nunca por un
// existence-check separado.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	AlreadyPresent
)
