// Package channel define los DTOs del perfil público de canal.
package channel

// Profile es la vista pública de un canal: identidad + stats + relación con
// el espectador autenticado (si lo hay).
type Profile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	CoverImageURL   string `json:"cover_image_url,omitempty"`
	SubscriberCount int64  `json:"subscriber_count"`
	VideoCount      int64  `json:"video_count"`
	IsSubscribed    bool   `json:"is_subscribed"`
}
