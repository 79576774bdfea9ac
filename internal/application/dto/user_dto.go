package dto

import "gitglimpse-core/internal/domain/activity"

// UserResponse is the signed-in GitHub identity
type UserResponse struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
}

func NewUserResponse(u *activity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Login:     u.Login,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		HTMLURL:   u.HTMLURL,
	}
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}
