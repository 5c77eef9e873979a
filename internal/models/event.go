package models

type EventInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Organizer   string `json:"organizer"`
	Capacity    int    `json:"capacity"`
	Category    string `json:"category"`
}

type ParticipantInput struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type ParticipantEnvelope struct {
	Participant Document `json:"participant"`
}

type UserEnvelope struct {
	User Document `json:"user"`
}
