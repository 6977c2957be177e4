package domain

import "time"

type HairHealthProfile struct {
	ID         int32     `json:"id"`
	UserID     int32     `json:"user_id"`
	HairType   string    `json:"hair_type"`
	Porosity   string    `json:"porosity"`
	ScalpType  string    `json:"scalp_type,omitempty"`
	Conditions []string  `json:"conditions"`
	Goals      []string  `json:"goals"`
	Notes      string    `json:"notes,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// LearningResource is a read-only hair care education catalog entry.
type LearningResource struct {
	ID          int32     `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Body        string    `json:"body,omitempty"`
	Topics      []string  `json:"topics"`
	MediaURL    string    `json:"media_url,omitempty"`
	PublishedOn time.Time `json:"published_on"`
}
