package domain

import "time"

type FavoriteKind string

const (
	FavoriteKindStylist  FavoriteKind = "STYLIST"
	FavoriteKindProperty FavoriteKind = "PROPERTY"
)

type Favorite struct {
	ID        int32        `json:"id"`
	UserID    int32        `json:"user_id"`
	Kind      FavoriteKind `json:"kind"`
	TargetID  int32        `json:"target_id"`
	CreatedOn time.Time    `json:"created_on"`
}
