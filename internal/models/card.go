package models

import "time"

// CardSource identifies which content pool a card came from. System and
// user-authored cards live in separate tables and never share ids, so the
// source is resolved once at the pool boundary and carried on the card.
type CardSource string

const (
	SourceSystem CardSource = "system"
	SourceUser   CardSource = "user"
)

// CardContent is an immutable vocabulary item.
type CardContent struct {
	ID           string     `json:"id"`
	Prompt       string     `json:"prompt"`
	Answer       string     `json:"answer"`
	PartOfSpeech string     `json:"part_of_speech,omitempty"`
	Source       CardSource `json:"source"`
	CreatedAt    time.Time  `json:"created_at"`
}
