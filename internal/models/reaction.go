package models

import "time"

// Reaction types. The enumeration is closed: any other value is rejected
// before a row is written.
const (
	ReactionLike        = "like"
	ReactionLove        = "love"
	ReactionEcoLove     = "eco_love"
	ReactionRecycle     = "recycle"
	ReactionEarthDay    = "earth_day"
	ReactionGreenEnergy = "green_energy"
	ReactionDislike     = "dislike"
)

// AvailableReactionTypes lists every valid reaction type.
var AvailableReactionTypes = []string{
	ReactionLike,
	ReactionLove,
	ReactionEcoLove,
	ReactionRecycle,
	ReactionEarthDay,
	ReactionGreenEnergy,
	ReactionDislike,
}

// IsValidReactionType reports whether t belongs to the closed enumeration.
func IsValidReactionType(t string) bool {
	for _, v := range AvailableReactionTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Reaction is a typed response a user attaches to a post. The composite
// unique index enforces at most one reaction row per (user, post) pair.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reactions_user_post"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_reactions_user_post;index:idx_reactions_post_type"`
	Post      Post      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Type      string    `json:"type" gorm:"size:20;not null;index:idx_reactions_post_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToggleReactionRequest defines the request body for toggling a reaction
type ToggleReactionRequest struct {
	Type string `json:"type" validate:"required"`
}

// ReactionDetails carries the presentation metadata for a reaction type.
// Display-only; the engine never reads it.
type ReactionDetails struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Color string `json:"color"`
}

var reactionDetails = map[string]ReactionDetails{
	ReactionLike:        {Icon: "👍", Label: "Like", Color: "text-blue-600"},
	ReactionLove:        {Icon: "❤️", Label: "Love", Color: "text-red-600"},
	ReactionEcoLove:     {Icon: "🌱", Label: "Eco Love", Color: "text-green-600"},
	ReactionRecycle:     {Icon: "♻️", Label: "Recycle", Color: "text-emerald-600"},
	ReactionEarthDay:    {Icon: "🌍", Label: "Earth Day", Color: "text-blue-500"},
	ReactionGreenEnergy: {Icon: "⚡", Label: "Green Energy", Color: "text-yellow-500"},
	ReactionDislike:     {Icon: "👎", Label: "Dislike", Color: "text-gray-600"},
}

// DetailsFor returns the display metadata for a reaction type.
func DetailsFor(t string) ReactionDetails {
	if d, ok := reactionDetails[t]; ok {
		return d
	}
	return ReactionDetails{Icon: "❓", Label: "Unknown", Color: "text-gray-400"}
}

// AvailableReactionsWithDetails returns the full type→details table for clients.
func AvailableReactionsWithDetails() map[string]ReactionDetails {
	out := make(map[string]ReactionDetails, len(reactionDetails))
	for k, v := range reactionDetails {
		out[k] = v
	}
	return out
}
