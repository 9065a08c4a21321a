package models

import (
	"time"

	"github.com/pawtrail/pawtrail/backend/pkg/gemini"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodAnalysis is one completed label analysis stored in MongoDB.
// Immutable after creation.
type FoodAnalysis struct {
	ID        primitive.ObjectID    `json:"id,omitempty" bson:"_id,omitempty"`
	PetID     string                `json:"pet_id" bson:"pet_id"`
	PhotoURL  string                `json:"photo_url" bson:"photo_url"`
	Result    gemini.AnalysisResult `json:"result" bson:"result"`
	CreatedAt time.Time             `json:"created_at" bson:"created_at"`
}
