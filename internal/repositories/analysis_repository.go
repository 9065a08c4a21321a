package repositories

import (
	"context"
	"time"

	"github.com/pawtrail/pawtrail/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FoodAnalysisRepository defines the interface for analysis documents
type FoodAnalysisRepository interface {
	CreateAnalysis(ctx context.Context, analysis *models.FoodAnalysis) error
	GetAnalysesByPetID(ctx context.Context, petID string) ([]models.FoodAnalysis, error)
}

// MongoFoodAnalysisRepository implements FoodAnalysisRepository for MongoDB
type MongoFoodAnalysisRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodAnalysisRepository creates a new MongoFoodAnalysisRepository
func NewMongoFoodAnalysisRepository(db *mongo.Database) *MongoFoodAnalysisRepository {
	return &MongoFoodAnalysisRepository{collection: db.Collection("food_analyses")}
}

// CreateAnalysis stores a completed analysis in MongoDB
func (r *MongoFoodAnalysisRepository) CreateAnalysis(ctx context.Context, analysis *models.FoodAnalysis) error {
	analysis.ID = primitive.NewObjectID()
	analysis.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, analysis)
	return err
}

// GetAnalysesByPetID retrieves all analyses for a pet, newest first
func (r *MongoFoodAnalysisRepository) GetAnalysesByPetID(ctx context.Context, petID string) ([]models.FoodAnalysis, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"pet_id": petID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var analyses []models.FoodAnalysis
	if err = cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}
