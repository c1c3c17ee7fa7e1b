package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

type RankRepository struct {
	coll *mongo.Collection
}

func NewRankRepository(db *mongo.Database) *RankRepository {
	return &RankRepository{coll: db.Collection(collectionRanks)}
}

// mongoRank keeps the date as a calendar string so equality filters match
// regardless of the time of day a rank was posted.
type mongoRank struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	CompanyID string             `bson:"company_id"`
	CafeName  string             `bson:"cafe_name"`
	Country   string             `bson:"country"`
	Date      string             `bson:"date"`
	Dish      string             `bson:"dish"`
	Rating    int                `bson:"rating"`
	ImageURL  *string            `bson:"image_url"`
	Comment   *string            `bson:"comment"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toMongoRank(fr *domain.FoodRank) mongoRank {
	return mongoRank{
		UserID:    fr.UserID,
		CompanyID: fr.CompanyID,
		CafeName:  fr.CafeName,
		Country:   fr.Country,
		Date:      fr.Date.Format(domain.RankDateLayout),
		Dish:      fr.Dish,
		Rating:    fr.Rating,
		ImageURL:  fr.ImageURL,
		Comment:   fr.Comment,
		CreatedAt: fr.CreatedAt.UTC(),
		UpdatedAt: fr.UpdatedAt.UTC(),
	}
}

func (mr mongoRank) toDomain() *domain.FoodRank {
	// Malformed legacy dates decode as the zero time.
	date, _ := time.Parse(domain.RankDateLayout, mr.Date)
	return &domain.FoodRank{
		ID:        mr.ID.Hex(),
		UserID:    mr.UserID,
		CompanyID: mr.CompanyID,
		CafeName:  mr.CafeName,
		Country:   mr.Country,
		Date:      date,
		Dish:      mr.Dish,
		Rating:    mr.Rating,
		ImageURL:  mr.ImageURL,
		Comment:   mr.Comment,
		CreatedAt: mr.CreatedAt.UTC(),
		UpdatedAt: mr.UpdatedAt.UTC(),
	}
}

func (r *RankRepository) Create(ctx context.Context, fr *domain.FoodRank) (*domain.FoodRank, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoRank(fr)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert rank: %w", err)
	}

	created := doc.toDomain()
	created.ID = insertedHex(res)
	return created, nil
}

func rankFilter(f ports.RankFilter) bson.M {
	filter := bson.M{}
	if f.CompanyID != "" {
		filter["company_id"] = f.CompanyID
	}
	if f.Date != nil {
		filter["date"] = f.Date.Format(domain.RankDateLayout)
	}
	return filter
}

func (r *RankRepository) List(ctx context.Context, f ports.RankFilter) ([]*domain.FoodRank, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := r.coll.Find(ctx, rankFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("list ranks: %w", err)
	}
	defer cur.Close(ctx)

	ranks := make([]*domain.FoodRank, 0)
	for cur.Next(ctx) {
		var mr mongoRank
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode rank: %w", err)
		}
		ranks = append(ranks, mr.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return ranks, nil
}

func (r *RankRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}
