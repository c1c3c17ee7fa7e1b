package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodrankr/backend/internal/core/domain"
)

type CompanyRequestRepository struct {
	coll *mongo.Collection
}

func NewCompanyRequestRepository(db *mongo.Database) *CompanyRequestRepository {
	return &CompanyRequestRepository{coll: db.Collection(collectionRequests)}
}

type mongoCompanyRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Country     string             `bson:"country"`
	RequestedBy *string            `bson:"requested_by"`
	Requesters  []string           `bson:"requesters,omitempty"`
	Approved    bool               `bson:"approved"`
	CompanyID   *string            `bson:"company_id,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m mongoCompanyRequest) toDomain() *domain.PendingCompanyRequest {
	return &domain.PendingCompanyRequest{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Country:     m.Country,
		RequestedBy: m.RequestedBy,
		Requesters:  m.Requesters,
		Approved:    m.Approved,
		CompanyID:   m.CompanyID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (r *CompanyRequestRepository) Create(ctx context.Context, req *domain.PendingCompanyRequest) (*domain.PendingCompanyRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCompanyRequest{
		Name:        req.Name,
		Country:     req.Country,
		RequestedBy: req.RequestedBy,
		Requesters:  req.Requesters,
		Approved:    req.Approved,
		CompanyID:   req.CompanyID,
		CreatedAt:   req.CreatedAt.UTC(),
		UpdatedAt:   req.UpdatedAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert company request: %w", err)
	}

	created := doc.toDomain()
	created.ID = insertedHex(res)
	return created, nil
}

func (r *CompanyRequestRepository) FindByID(ctx context.Context, id string) (*domain.PendingCompanyRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CompanyRequestRepository) FindOpen(ctx context.Context, name, country string) (*domain.PendingCompanyRequest, error) {
	return r.findOne(ctx, bson.M{"name": name, "country": country, "approved": false})
}

func (r *CompanyRequestRepository) findOne(ctx context.Context, filter bson.M) (*domain.PendingCompanyRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoCompanyRequest
	if err := r.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find company request: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CompanyRequestRepository) AddRequester(ctx context.Context, id, email string, ts time.Time) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$addToSet": bson.M{"requesters": email},
			"$set":      bson.M{"updated_at": ts.UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add company requester: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *CompanyRequestRepository) ListOpen(ctx context.Context) ([]*domain.PendingCompanyRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"approved": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("list company requests: %w", err)
	}
	defer cur.Close(ctx)

	requests := make([]*domain.PendingCompanyRequest, 0)
	for cur.Next(ctx) {
		var m mongoCompanyRequest
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode company request: %w", err)
		}
		requests = append(requests, m.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return requests, nil
}

func (r *CompanyRequestRepository) MarkApproved(ctx context.Context, id, companyID string, ts time.Time) (*domain.PendingCompanyRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoCompanyRequest
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"approved": true, "company_id": companyID, "updated_at": ts.UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("approve company request: %w", err)
	}
	return m.toDomain(), nil
}

func (r *CompanyRequestRepository) CountOpen(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{"approved": false})
}
