package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venuehub/booking-api/internal/core/domain"
)

const collectionOfferings = "services"

// OfferingRepository stores venue offerings in the "services" collection with
// hex string ids, like venues.
type OfferingRepository struct {
	col *mongo.Collection
}

func NewOfferingRepository(db *mongo.Database) *OfferingRepository {
	return &OfferingRepository{col: db.Collection(collectionOfferings)}
}

func (r *OfferingRepository) Create(ctx context.Context, o *domain.Offering) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if o.ID == "" {
		o.ID = primitive.NewObjectID().Hex()
	}
	if o.Inclusions == nil {
		o.Inclusions = []string{}
	}
	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert offering: %w", err)
	}
	return nil
}

func (r *OfferingRepository) FindByID(ctx context.Context, id string) (*domain.Offering, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Offering
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("find offering: %w", err)
	}
	return &o, nil
}

// List returns offerings newest first. A zero Limit returns every match.
func (r *OfferingRepository) List(ctx context.Context, f domain.OfferingFilter) ([]*domain.Offering, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := offeringFilter(f)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count offerings: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip(skip(f.Page, f.Limit)).SetLimit(int64(f.Limit))
	}
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find offerings: %w", err)
	}
	defer cursor.Close(ctx)

	out := []*domain.Offering{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode offerings: %w", err)
	}
	return out, total, nil
}

// offeringFilter translates the listing query. Name matches exactly, as the
// names form a closed set.
func offeringFilter(f domain.OfferingFilter) bson.M {
	filter := bson.M{}
	if f.VenueID != "" {
		filter["venueId"] = f.VenueID
	}
	if f.ProviderID != "" {
		filter["providerId"] = f.ProviderID
	}
	if f.Name != "" {
		filter["name"] = f.Name
	}
	if f.Active != nil {
		filter["isActive"] = *f.Active
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	return filter
}

func (r *OfferingRepository) Replace(ctx context.Context, o *domain.Offering) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	o.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return fmt.Errorf("replace offering: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete offering: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOfferingNotFound
	}
	return nil
}

func (r *OfferingRepository) DeleteByVenue(ctx context.Context, venueID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"venueId": venueID})
	if err != nil {
		return 0, fmt.Errorf("delete venue offerings: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *OfferingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "venueId", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "price", Value: 1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("services indexes: %w", err)
	}
	return nil
}
