package mongo

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venuehub/booking-api/internal/core/domain"
)

const collectionVenues = "venues"

// VenueRepository stores venues. Documents use hex string ids so the domain
// struct round-trips without a mapping type.
type VenueRepository struct {
	col *mongo.Collection
}

func NewVenueRepository(db *mongo.Database) *VenueRepository {
	return &VenueRepository{col: db.Collection(collectionVenues)}
}

// Create inserts v and assigns its id.
func (r *VenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	if v.Images == nil {
		v.Images = []domain.VenueImage{}
	}
	if _, err := r.col.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

func (r *VenueRepository) FindByID(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Venue
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, fmt.Errorf("find venue: %w", err)
	}
	return &v, nil
}

// List returns a page of venues matching filter and the total count.
func (r *VenueRepository) List(ctx context.Context, f domain.VenueFilter) ([]*domain.Venue, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := venueFilter(f)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count venues: %w", err)
	}

	order := 1
	if f.SortDesc {
		order = -1
	}
	sortKey := f.SortBy
	if sortKey == "" {
		sortKey = "createdAt"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortKey, Value: order}, {Key: "_id", Value: order}}).
		SetSkip(skip(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find venues: %w", err)
	}
	defer cursor.Close(ctx)

	venues := make([]*domain.Venue, 0, f.Limit)
	if err := cursor.All(ctx, &venues); err != nil {
		return nil, 0, fmt.Errorf("decode venues: %w", err)
	}
	return venues, total, nil
}

// venueFilter translates the catalog query. MinCapacity keeps venues able to
// hold that many guests; MaxCapacity keeps venues whose minimum does not
// exceed it. Unknown facility keys are ignored.
func venueFilter(f domain.VenueFilter) bson.M {
	filter := bson.M{}
	if f.ProviderID != "" {
		filter["providerId"] = f.ProviderID
	}
	if f.Active != nil {
		filter["isActive"] = *f.Active
	}
	if f.City != "" {
		filter["address.city"] = containsFold(f.City)
	}
	if f.State != "" {
		filter["address.state"] = containsFold(f.State)
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["basePrice"] = price
	}

	if f.MinCapacity != nil {
		filter["capacity.maxGuests"] = bson.M{"$gte": *f.MinCapacity}
	}
	if f.MaxCapacity != nil {
		filter["capacity.minGuests"] = bson.M{"$lte": *f.MaxCapacity}
	}

	for _, name := range f.Facilities {
		if slices.Contains(domain.FacilityNames, name) {
			filter["facilities."+name] = true
		}
	}
	return filter
}

// Replace overwrites the stored venue with v (matched by v.ID).
func (r *VenueRepository) Replace(ctx context.Context, v *domain.Venue) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	v.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return fmt.Errorf("replace venue: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

// EnsureIndexes creates the catalog indexes on the venues collection.
func (r *VenueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "address.city", Value: 1}}},
		{Keys: bson.D{{Key: "basePrice", Value: 1}}},
		{Keys: bson.D{{Key: "averageRating", Value: -1}}},
	}
	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("venues indexes: %w", err)
	}
	return nil
}
