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

const collectionProviders = "providers"

// ProviderRepository stores venue-provider accounts in their own collection.
type ProviderRepository struct {
	coll *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{coll: db.Collection(collectionProviders)}
}

type mongoProvider struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	FirstName    string              `bson:"firstName"`
	MiddleName   string              `bson:"middleName,omitempty"`
	LastName     string              `bson:"lastName"`
	Email        string              `bson:"email"`
	Phone        string              `bson:"phone"`
	PasswordHash string              `bson:"passwordHash,omitempty"`
	BusinessName string              `bson:"businessName"`
	BusinessType domain.BusinessType `bson:"businessType"`
	Description  string              `bson:"description,omitempty"`
	Website      string              `bson:"website,omitempty"`
	Address      domain.Address      `bson:"address"`
	ProfileImage string              `bson:"profileImage,omitempty"`
	CoverImage   string              `bson:"coverImage,omitempty"`
	IsApproved   bool                `bson:"isApproved"`
	IsVerified   bool                `bson:"isVerified"`
	IsActive     bool                `bson:"isActive"`
	Documents    []domain.Document   `bson:"documents"`
	CreatedAt    time.Time           `bson:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt"`
}

func (m mongoProvider) toDomain() *domain.Provider {
	return &domain.Provider{
		ID:           m.ID.Hex(),
		FirstName:    m.FirstName,
		MiddleName:   m.MiddleName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		PasswordHash: m.PasswordHash,
		BusinessName: m.BusinessName,
		BusinessType: m.BusinessType,
		Description:  m.Description,
		Website:      m.Website,
		Address:      m.Address,
		ProfileImage: m.ProfileImage,
		CoverImage:   m.CoverImage,
		IsApproved:   m.IsApproved,
		IsVerified:   m.IsVerified,
		IsActive:     m.IsActive,
		Documents:    m.Documents,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// publicFilter is the catalog visibility rule.
func publicFilter() bson.M {
	return bson.M{"isApproved": true, "isActive": true}
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoProvider{
		ID:           primitive.NewObjectID(),
		FirstName:    p.FirstName,
		MiddleName:   p.MiddleName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		PasswordHash: p.PasswordHash,
		BusinessName: p.BusinessName,
		BusinessType: p.BusinessType,
		Description:  p.Description,
		Website:      p.Website,
		Address:      p.Address,
		ProfileImage: p.ProfileImage,
		CoverImage:   p.CoverImage,
		IsApproved:   p.IsApproved,
		IsVerified:   p.IsVerified,
		IsActive:     p.IsActive,
		Documents:    p.Documents,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if doc.Documents == nil {
		doc.Documents = []domain.Document{}
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("insert provider: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*domain.Provider, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

func (r *ProviderRepository) FindByEmail(ctx context.Context, email string) (*domain.Provider, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

func (r *ProviderRepository) FindApproved(ctx context.Context, id string) (*domain.Provider, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	filter := publicFilter()
	filter["_id"] = oid
	return r.findOne(ctx, filter, withoutPassword)
}

func (r *ProviderRepository) findOne(ctx context.Context, filter bson.M, projection any) (*domain.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	var mp mongoProvider
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&mp); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, fmt.Errorf("find provider: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProviderRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone, excludeID string) (bool, error) {
	if email == "" && phone == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, identityFilter(email, phone, excludeID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count providers: %w", err)
	}
	return n > 0, nil
}

func (r *ProviderRepository) Update(ctx context.Context, id string, u domain.ProviderUpdate) (*domain.Provider, error) {
	set := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	setString("firstName", u.FirstName)
	setString("middleName", u.MiddleName)
	setString("lastName", u.LastName)
	setString("phone", u.Phone)
	setString("businessName", u.BusinessName)
	setString("description", u.Description)
	setString("website", u.Website)
	setString("profileImage", u.ProfileImage)
	setString("coverImage", u.CoverImage)
	if u.BusinessType != nil {
		set["businessType"] = *u.BusinessType
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	return r.updateOne(ctx, id, bson.M{"$set": set})
}

func (r *ProviderRepository) UpdateStatus(ctx context.Context, id string, status domain.ProviderStatus) (*domain.Provider, error) {
	set := bson.M{}
	if status.IsApproved != nil {
		set["isApproved"] = *status.IsApproved
	}
	if status.IsActive != nil {
		set["isActive"] = *status.IsActive
	}
	return r.updateOne(ctx, id, bson.M{"$set": set})
}

// AddDocuments appends docs and returns the full document list.
func (r *ProviderRepository) AddDocuments(ctx context.Context, id string, docs []domain.Document) ([]domain.Document, error) {
	p, err := r.updateOne(ctx, id, bson.M{"$push": bson.M{"documents": bson.M{"$each": docs}}})
	if err != nil {
		return nil, err
	}
	return p.Documents, nil
}

func (r *ProviderRepository) updateOne(ctx context.Context, id string, update bson.M) (*domain.Provider, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
		update["$set"] = set
	}
	set["updatedAt"] = time.Now().UTC()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)
	var mp mongoProvider
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mp); err != nil {
		switch {
		case isNoDocuments(err):
			return nil, domain.ErrProviderNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("update provider: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrProviderNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete provider: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

// ListApproved pages through the public catalog, newest first.
func (r *ProviderRepository) ListApproved(ctx context.Context, f domain.ProviderFilter) ([]*domain.Provider, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := publicFilter()
	if f.BusinessType != "" {
		filter["businessType"] = f.BusinessType
	}
	if f.City != "" {
		filter["address.city"] = containsFold(f.City)
	}
	if f.State != "" {
		filter["address.state"] = containsFold(f.State)
	}
	if f.Search != "" {
		re := containsFold(f.Search)
		filter["$or"] = bson.A{
			bson.M{"businessName": re},
			bson.M{"description": re},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count providers: %w", err)
	}

	opts := options.Find().
		SetProjection(bson.M{"passwordHash": 0, "documents": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find providers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoProvider
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode providers: %w", err)
	}
	out := make([]*domain.Provider, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, total, nil
}

// FindActor loads the provider identity projection. Approval and the active
// flag come from the stored record, never from the token.
func (r *ProviderRepository) FindActor(ctx context.Context, id string) (*domain.Actor, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	p, err := r.findOne(ctx, bson.M{"_id": oid}, bson.M{
		"email": 1, "firstName": 1, "lastName": 1, "isApproved": 1, "isActive": 1,
	})
	if err != nil {
		return nil, err
	}
	actor := domain.ActorFromProvider(p)
	return &actor, nil
}

func (r *ProviderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isApproved", Value: 1}, {Key: "isActive", Value: 1}, {Key: "businessType", Value: 1}}},
		{Keys: bson.D{{Key: "address.city", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("providers indexes: %w", err)
	}
	return nil
}
