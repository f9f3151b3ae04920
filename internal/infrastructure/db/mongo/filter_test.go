package mongo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/venuehub/booking-api/internal/core/domain"
)

func TestVenueFilter(t *testing.T) {
	minPrice, maxPrice := 1000.0, 5000.0
	minCap := 150
	active := true

	got := venueFilter(domain.VenueFilter{
		Active:      &active,
		City:        "Pune",
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		MinCapacity: &minCap,
		Facilities:  []string{"parking", "helipad"},
	})

	require.Equal(t, true, got["isActive"])
	require.Equal(t, primitive.Regex{Pattern: "Pune", Options: "i"}, got["address.city"])
	require.Equal(t, bson.M{"$gte": 1000.0, "$lte": 5000.0}, got["basePrice"])
	require.Equal(t, bson.M{"$gte": 150}, got["capacity.maxGuests"])
	require.NotContains(t, got, "capacity.minGuests")
	require.Equal(t, true, got["facilities.parking"])
	require.NotContains(t, got, "facilities.helipad")
	require.NotContains(t, got, "providerId")
}

func TestVenueFilter_Empty(t *testing.T) {
	require.Empty(t, venueFilter(domain.VenueFilter{}))
}

func TestIdentityFilter(t *testing.T) {
	self := primitive.NewObjectID()

	got := identityFilter("a@b.com", "", self.Hex())
	require.Equal(t, bson.A{bson.M{"email": "a@b.com"}}, got["$or"])
	require.Equal(t, bson.M{"$ne": self}, got["_id"])

	got = identityFilter("a@b.com", "9876543210", "not-an-id")
	require.Len(t, got["$or"], 2)
	require.NotContains(t, got, "_id")
}

func TestContainsFold_EscapesInput(t *testing.T) {
	require.Equal(t, `a\.b\*`, containsFold("a.b*").Pattern)
}

func TestObjectID(t *testing.T) {
	_, ok := objectID("xyz")
	require.False(t, ok)

	oid := primitive.NewObjectID()
	got, ok := objectID(oid.Hex())
	require.True(t, ok)
	require.Equal(t, oid, got)
}

func TestOfferingFilter(t *testing.T) {
	minPrice := 500.0
	active := false

	got := offeringFilter(domain.OfferingFilter{
		ProviderID: "p1",
		Name:       "wedding",
		MinPrice:   &minPrice,
		Active:     &active,
	})

	require.Equal(t, bson.M{
		"providerId": "p1",
		"name":       "wedding",
		"isActive":   false,
		"price":      bson.M{"$gte": 500.0},
	}, got)
	require.Empty(t, offeringFilter(domain.OfferingFilter{}))
}

func TestSkip(t *testing.T) {
	require.EqualValues(t, 0, skip(1, 10))
	require.EqualValues(t, 20, skip(3, 10))
	require.EqualValues(t, 0, skip(0, 10))
	require.EqualValues(t, 0, skip(2, 0))
}
