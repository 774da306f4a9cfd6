package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "nomadstay/internal/domain/booking"
	domainlistings "nomadstay/internal/domain/listings"
	domainpricing "nomadstay/internal/domain/pricing"
	"nomadstay/internal/domain/shared/caldate"
	domainrange "nomadstay/internal/domain/shared/daterange"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type BookingRepository struct {
	col      *mongo.Collection
	listings *ListingRepository
}

func NewBookingRepository(db *mongo.Database, listings *ListingRepository) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking"), listings: listings}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]*domainbooking.Booking, error) {
	return r.list(ctx, bson.M{"guest_id": guestID})
}

func (r *BookingRepository) ListByHost(ctx context.Context, host domainlistings.HostID) ([]*domainbooking.Booking, error) {
	hosted, err := r.listings.ByHost(ctx, host)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(hosted))
	for _, l := range hosted {
		ids = append(ids, string(l.ID))
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"listing_id": bson.M{"$in": ids}})
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		agg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, cursor.Err()
}

type bookingDocument struct {
	ID              string                  `bson:"_id"`
	ListingID       string                  `bson:"listing_id"`
	GuestID         string                  `bson:"guest_id"`
	Range           rangeDocument           `bson:"range"`
	GuestCount      int                     `bson:"guest_count"`
	FullName        string                  `bson:"full_name"`
	PhoneNumber     string                  `bson:"phone_number"`
	Notes           string                  `bson:"notes"`
	Price           domainpricing.Breakdown `bson:"price"`
	CancelledByHost bool                    `bson:"is_cancelled_by_host"`
	CreatedAt       int64                   `bson:"created_at"`
	UpdatedAt       int64                   `bson:"updated_at"`
	Version         int64                   `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	return bookingDocument{
		ID:              string(b.ID),
		ListingID:       string(b.ListingID),
		GuestID:         b.GuestID,
		Range:           rangeDocument{CheckIn: b.Range.CheckIn.String(), CheckOut: b.Range.CheckOut.String()},
		GuestCount:      b.GuestCount,
		FullName:        b.FullName,
		PhoneNumber:     b.PhoneNumber,
		Notes:           b.Notes,
		Price:           b.Price,
		CancelledByHost: b.CancelledByHost,
		CreatedAt:       b.CreatedAt.UnixMilli(),
		UpdatedAt:       b.UpdatedAt.UnixMilli(),
		Version:         b.Version,
	}
}

func (d bookingDocument) toAggregate() (*domainbooking.Booking, error) {
	checkIn, err := caldate.Parse(d.Range.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := caldate.Parse(d.Range.CheckOut)
	if err != nil {
		return nil, err
	}
	return &domainbooking.Booking{
		ID:              domainbooking.BookingID(d.ID),
		ListingID:       domainlistings.ListingID(d.ListingID),
		GuestID:         d.GuestID,
		Range:           domainrange.StayRange{CheckIn: checkIn, CheckOut: checkOut},
		GuestCount:      d.GuestCount,
		FullName:        d.FullName,
		PhoneNumber:     d.PhoneNumber,
		Notes:           d.Notes,
		Price:           d.Price,
		CancelledByHost: d.CancelledByHost,
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}, nil
}

type rangeDocument struct {
	CheckIn  string `bson:"check_in"`
	CheckOut string `bson:"check_out"`
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
