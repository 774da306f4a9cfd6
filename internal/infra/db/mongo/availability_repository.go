package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "nomadstay/internal/domain/availability"
	domainlistings "nomadstay/internal/domain/listings"
	"nomadstay/internal/domain/shared/caldate"
)

// AvailabilityRepository persists one document per listing holding the whole
// open-date set. Dates are stored as ISO strings so the document stays
// readable and sortable.
type AvailabilityRepository struct {
	col *mongo.Collection
}

func NewAvailabilityRepository(db *mongo.Database) *AvailabilityRepository {
	return &AvailabilityRepository{col: db.Collection("agg_availability")}
}

func (r *AvailabilityRepository) Calendar(ctx context.Context, id domainlistings.ListingID) (*domainavailability.Calendar, error) {
	var doc availabilityDocument
	err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domainavailability.NewCalendar(id, nil), nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toAggregate()
}

func (r *AvailabilityRepository) Save(ctx context.Context, c *domainavailability.Calendar) error {
	doc := newAvailabilityDocument(c)
	filter := bson.M{"_id": doc.ID, "version": c.Version}
	doc.Version = c.Version + 1
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
	c.Version = doc.Version
	return nil
}

type availabilityDocument struct {
	ID      string   `bson:"_id"`
	Dates   []string `bson:"dates"`
	Version int64    `bson:"version"`
}

func newAvailabilityDocument(c *domainavailability.Calendar) availabilityDocument {
	open := c.OpenDates()
	dates := make([]string, 0, len(open))
	for _, d := range open {
		dates = append(dates, d.String())
	}
	return availabilityDocument{ID: string(c.ListingID), Dates: dates, Version: c.Version}
}

func (d availabilityDocument) toAggregate() (*domainavailability.Calendar, error) {
	dates := make([]caldate.Date, 0, len(d.Dates))
	for _, s := range d.Dates {
		parsed, err := caldate.Parse(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, parsed)
	}
	c := domainavailability.NewCalendar(domainlistings.ListingID(d.ID), dates)
	c.Version = d.Version
	return c, nil
}
