// internal/app/store/records/recordstore.go
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrMalformedID  = errors.New("malformed record id")
)

// ValidationError reports the required fields a document was missing.
// Nothing is written when it is returned.
type ValidationError struct {
	Collection string
	Missing    []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: missing required fields: %s",
		e.Collection, strings.Join(e.Missing, ", "))
}

// Schema declares a collection and the fields the store enforces on it.
type Schema struct {
	Collection string
	Required   []string
	Unique     []string
}

// IndexModels returns one unique index per declared unique field, named
// "<field>_1" like the driver default.
func (s Schema) IndexModels() []mongo.IndexModel {
	models := make([]mongo.IndexModel, 0, len(s.Unique))
	for _, f := range s.Unique {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: f, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(f + "_1"),
		})
	}
	return models
}

// Store is a typed view over one collection. T must encode to a BSON
// document whose absent fields are omitted (omitempty), since presence is
// what Create checks.
type Store[T any] struct {
	c      *mongo.Collection
	schema Schema
}

func New[T any](db *mongo.Database, schema Schema) *Store[T] {
	return &Store[T]{c: db.Collection(schema.Collection), schema: schema}
}

// Create validates required fields, assigns an ObjectID when the document
// has none, and inserts it.
func (s *Store[T]) Create(ctx context.Context, doc T) (T, error) {
	var zero T
	d, err := toDoc(doc)
	if err != nil {
		return zero, err
	}
	if missing := missingFields(d, s.schema.Required); len(missing) > 0 {
		return zero, &ValidationError{Collection: s.schema.Collection, Missing: missing}
	}
	if _, ok := lookup(d, "_id"); !ok {
		d = append(bson.D{{Key: "_id", Value: primitive.NewObjectID()}}, d...)
	}
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return zero, fmt.Errorf("%s: %w", s.schema.Collection, ErrDuplicateKey)
		}
		return zero, err
	}
	return fromDoc[T](d)
}

// FindOne returns the first document matching filter. No ordering is
// applied, so callers should filter on a unique field.
func (s *Store[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var out T
	err := s.c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// FindByID looks a document up by the hex form of its ObjectID.
func (s *Store[T]) FindByID(ctx context.Context, hex string) (T, error) {
	var zero T
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return zero, fmt.Errorf("%w: %q", ErrMalformedID, hex)
	}
	return s.FindOne(ctx, bson.M{"_id": oid})
}

// FindAndReplace sets the fields of the first document matching filter
// and returns the updated document. Keys used by the filter (and _id) are
// never overwritten. With nothing left to set it behaves as FindOne.
func (s *Store[T]) FindAndReplace(ctx context.Context, filter bson.M, fields any) (T, error) {
	var out T
	d, err := toDoc(fields)
	if err != nil {
		return out, err
	}
	set := make(bson.D, 0, len(d))
	for _, e := range d {
		if _, inFilter := filter[e.Key]; inFilter || e.Key == "_id" {
			continue
		}
		set = append(set, e)
	}
	if len(set) == 0 {
		return s.FindOne(ctx, filter)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.c.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&out)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return out, ErrNotFound
	case err != nil && wafflemongo.IsDup(err):
		return out, fmt.Errorf("%s: %w", s.schema.Collection, ErrDuplicateKey)
	}
	return out, err
}

// Exists reports whether any document matches filter.
func (s *Store[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	err := s.c.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindInto decodes every match into out, which must be a pointer to a
// slice. Use it with a projection to read a reduced shape.
func (s *Store[T]) FindInto(ctx context.Context, filter bson.M, out any, opts ...*options.FindOptions) error {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}

func toDoc(v any) (bson.D, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

func fromDoc[T any](d bson.D) (T, error) {
	var out T
	raw, err := bson.Marshal(d)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}

func lookup(d bson.D, key string) (any, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// missingFields lists required keys that are absent, null, or an empty
// string, in declaration order.
func missingFields(d bson.D, required []string) []string {
	var missing []string
	for _, f := range required {
		v, ok := lookup(d, f)
		if !ok || v == nil {
			missing = append(missing, f)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
