package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinevault/movie-catalog/internal/core/domain"
	"github.com/cinevault/movie-catalog/internal/core/ports"
)

const moviesCollection = "movies"

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(moviesCollection)}
}

type mongoMovie struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	OriginalTitle string             `bson:"original_title"`
	ReleaseDate   time.Time          `bson:"release_date"`
	Description   string             `bson:"description"`
	Duration      int                `bson:"duration"`
	Budget        *int64             `bson:"budget,omitempty"`
	Revenue       *int64             `bson:"revenue,omitempty"`
	Votes         *int64             `bson:"votes,omitempty"`
	Score         *float64           `bson:"score,omitempty"`
	Rating        string             `bson:"rating,omitempty"`
	Genre         string             `bson:"genre,omitempty"`
	Language      string             `bson:"language,omitempty"`
	PosterKey     string             `bson:"poster_key,omitempty"`
	UserID        string             `bson:"user_id"`
	DeletedAt     *time.Time         `bson:"deleted_at"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// notDeleted is the single soft-delete predicate applied by every read and
// write path. A null deleted_at also matches documents missing the field.
func notDeleted() bson.M {
	return bson.M{"deleted_at": nil}
}

// ownedAlive scopes a mutation to one live row owned by userID, so the
// ownership check and the write are a single conditional round trip.
func ownedAlive(id primitive.ObjectID, userID string) bson.M {
	return bson.M{"_id": id, "user_id": userID, "deleted_at": nil}
}

func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoMovie(m)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *m
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID retrieves a non-deleted movie regardless of owner.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := notDeleted()
	filter["_id"] = oid

	var doc mongoMovie
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	return fromMongoMovie(&doc), nil
}

// List returns a page of movies matching filter and the total count,
// newest first.
func (r *MovieRepository) List(ctx context.Context, f ports.ListMoviesFilter) ([]*domain.Movie, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildListFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((f.Page - 1) * f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var movies []*domain.Movie
	for cur.Next(ctx) {
		var doc mongoMovie
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		movies = append(movies, fromMongoMovie(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// UpdateOwned applies patch in one conditional write scoped to the owner and
// the soft-delete predicate, returning the updated document.
func (r *MovieRepository) UpdateOwned(ctx context.Context, id, userID string, patch ports.UpdateMoviePatch) (*domain.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := buildPatch(patch)
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoMovie
	err = r.col.FindOneAndUpdate(ctx, ownedAlive(oid, userID), bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}
	return fromMongoMovie(&doc), nil
}

// SoftDeleteOwned stamps deleted_at under the same single-round-trip
// ownership condition as UpdateOwned.
func (r *MovieRepository) SoftDeleteOwned(ctx context.Context, id, userID string) (time.Time, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return time.Time{}, domain.ErrMovieNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.col.UpdateOne(ctx, ownedAlive(oid, userID), bson.M{
		"$set": bson.M{"deleted_at": now, "updated_at": now},
	})
	if err != nil {
		return time.Time{}, err
	}
	if res.MatchedCount == 0 {
		return time.Time{}, domain.ErrMovieNotFound
	}
	return now, nil
}

// EnsureIndexes creates the indexes backing list filters and ownership writes.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "deleted_at", Value: 1}}},
		{Keys: bson.D{{Key: "release_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func buildListFilter(f ports.ListMoviesFilter) bson.M {
	filter := notDeleted()

	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"original_title": re},
		}
	}

	if f.MinDuration > 0 || f.MaxDuration > 0 {
		duration := bson.M{}
		if f.MinDuration > 0 {
			duration["$gte"] = f.MinDuration
		}
		if f.MaxDuration > 0 {
			duration["$lte"] = f.MaxDuration
		}
		filter["duration"] = duration
	}

	if f.StartDate != nil || f.EndDate != nil {
		release := bson.M{}
		if f.StartDate != nil {
			release["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			release["$lte"] = *f.EndDate
		}
		filter["release_date"] = release
	}

	if f.Genre != "" {
		filter["genre"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Genre), Options: "i"}
	}

	return filter
}

// buildPatch maps non-nil patch fields to a $set document. Owner and
// deleted_at are not reachable from here.
func buildPatch(p ports.UpdateMoviePatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.OriginalTitle != nil {
		set["original_title"] = *p.OriginalTitle
	}
	if p.ReleaseDate != nil {
		set["release_date"] = *p.ReleaseDate
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Duration != nil {
		set["duration"] = *p.Duration
	}
	if p.Budget != nil {
		set["budget"] = *p.Budget
	}
	if p.Revenue != nil {
		set["revenue"] = *p.Revenue
	}
	if p.Votes != nil {
		set["votes"] = *p.Votes
	}
	if p.Score != nil {
		set["score"] = *p.Score
	}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.Genre != nil {
		set["genre"] = *p.Genre
	}
	if p.Language != nil {
		set["language"] = *p.Language
	}
	if p.PosterKey != nil {
		set["poster_key"] = *p.PosterKey
	}
	return set
}

func toMongoMovie(m *domain.Movie) *mongoMovie {
	return &mongoMovie{
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		ReleaseDate:   m.ReleaseDate,
		Description:   m.Description,
		Duration:      m.Duration,
		Budget:        m.Budget,
		Revenue:       m.Revenue,
		Votes:         m.Votes,
		Score:         m.Score,
		Rating:        m.Rating,
		Genre:         m.Genre,
		Language:      m.Language,
		PosterKey:     m.PosterKey,
		UserID:        m.UserID,
		DeletedAt:     m.DeletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromMongoMovie(doc *mongoMovie) *domain.Movie {
	return &domain.Movie{
		ID:            doc.ID.Hex(),
		Title:         doc.Title,
		OriginalTitle: doc.OriginalTitle,
		ReleaseDate:   doc.ReleaseDate,
		Description:   doc.Description,
		Duration:      doc.Duration,
		Budget:        doc.Budget,
		Revenue:       doc.Revenue,
		Votes:         doc.Votes,
		Score:         doc.Score,
		Rating:        doc.Rating,
		Genre:         doc.Genre,
		Language:      doc.Language,
		PosterKey:     doc.PosterKey,
		UserID:        doc.UserID,
		DeletedAt:     doc.DeletedAt,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
