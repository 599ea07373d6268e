package repository

import (
	"context"
	"time"

	"surveykit/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DraftRepo handles MongoDB operations for author survey drafts
type DraftRepo interface {
	Create(ctx context.Context, draft *model.SurveyDraft) (string, error)
	GetByID(ctx context.Context, id string) (*model.SurveyDraft, error)
	GetByOwner(ctx context.Context, owner string) ([]*model.SurveyDraft, error)
	Update(ctx context.Context, draft *model.SurveyDraft) error
	Delete(ctx context.Context, id string) error
}

type draftRepo struct {
	collection *mongo.Collection
}

// NewDraftRepo creates a new draft repository
func NewDraftRepo(db *mongo.Database) DraftRepo {
	return &draftRepo{
		collection: db.Collection("drafts"),
	}
}

func (r *draftRepo) Create(ctx context.Context, draft *model.SurveyDraft) (string, error) {
	now := time.Now()
	draft.ID = ""
	draft.CreatedAt = now
	draft.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, draft)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	draft.ID = oid.Hex()
	return draft.ID, nil
}

func (r *draftRepo) GetByID(ctx context.Context, id string) (*model.SurveyDraft, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var draft model.SurveyDraft
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&draft)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	draft.ID = id
	return &draft, nil
}

func (r *draftRepo) GetByOwner(ctx context.Context, owner string) ([]*model.SurveyDraft, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	drafts := []*model.SurveyDraft{}
	if err := cursor.All(ctx, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *draftRepo) Update(ctx context.Context, draft *model.SurveyDraft) error {
	oid, err := primitive.ObjectIDFromHex(draft.ID)
	if err != nil {
		return err
	}

	draft.UpdatedAt = time.Now()
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"survey":      draft.Survey,
		"template":    draft.Template,
		"publishedId": draft.PublishedID,
		"updatedAt":   draft.UpdatedAt,
	}})
	return err
}

func (r *draftRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
