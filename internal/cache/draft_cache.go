package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"surveykit/internal/model"

	"github.com/redis/go-redis/v9"
)

// DraftCache keeps a respondent's unsubmitted answers between requests, so a
// login redirect does not lose them
type DraftCache interface {
	Get(ctx context.Context, surveyID, draftKey string) (*model.DraftAnswers, error)
	Set(ctx context.Context, draft *model.DraftAnswers) error
	Delete(ctx context.Context, surveyID, draftKey string) error
}

type draftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a new draft answer cache
func NewDraftCache(client *redis.Client, ttl time.Duration) DraftCache {
	return &draftCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *draftCache) key(surveyID, draftKey string) string {
	return fmt.Sprintf("draft:%s:%s", surveyID, draftKey)
}

func (c *draftCache) Get(ctx context.Context, surveyID, draftKey string) (*model.DraftAnswers, error) {
	data, err := c.client.Get(ctx, c.key(surveyID, draftKey)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft model.DraftAnswers
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *draftCache) Set(ctx context.Context, draft *model.DraftAnswers) error {
	draft.UpdatedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(draft.SurveyID, draft.DraftKey), data, c.ttl).Err()
}

func (c *draftCache) Delete(ctx context.Context, surveyID, draftKey string) error {
	return c.client.Del(ctx, c.key(surveyID, draftKey)).Err()
}
