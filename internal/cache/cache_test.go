package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"surveykit/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	max := 12 * time.Hour

	assert.Equal(t, max, SessionTTL(&model.Session{}, max, now))
	assert.Equal(t, time.Hour, SessionTTL(&model.Session{ExpiresAt: now.Add(time.Hour)}, max, now))
	assert.Equal(t, max, SessionTTL(&model.Session{ExpiresAt: now.Add(48 * time.Hour)}, max, now))
	assert.Equal(t, time.Second, SessionTTL(&model.Session{ExpiresAt: now.Add(-time.Minute)}, max, now))
}

// testRedis connects to REDIS_TEST_ADDR and skips when no server is there
func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestDraftCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewDraftCache(testRedis(t), time.Minute)

	draft := &model.DraftAnswers{
		SurveyID: "s-test",
		DraftKey: "k-test",
		Answers: map[int]model.AnswerValue{
			0: model.TextAnswer("Ada"),
			1: model.ChoicesAnswer("a", "b"),
			2: model.RatingAnswer(4),
		},
	}
	require.NoError(t, c.Set(ctx, draft))
	defer c.Delete(ctx, "s-test", "k-test")

	got, err := c.Get(ctx, "s-test", "k-test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft.Answers, got.Answers)

	require.NoError(t, c.Delete(ctx, "s-test", "k-test"))
	got, err = c.Get(ctx, "s-test", "k-test")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSessionCache(testRedis(t), time.Minute)

	s := &model.Session{ID: "sess-test", Token: "tok", User: model.User{ID: "u1", IsAdmin: true}}
	require.NoError(t, c.Set(ctx, s))
	defer c.Delete(ctx, s.ID)

	got, err := c.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.User, got.User)

	missing, err := c.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
