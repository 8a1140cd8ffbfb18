package leaderboard

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"quizapp/backend/models"
)

const keyPrefix = "leaderboard:"

// RedisBoard mirrors best scores into one sorted set per subject.
type RedisBoard struct {
	client *redis.Client
	users  UserLister
	ctx    context.Context
}

// NewRedisBoard wraps client. When users is not nil it is used to fill in
// display names.
func NewRedisBoard(client *redis.Client, users UserLister) *RedisBoard {
	return &RedisBoard{
		client: client,
		users:  users,
		ctx:    context.Background(),
	}
}

// Connect dials addr and checks it with PING.
func Connect(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func key(subject models.Subject) string {
	return keyPrefix + string(subject)
}

// Record stores best unless the set already holds a higher score.
func (b *RedisBoard) Record(subject models.Subject, username string, best float64) error {
	current, err := b.client.ZScore(b.ctx, key(subject), username).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err == nil && current >= best {
		return nil
	}
	return b.client.ZAdd(b.ctx, key(subject), redis.Z{Score: best, Member: username}).Err()
}

// Top reads the whole set so that ties at the cutoff are broken by
// username the same way StoreBoard does.
func (b *RedisBoard) Top(subject models.Subject, limit int) ([]models.LeaderboardEntry, error) {
	results, err := b.client.ZRevRangeWithScores(b.ctx, key(subject), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	names, err := b.names()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(results))
	for _, z := range results {
		username, _ := z.Member.(string)
		entries = append(entries, models.LeaderboardEntry{
			Username: username,
			Name:     names[username],
			Subject:  subject,
			Best:     z.Score,
		})
	}
	return rank(entries, limit), nil
}

func (b *RedisBoard) names() (map[string]string, error) {
	if b.users == nil {
		return nil, nil
	}
	users, err := b.users.Users()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.Username] = u.Name
	}
	return names, nil
}

// Sync overwrites the sorted sets with the store's best scores in one
// pipeline. The store is authoritative.
func (b *RedisBoard) Sync(users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	pipe := b.client.Pipeline()
	for _, u := range users {
		for _, subject := range models.Subjects() {
			pipe.ZAdd(b.ctx, key(subject), redis.Z{Score: u.BestScore(subject), Member: u.Username})
		}
	}
	_, err := pipe.Exec(b.ctx)
	return err
}

func (b *RedisBoard) Close() error {
	return b.client.Close()
}
