package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CachedScan is what gets remembered for an already-decoded image, so
// re-uploads of the same photo skip the decode cascade.
type CachedScan struct {
	Payload  string `json:"payload"`
	Strategy string `json:"strategy"`
}

var ErrCacheMiss = errors.New("scan not cached")

type IRedis interface {
	SetScan(ctx context.Context, imageHash string, scan CachedScan, expiration time.Duration) error
	GetScan(ctx context.Context, imageHash string) (CachedScan, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func scanKey(imageHash string) string {
	return "scan:sha256:" + imageHash
}

func (r *redisClient) SetScan(ctx context.Context, imageHash string, scan CachedScan, expiration time.Duration) error {
	data, err := json.Marshal(scan)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, scanKey(imageHash), data, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching scan for %s: %v", imageHash, err))
		return err
	}

	return nil
}

func (r *redisClient) GetScan(ctx context.Context, imageHash string) (CachedScan, error) {
	val, err := r.client.Get(ctx, scanKey(imageHash)).Result()
	if errors.Is(err, redis.Nil) {
		return CachedScan{}, ErrCacheMiss
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading scan cache for %s: %v", imageHash, err))
		return CachedScan{}, err
	}

	var scan CachedScan
	if err := json.Unmarshal([]byte(val), &scan); err != nil {
		return CachedScan{}, err
	}

	return scan, nil
}
