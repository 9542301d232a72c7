package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type IRedis interface {
	SetBuildStatus(ctx context.Context, buildID string, status string, expiration time.Duration) error
	GetBuildStatus(ctx context.Context, buildID string) (string, error)
}

var ErrBuildStatusNotFound = errors.New("build status not found")

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

func buildStatusKey(buildID string) string {
	return "dataset_build:" + buildID
}

func (r *redisClient) SetBuildStatus(ctx context.Context, buildID string, status string, expiration time.Duration) error {
	err := r.client.Set(ctx, buildStatusKey(buildID), status, expiration).Err()
	if err != nil {
		logrus.Error(fmt.Sprintf("Error setting build status for %s: %v", buildID, err))
		return err
	}
	return nil
}

func (r *redisClient) GetBuildStatus(ctx context.Context, buildID string) (string, error) {
	status, err := r.client.Get(ctx, buildStatusKey(buildID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrBuildStatusNotFound
		}
		logrus.Error(fmt.Sprintf("Error getting build status for %s: %v", buildID, err))
		return "", err
	}
	return status, nil
}
