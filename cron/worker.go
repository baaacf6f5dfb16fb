package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"stayease/config"
	userRepo "stayease/database/repository/user"
	"stayease/services/tasks"
)

// QueueRedisOpt returns the redis connection the task queue runs on.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitCleanupWorker runs the async cleanup worker in background. It consumes
// the favorites fan-out tasks enqueued when a hotel is soft-deleted.
func InitCleanupWorker(users userRepo.UserRepository) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCleanupFavorites, handleCleanupFavorites(users))

	go func() {
		logger := zap.L().Sugar()
		logger.Info("cleanup worker starting")

		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Warnf("cleanup worker attempt %d/%d failed: %v", attempts, maxAttempts, err)
			if attempts == maxAttempts {
				logger.Fatal("cleanup worker could not start, giving up")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handleCleanupFavorites(users userRepo.UserRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CleanupFavoritesPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			zap.L().Error("cleanup task has invalid payload", zap.Error(err))
			return err
		}

		touched, err := users.RemoveFavoriteFromAll(ctx, p.HotelID)
		if err != nil {
			zap.L().Warn("favorites cleanup failed, will retry",
				zap.String("hotelID", p.HotelID), zap.Error(err))
			return err
		}

		zap.L().Info("favorites cleanup done",
			zap.String("hotelID", p.HotelID), zap.Int64("usersTouched", touched))
		return nil
	}
}
