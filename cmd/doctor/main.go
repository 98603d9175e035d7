// Command doctor checks that every configured backing service is reachable
// with the current .env before the API is started.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xyz-asif/nagaralert/internal/config"
	"github.com/xyz-asif/nagaralert/internal/database"
	"github.com/xyz-asif/nagaralert/internal/features/verify"
	"github.com/xyz-asif/nagaralert/internal/live"
	"github.com/xyz-asif/nagaralert/internal/pkg/cloudinary"
	"github.com/xyz-asif/nagaralert/internal/pkg/s3"
)

type check struct {
	name string
	skip string
	run  func(ctx context.Context) error
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	checks := []check{
		{name: "Firebase", run: func(ctx context.Context) error {
			fb, err := database.ConnectFirebase(ctx, cfg.FirebaseServiceAccountPath, cfg.FirebaseDBURL)
			if err != nil {
				return err
			}
			if fb.DB == nil {
				return nil
			}
			var probe interface{}
			return fb.DB.NewRef("reports").OrderByKey().LimitToFirst(1).Get(ctx, &probe)
		}},
		{name: "MongoDB", skip: skipUnless(cfg.StoreDriver == config.StoreMongo, "STORE_DRIVER is not mongo"), run: func(ctx context.Context) error {
			m, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
			if err != nil {
				return err
			}
			return m.Disconnect(ctx)
		}},
		{name: "Cloudinary", skip: skipUnless(cfg.StorageDriver == config.StorageCloudinary, "STORAGE_DRIVER is not cloudinary"), run: func(context.Context) error {
			_, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
			return err
		}},
		{name: "S3", skip: skipUnless(cfg.StorageDriver == config.StorageS3, "STORAGE_DRIVER is not s3"), run: func(ctx context.Context) error {
			_, err := s3.NewService(ctx, s3.ClientConfig{
				Bucket:        cfg.S3Bucket,
				Endpoint:      cfg.S3Endpoint,
				Region:        cfg.S3Region,
				AccessKey:     cfg.S3AccessKey,
				SecretKey:     cfg.S3SecretKey,
				PublicBaseURL: cfg.S3PublicBaseURL,
			})
			return err
		}},
		{name: "Gemini", skip: skipUnless(cfg.GeminiAPIKey != "", "GEMINI_API_KEY not set"), run: func(ctx context.Context) error {
			_, err := verify.NewGeminiVerifier(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			return err
		}},
		{name: "Redis", skip: skipUnless(cfg.RedisAddr != "", "REDIS_ADDR not set"), run: func(ctx context.Context) error {
			r, err := live.NewRedisRelay(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel)
			if err != nil {
				return err
			}
			return r.Close()
		}},
	}

	failed := 0
	for _, c := range checks {
		if c.skip != "" {
			fmt.Printf("-  %-10s skipped (%s)\n", c.name, c.skip)
			continue
		}
		if err := c.run(ctx); err != nil {
			failed++
			fmt.Printf("✗  %-10s %v\n", c.name, err)
			continue
		}
		fmt.Printf("✓  %-10s ok\n", c.name)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func skipUnless(enabled bool, reason string) string {
	if enabled {
		return ""
	}
	return reason
}
