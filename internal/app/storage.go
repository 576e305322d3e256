package app

import (
	"context"
	"fmt"

	"github.com/mx-space/linkpage/internal/config"
	"github.com/mx-space/linkpage/internal/database"
	pkgredis "github.com/mx-space/linkpage/internal/pkg/redis"
	"github.com/mx-space/linkpage/internal/store"
)

// openStore builds the blob store selected by storage.driver. The returned
// close func may be nil.
func openStore(ctx context.Context, cfg *config.AppConfig, rc *pkgredis.Client) (store.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return store.NewMemoryStore(), nil, nil

	case config.DriverFile:
		fs, err := store.NewFileStore(cfg.DataDir())
		return fs, nil, err

	case config.DriverMySQL:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewGormStore(db), func() error { return database.Close(db) }, nil

	case config.DriverRedis:
		if rc == nil {
			return nil, nil, fmt.Errorf("redis driver selected but redis is not connected")
		}
		return store.NewRedisStore(rc.Raw()), nil, nil

	case config.DriverMongo:
		client, err := store.ConnectMongo(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return store.NewMongoStore(coll), func() error { return client.Disconnect(context.Background()) }, nil

	case config.DriverS3:
		client, err := store.NewS3Client(store.S3Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Prefix:          cfg.S3.Prefix,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return store.NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
