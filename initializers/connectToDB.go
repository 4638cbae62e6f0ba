package initializers

import (
	"context"
	"fmt"
	"log"

	"github.com/Kariqs/kartdaily-api/cache"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/Kariqs/kartdaily-api/store/memstore"
	"github.com/Kariqs/kartdaily-api/store/mongostore"
	"github.com/Kariqs/kartdaily-api/store/sqlstore"
	"github.com/redis/go-redis/v9"
)

const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// ConnectToDB opens the store selected by DB_DRIVER.
func ConnectToDB(ctx context.Context, cfg *Config) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.DBDriver {
	case DriverMongo:
		db, err = mongostore.Connect(ctx, cfg.MongoURI, cfg.DBName)
	case DriverMySQL:
		db, err = sqlstore.Connect(cfg.MySQLDSN)
	case DriverMemory:
		db = memstore.New()
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("Connected to %s database.", cfg.DBDriver)
	return db, nil
}

// ConnectToCache returns the Redis product cache, or a no-op cache when
// REDIS_ADDR is unset or the server cannot be reached. The close function is
// always safe to call.
func ConnectToCache(ctx context.Context, cfg *Config) (cache.ProductCache, func() error) {
	if cfg.RedisAddr == "" {
		return cache.Noop{}, func() error { return nil }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("Redis unavailable, product cache disabled:", err)
		_ = client.Close()
		return cache.Noop{}, func() error { return nil }
	}

	log.Println("Connected to Redis.")
	return cache.NewRedisCache(client), client.Close
}
