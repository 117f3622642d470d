//go:build integration_test || all_tests

package testinternals

import (
	"context"
	"fmt"
	"log"

	"github.com/2beens/gymlog/internal/db"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.uber.org/multierr"
)

const TestDBName = "gymlog"

// Containers holds the docker resources started for integration tests.
type Containers struct {
	dockerPool *dockertest.Pool
	teardown   []func() error

	PostgresPort string
	RedisPort    string
	DB           *pgxpool.Pool
	RedisClient  *redis.Client
}

func NewContainers() (*Containers, error) {
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %w", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %w", err)
	}
	return &Containers{dockerPool: dockerPool}, nil
}

func (c *Containers) DBParams() db.NewDBPoolParams {
	return db.NewDBPoolParams{
		DBHost: "localhost",
		DBPort: c.PostgresPort,
		DBName: TestDBName,
		DBUser: "postgres",
	}
}

// StartPostgres runs a postgres container and migrates it to the latest
// schema version.
func (c *Containers) StartPostgres(ctx context.Context) error {
	pgResource, err := c.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "12",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + TestDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return fmt.Errorf("dockerpool run postgres: %w", err)
	}
	c.teardown = append(c.teardown, pgResource.Close)
	c.PostgresPort = pgResource.GetPort("5432/tcp")

	dbPool, err := db.NewDBPool(ctx, c.DBParams())
	if err != nil {
		return err
	}
	c.teardown = append(c.teardown, func() error {
		dbPool.Close()
		return nil
	})

	if err := c.dockerPool.Retry(func() error {
		return dbPool.Ping(ctx)
	}); err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}

	if err := db.RunMigrations(c.DBParams().ConnString()); err != nil {
		return err
	}

	c.DB = dbPool
	return nil
}

func (c *Containers) StartRedis(ctx context.Context) error {
	redisResource, err := c.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return fmt.Errorf("run redis: %w", err)
	}
	c.teardown = append(c.teardown, redisResource.Close)
	c.RedisPort = redisResource.GetPort("6379/tcp")

	rdb := redis.NewClient(&redis.Options{
		Addr: "localhost:" + c.RedisPort,
	})
	c.teardown = append(c.teardown, rdb.Close)

	if err := c.dockerPool.Retry(func() error {
		return rdb.Ping(ctx).Err()
	}); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}

	c.RedisClient = rdb
	return nil
}

// CreateUser inserts a user row and returns its id.
func (c *Containers) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	err := c.DB.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id;`,
		username, passwordHash,
	).Scan(&id)
	return id, err
}

// Close stops the containers in reverse start order.
func (c *Containers) Close() {
	var err error
	for i := len(c.teardown) - 1; i >= 0; i-- {
		err = multierr.Append(err, c.teardown[i]())
	}
	if err != nil {
		log.Printf("containers teardown: %s", err)
	}
}
