package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mansoorceksport/totality/internal/catalog"
	"github.com/mansoorceksport/totality/internal/config"
	"github.com/mansoorceksport/totality/internal/domain"
	"github.com/mansoorceksport/totality/internal/logger"
	"github.com/mansoorceksport/totality/internal/repository"
	"github.com/mansoorceksport/totality/internal/server"
	"github.com/mansoorceksport/totality/internal/service"
)

func main() {
	root := &cobra.Command{
		Use:   "seed-exercises",
		Short: "Seed and inspect the canonical exercise catalog",
	}
	root.AddCommand(runCmd(), statusCmd(), validateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

type stores struct {
	cfg   *config.Config
	log   *logger.Logger
	mongo *mongo.Client
	redis *redis.Client
	db    *mongo.Database
}

func connect(ctx context.Context) (*stores, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	appLog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Mongo: %w", err)
	}
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &stores{
		cfg:   cfg,
		log:   appLog,
		mongo: client,
		redis: redisClient,
		db:    client.Database(cfg.MongoDB.Database),
	}, nil
}

func (s *stores) close(ctx context.Context) {
	s.redis.Close()
	s.mongo.Disconnect(ctx)
	s.log.Sync()
}

// exercises goes through the same Redis-cached store the API reads from, so
// seeding retires any listing the API cached while the store was empty.
func (s *stores) exercises() domain.ExerciseRepository {
	exercises, _ := server.Repositories(server.AppDependencies{
		Config:      s.cfg,
		MongoDB:     s.db,
		RedisClient: s.redis,
		Logger:      s.log,
	})
	return exercises
}

func (s *stores) flags() *repository.RedisSeedFlagStore {
	return repository.NewRedisSeedFlagStore(s.redis, s.cfg.Seed.FlagKey, s.cfg.Seed.LockTTL, catalog.Version())
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Seed the catalog if this installation has not been seeded",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			s, err := connect(ctx)
			if err != nil {
				return err
			}
			defer s.close(context.Background())

			seeder := service.NewCatalogSeeder(s.exercises(), s.flags(), catalog.All(), s.log)
			result, err := seeder.SeedIfNeeded(ctx)
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", result.Reason)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d exercises\n", result.Inserted)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the seed flag and exercise count",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			s, err := connect(ctx)
			if err != nil {
				return err
			}
			defer s.close(context.Background())

			version, err := s.flags().SeededVersion(ctx)
			if err != nil {
				return err
			}
			count, err := s.exercises().Count(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "catalog version\t%d\n", catalog.Version())
			fmt.Fprintf(w, "seeded version\t%d\n", version)
			fmt.Fprintf(w, "exercises stored\t%d\n", count)
			return w.Flush()
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Materialize every catalog entry without touching a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			byImplement := make(map[string]int)
			for _, def := range catalog.All() {
				ex, err := def.Materialize()
				if err != nil {
					return err
				}
				byImplement[ex.ImplementRaw]++
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, implement := range sortedKeys(byImplement) {
				fmt.Fprintf(w, "%s\t%d\n", implement, byImplement[implement])
			}
			fmt.Fprintf(w, "total\t%d\n", len(catalog.All()))
			return w.Flush()
		},
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
