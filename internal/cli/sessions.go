package cli

import (
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizgen-service/internal/config"
	redisinfra "quizgen-service/internal/infra/redis"
)

// NewSessionsCmd lists quizzes currently being played on any instance sharing Redis.
func NewSessionsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List live play sessions recorded in Redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Redis.Addr == "" {
				return fmt.Errorf("redis addr not configured")
			}
			client := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer client.Close()

			store := redisinfra.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, 0))
			ids, err := store.Live(cmd.Context())
			if err != nil {
				return err
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
