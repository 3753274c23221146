package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/postika/console/config"
	redisadapter "github.com/postika/console/internal/adapters/redis"
	"github.com/postika/console/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"list-sessions": {
			name:        "list-sessions",
			description: "List live console sessions in Redis",
			run:         runListSessions,
		},
		"purge-session": {
			name:        "purge-session",
			description: "Delete a session by ID, forcing a fresh sign-in",
			run:         runPurgeSession,
		},
		"flush-membership-cache": {
			name:        "flush-membership-cache",
			description: "Drop cached memberships for a tenant",
			run:         runFlushMembershipCache,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: console-admin <command> [args]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-24s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func connect(ctx *commandContext) (redis.UniversalClient, error) {
	return bootstrap.ConnectRedis(ctx.Config.Redis, ctx.Logger)
}

func runListSessions(ctx *commandContext, _ []string) error {
	client, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	store := redisadapter.NewSessionStore(client)
	sessions, err := store.List(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "SESSION ID\tEMAIL\tACTIVE TENANT\tEXPIRES\n"); err != nil {
		return err
	}
	for _, s := range sessions {
		if err := writef(tw, "%s\t%s\t%s\t%s\n",
			s.ID, s.User.Email, s.ActiveTenantID,
			s.ExpiresAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runPurgeSession(ctx *commandContext, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: console-admin purge-session <session-id>")
	}

	client, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	store := redisadapter.NewSessionStore(client)
	if err := store.Delete(ctx.Ctx, args[0]); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return writef(os.Stdout, "session %s purged\n", args[0])
}

func runFlushMembershipCache(ctx *commandContext, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: console-admin flush-membership-cache <tenant-id>")
	}

	client, err := connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	cache := redisadapter.NewMembershipCache(client)
	if err := cache.InvalidateTenant(ctx.Ctx, args[0]); err != nil {
		return fmt.Errorf("invalidate tenant cache: %w", err)
	}
	return writef(os.Stdout, "membership cache flushed for tenant %s\n", args[0])
}
