package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/five82/mamba/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mamba: %v\n", err)
		return 1
	}
	return 0
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:  "mamba",
		Usage: "Track review and upload progress of short-form videos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "override config path (default ~/.config/mamba/config.toml)",
				Sources: cli.EnvVars("MAMBA_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "prefs",
				Usage: "override UI preferences path",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Sources: cli.EnvVars("MAMBA_LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return app.Run(ctx, options(cmd))
		},
		Commands: []*cli.Command{
			{
				Name:  "summary",
				Usage: "Print one user's dashboard and exit",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{Name: "platform", Aliases: []string{"p"}, Value: "Instagram"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return app.Summary(ctx, options(cmd), app.SummaryRequest{
						User:     cmd.String("user"),
						Platform: cmd.String("platform"),
					}, os.Stdout, os.Stderr)
				},
			},
			{
				Name:  "add",
				Usage: "Add a video without opening the dashboard",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Aliases: []string{"u"}, Required: true},
					&cli.StringFlag{Name: "platform", Aliases: []string{"p"}, Value: "Instagram"},
					&cli.StringFlag{Name: "profile", Usage: "slot 1, 2 or 3", Value: "1"},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "link", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return app.Add(ctx, options(cmd), app.AddRequest{
						User:     cmd.String("user"),
						Platform: cmd.String("platform"),
						Profile:  cmd.String("profile"),
						Title:    cmd.String("title"),
						Link:     cmd.String("link"),
					}, os.Stdout, os.Stderr)
				},
			},
		},
	}
}

func options(cmd *cli.Command) app.Options {
	return app.Options{
		ConfigPath: cmd.String("config"),
		PrefsPath:  cmd.String("prefs"),
		LogLevel:   cmd.String("log-level"),
	}
}
