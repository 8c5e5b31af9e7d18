package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/tbxark/intakeagent/address"
	"github.com/tbxark/intakeagent/agent"
	"github.com/tbxark/intakeagent/config"
	"github.com/tbxark/intakeagent/console"
	"github.com/tbxark/intakeagent/reply"
)

func main() {
	conf := flag.String("config", "", "path to an optional JSON config file")
	flag.Parse()
	cfg, err := config.Load(*conf)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	err = startApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("start app: %v", err)
	}
}

func startApp(ctx context.Context, cfg *config.Config) error {
	slog.SetLogLoggerLevel(cfg.LogLevel)
	slog.Debug("Loaded config", "config", cfg.String())

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return err
	}
	geocoder := address.NewGoogleGeocoder(address.GoogleConfig{
		APIKey:  cfg.GoogleMapsAPIKey,
		Timeout: cfg.Timeout,
	})
	replyOptions := []reply.GeneratorOption{reply.WithTemperature(cfg.Temperature)}
	if cfg.HistoryWindow > 0 {
		replyOptions = append(replyOptions, reply.WithHistoryWindow(reply.KeepSystemLastNTrimmer{N: cfg.HistoryWindow}))
	}
	orchestrator, err := agent.NewToolBasedOrchestrator(cm, geocoder, agent.WithReplyOptions(replyOptions...))
	if err != nil {
		return err
	}

	_, err = console.New(orchestrator, os.Stdin, os.Stdout).Run(ctx)
	return err
}
