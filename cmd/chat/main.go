package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/wrenb/chatcomplete/internal/config"
	"github.com/wrenb/chatcomplete/internal/observability/metrics"
	"github.com/wrenb/chatcomplete/internal/openai"
	"github.com/wrenb/chatcomplete/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	system := flag.String("system", "", "optional system prompt")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: chat [-system prompt] <message...>")
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	if cfg.OpenAIAPIKey == "" {
		logger.Error("OPENAI_API_KEY not set")
		os.Exit(1)
	}

	client := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	})
	chat := openai.NewInstrumentedClient(client, cfg.OpenAIModel, metrics.NewCompletionMetrics(nil))

	conv := openai.Conversation{}
	if *system != "" {
		conv = append(conv, openai.Message{Role: openai.RoleSystem, Content: *system})
	}
	conv = append(conv, openai.Message{Role: openai.RoleUser, Content: strings.Join(flag.Args(), " ")})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OpenAITimeout)
	defer cancel()

	resp, err := chat.CompleteChat(ctx, conv)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			logger.Error("completion failed", "kind", string(apiErr.Kind), "error", err)
		} else {
			logger.Error("completion failed", "error", err)
		}
		os.Exit(1)
	}

	choice, err := resp.FirstChoice()
	if err != nil {
		logger.Error("completion succeeded but carried no choices", "id", resp.ID)
		os.Exit(1)
	}

	fmt.Println(choice.Message.Content)
	fmt.Fprintf(os.Stderr, "tokens: prompt=%d completion=%d total=%d\n",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
}
