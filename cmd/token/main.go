package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"angellist_widget/internal/app/config"
	jwtmw "angellist_widget/internal/platform/jwt"
)

// token は編集APIを呼ぶためのBearerトークンを発行します。
//
//	go run ./cmd/token -sub editor@example.com -caps edit_posts
func main() {
	_ = godotenv.Load()

	sub := flag.String("sub", "editor", "token subject")
	caps := flag.String("caps", jwtmw.CapabilityEditPosts, "comma separated capabilities")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	flag.Parse()

	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	exp := cfg.Auth.TokenTTL
	if *ttl > 0 {
		exp = *ttl
	}

	var list []string
	for _, c := range strings.Split(*caps, ",") {
		if c = strings.TrimSpace(c); c != "" {
			list = append(list, c)
		}
	}

	token, err := jwtmw.NewGenerator(cfg.Auth.JWTSecret, exp).GenerateToken(*sub, list)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
