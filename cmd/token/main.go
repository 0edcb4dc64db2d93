// コマンドtokenは履歴変更APIに使用するBearerトークンを発行します。
//
// 使い方:
//
//	JWT_SECRET=... go run ./cmd/token -subject operator -ttl 720h
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	jwtmw "chili_backend/internal/platform/jwt"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Fatalf("%s is not set", jwtmw.EnvKeyJWTSecret)
	}

	gen := jwtmw.NewGenerator(secret, *ttl)
	token, err := gen.GenerateToken(*subject)
	if err != nil {
		log.Fatalf("token generation failed: %v", err)
	}

	fmt.Println(token)
}
