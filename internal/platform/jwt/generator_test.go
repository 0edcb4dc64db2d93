package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestGenerateToken は生成されたトークンが正しいクレームを持ち、
// 同じ秘密鍵で検証できることを検証します。
func TestGenerateToken(t *testing.T) {
	t.Parallel()

	const secret = "test-secret"
	gen := NewGenerator(secret, time.Hour)

	tokenStr, err := gen.GenerateToken("operator")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if tokenStr == "" {
		t.Fatal("expected non-empty token")
	}

	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected token to be valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected MapClaims")
	}
	if claims["sub"] != "operator" {
		t.Errorf("expected sub %q, got %v", "operator", claims["sub"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("expected exp claim to be set")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		t.Error("expected expiration to be in the future")
	}
	if _, ok := claims["iat"].(float64); !ok {
		t.Error("expected iat claim to be set")
	}
}

// TestGenerateToken_WrongSecret は異なる秘密鍵では検証に失敗することを検証します。
func TestGenerateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	tokenStr, err := gen.GenerateToken("operator")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		return []byte("another-secret"), nil
	})
	if err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}
