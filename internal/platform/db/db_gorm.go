// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	historyadapters "chili_backend/internal/feature/history/adapters"
)

// Config はデータベース接続の設定です。
type Config struct {
	Driver       string // "mysql"（デフォルト）または "postgres"
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	InstanceName string // Cloud SQL Unixソケット接続用（mysqlのみ）
}

// LoadConfig は環境変数から接続設定を読み込みます。
func LoadConfig() Config {
	return Config{
		Driver:       os.Getenv("DB_DRIVER"),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN は設定からDSN文字列を生成します。
// mysqlではInstanceNameが設定されている場合、Cloud SQLのUnixソケット形式が優先されます。
func BuildDSN(cfg Config) string {
	if cfg.Driver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
	}
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// dialector はドライバ名に応じたGORM Dialectorを返します。
func dialector(cfg Config, dsn string) gorm.Dialector {
	if cfg.Driver == "postgres" {
		return gpostgres.Open(dsn)
	}
	return gmysql.Open(dsn)
}

// OpenDB は環境変数の設定でデータベースへ接続します。
// 起動直後はデータベースが未準備の場合があるため、60秒まで3秒間隔でリトライします。
// RUN_MIGRATIONS=true の場合のみAutoMigrateを実行します。
func OpenDB() *gorm.DB {
	cfg := LoadConfig()
	dsn := BuildDSN(cfg)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector(cfg, dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&historyadapters.HistoryModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
