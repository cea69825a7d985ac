//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	appessay "essay-ai-api/internal/application/essay"
	"essay-ai-api/internal/application/quota"
	"essay-ai-api/internal/config"
	"essay-ai-api/internal/domain/repository"
	"essay-ai-api/internal/infrastructure/llm"
	"essay-ai-api/internal/infrastructure/persistence/postgres"
	"essay-ai-api/internal/infrastructure/persistence/redis"
	"essay-ai-api/internal/interfaces/http/handler"
	"essay-ai-api/internal/interfaces/http/middleware"
	"essay-ai-api/internal/interfaces/http/router"
	workflowport "essay-ai-api/internal/workflow/port"
	"essay-ai-api/pkg/logger"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		StorageSet,
		GenerationSet,
		RouterSet,
	)
	return nil, nil, nil
}

// StorageSet 存储提供者集合。
// Postgres 和 Redis 都是可降级依赖，连不上时服务照常启动，只丢历史与缓存。
var StorageSet = wire.NewSet(
	ProvidePostgresClientOptional,
	ProvideEssayRepository,
	ProvideLLMUsageRepository,
	ProvideRedisClientOptional,
	ProvideCacheOptional,
	ProvideRateLimiterOptional,
)

// GenerationSet 生成链路提供者集合
var GenerationSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	quota.NewUsageRecorder,
	appessay.NewGenerator,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewEssayHandler,
	handler.NewHealthHandler,
	wire.Struct(new(router.Dependencies), "*"),
	router.New,
)

// ProvidePostgresClientOptional 提供 PostgreSQL 客户端，不可达时降级为 nil
func ProvidePostgresClientOptional(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Warn(ctx, "postgres not available, essay history disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideEssayRepository 提供作文仓储，存储缺失时为 nil
func ProvideEssayRepository(client *postgres.Client) repository.EssayRepository {
	if client == nil {
		return nil
	}
	return postgres.NewEssayRepository(client)
}

// ProvideLLMUsageRepository 提供用量事件仓储，存储缺失时为 nil
func ProvideLLMUsageRepository(client *postgres.Client) repository.LLMUsageEventRepository {
	if client == nil {
		return nil
	}
	return postgres.NewLLMUsageEventRepository(client)
}

// ProvideRedisClientOptional 提供 Redis 客户端，不可达时降级为 nil
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, cache and rate limiting disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideCacheOptional 提供缓存服务
func ProvideCacheOptional(client *redis.Client) *redis.Cache {
	if client == nil {
		return nil
	}
	return redis.NewCache(client)
}

// ProvideRateLimiterOptional 提供限流器
func ProvideRateLimiterOptional(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}
