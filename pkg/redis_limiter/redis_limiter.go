package redis_limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ErrSlotsFull 推理槽位已满
var ErrSlotsFull = errors.New("推理并发已达上限")

// RedisLimiter 基于Redis的推理并发限制器
// 多个进程共享同一个模型服务时，用Redis计数器限制同时进行的前向计算数
type RedisLimiter struct {
	client        *redis.Client
	maxConcurrent int
	keyPrefix     string
	ttl           time.Duration
	logger        *logrus.Logger
}

// NewRedisLimiter 创建并发限制器
func NewRedisLimiter(client *redis.Client, maxConcurrent int, keyPrefix string, ttl time.Duration, logger *logrus.Logger) *RedisLimiter {
	return &RedisLimiter{
		client:        client,
		maxConcurrent: maxConcurrent,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
		logger:        logger,
	}
}

// acquireScript 原子地检查并占用槽位
// 当前计数小于上限时加1并刷新过期时间，否则返回超限值表示失败
var acquireScript = redis.NewScript(
	`local current = redis.call('GET', KEYS[1])
	if current == false then
		current = 0
	else
		current = tonumber(current)
	end

	if current >= tonumber(ARGV[1]) then
		return current + 1
	end

	local newCount = redis.call('INCR', KEYS[1])
	redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
	return newCount`,
)

// releaseScript 原子地释放槽位，归零时清理key
var releaseScript = redis.NewScript(
	`local count = redis.call('DECR', KEYS[1])
	if tonumber(count) <= 0 then
		redis.call('DEL', KEYS[1])
		return 0
	else
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
		return count
	end`,
)

// Acquire 获取推理槽位，槽位已满返回ErrSlotsFull
func (rl *RedisLimiter) Acquire(ctx context.Context, key string) error {
	redisKey := rl.keyPrefix + key

	result, err := acquireScript.Run(ctx, rl.client, []string{redisKey}, rl.maxConcurrent, int(rl.ttl.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("执行Lua脚本失败: %w", err)
	}

	newCount := int(result.(int64))
	if newCount > rl.maxConcurrent {
		rl.logger.WithFields(logrus.Fields{
			"model":   key,
			"current": newCount - 1,
			"max":     rl.maxConcurrent,
		}).Warn("推理槽位已满")
		return ErrSlotsFull
	}

	rl.logger.WithFields(logrus.Fields{
		"model":   key,
		"current": newCount,
		"max":     rl.maxConcurrent,
	}).Debug("获取推理槽位")
	return nil
}

// Release 释放推理槽位
func (rl *RedisLimiter) Release(ctx context.Context, key string) {
	redisKey := rl.keyPrefix + key

	result, err := releaseScript.Run(ctx, rl.client, []string{redisKey}, int(rl.ttl.Seconds())).Result()
	if err != nil {
		rl.logger.WithError(err).Warn("释放推理槽位失败")
		return
	}

	rl.logger.WithFields(logrus.Fields{
		"model":     key,
		"remaining": result.(int64),
	}).Debug("释放推理槽位")
}

// GetCurrent 获取当前占用的槽位数
func (rl *RedisLimiter) GetCurrent(ctx context.Context, key string) (int, error) {
	redisKey := rl.keyPrefix + key
	current, err := rl.client.Get(ctx, redisKey).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("获取当前并发数失败: %w", err)
	}
	return current, nil
}

// GetMaxConcurrent 获取最大并发数
func (rl *RedisLimiter) GetMaxConcurrent() int {
	return rl.maxConcurrent
}
