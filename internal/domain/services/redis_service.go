package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AndyM2023/geoasistencia/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// Cache key prefixes
const (
	dashboardStatsKey = "dashboard:stats"
	todayCountKeyFmt  = "attendance:today_count:%s"
	faceStatusKeyFmt  = "face_status:%d"
	dashboardStatsTTL = 60 * time.Second
	todayCountTTL     = 30 * time.Second
	faceStatusTTL     = 5 * time.Minute
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Ping() error
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheDashboardStats(stats interface{}) error
	GetDashboardStats(dest interface{}) error
	InvalidateDashboardStats() error
	CacheTodayCount(date string, count int64) error
	GetTodayCount(date string) (int64, error)
	CacheFaceStatus(employeeID uint, status interface{}) error
	GetFaceStatus(employeeID uint, dest interface{}) error
	InvalidateFaceStatus(employeeID uint) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// 1 Ping checks the Redis connection
func (s *RedisService) Ping() error {
	return s.Client.Ping(s.Ctx).Err()
}

// 2 Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// 3 Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// 4 Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// 5 CacheDashboardStats caches the dashboard summary
func (s *RedisService) CacheDashboardStats(stats interface{}) error {
	return s.Set(dashboardStatsKey, stats, dashboardStatsTTL)
}

// 6 GetDashboardStats reads the cached dashboard summary
func (s *RedisService) GetDashboardStats(dest interface{}) error {
	return s.Get(dashboardStatsKey, dest)
}

// 7 InvalidateDashboardStats drops the cached dashboard summary
func (s *RedisService) InvalidateDashboardStats() error {
	return s.Delete(dashboardStatsKey)
}

// 8 CacheTodayCount caches the attendance count of one date
func (s *RedisService) CacheTodayCount(date string, count int64) error {
	key := fmt.Sprintf(todayCountKeyFmt, date)
	return s.Client.Set(s.Ctx, key, count, todayCountTTL).Err()
}

// 9 GetTodayCount reads the cached attendance count of one date
func (s *RedisService) GetTodayCount(date string) (int64, error) {
	key := fmt.Sprintf(todayCountKeyFmt, date)
	return s.Client.Get(s.Ctx, key).Int64()
}

// 10 CacheFaceStatus caches the face profile status of an employee
func (s *RedisService) CacheFaceStatus(employeeID uint, status interface{}) error {
	return s.Set(fmt.Sprintf(faceStatusKeyFmt, employeeID), status, faceStatusTTL)
}

// 11 GetFaceStatus reads the cached face profile status of an employee
func (s *RedisService) GetFaceStatus(employeeID uint, dest interface{}) error {
	return s.Get(fmt.Sprintf(faceStatusKeyFmt, employeeID), dest)
}

// 12 InvalidateFaceStatus drops the cached face status of an employee.
// Called after retraining so a stale status is never served.
func (s *RedisService) InvalidateFaceStatus(employeeID uint) error {
	return s.Delete(fmt.Sprintf(faceStatusKeyFmt, employeeID))
}
