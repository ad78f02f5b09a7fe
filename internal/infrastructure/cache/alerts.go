package cache

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"sales-daily-report/internal/domain/report"
)

// AlertStore keeps report alerts in redis, one key per alert, expiring with
// the alert itself.
type AlertStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewAlertStore(rdb *redis.Client) *AlertStore {
	return &AlertStore{rdb: rdb, now: time.Now}
}

func alertKey(userID, alertID string) string { return "alerts:" + userID + ":" + alertID }

func (s *AlertStore) Save(ctx context.Context, a report.Alert) error {
	ttl := a.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, alertKey(a.UserID, a.AlertID), payload, ttl).Err()
}

// ListByUser returns the live alerts of a user, newest report date first.
func (s *AlertStore) ListByUser(ctx context.Context, userID string) ([]report.Alert, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, alertKey(userID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	out := make([]report.Alert, 0, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue // expired between SCAN and MGET
		}
		var a report.Alert
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.After(out[j].ReportDate) })
	return out, nil
}
