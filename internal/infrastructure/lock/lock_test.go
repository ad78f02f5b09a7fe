package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestLocal_SerializesSameKey(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Lock(ctx, ReportKey("r1"))
			if err != nil {
				t.Errorf("Lock: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	if maxInside != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxInside)
	}
	if n := l.held(); n != 0 {
		t.Fatalf("entries leaked: %d", n)
	}
}

func TestLocal_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	r1, err := l.Lock(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	defer r1()

	ctx2, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	r2, err := l.Lock(ctx2, "b")
	if err != nil {
		t.Fatalf("other key should be free: %v", err)
	}
	r2()
}

func TestLocal_ContextCancelled(t *testing.T) {
	l := NewLocal()
	release, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "k"); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("want ErrNotObtained, got %v", err)
	}

	release()
	release() // idempotent
	if n := l.held(); n != 0 {
		t.Fatalf("entries leaked: %d", n)
	}
}

func TestRedis_ObtainAndContend(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedis(rdb, 5*time.Second)
	l.retry = nil // fail fast on contention

	ctx := context.Background()
	release, err := l.Lock(ctx, ReportKey("r1"))
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if !mr.Exists(ReportKey("r1")) {
		t.Fatal("lock key should exist in redis")
	}

	if _, err := l.Lock(ctx, ReportKey("r1")); !errors.Is(err, ErrNotObtained) {
		t.Fatalf("second Lock: want ErrNotObtained, got %v", err)
	}

	release()
	if mr.Exists(ReportKey("r1")) {
		t.Fatal("lock key should be gone after release")
	}
	release2, err := l.Lock(ctx, ReportKey("r1"))
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	release2()
}
