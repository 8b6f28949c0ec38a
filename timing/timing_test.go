package timing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSleep(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if d := time.Since(start); d < 10*time.Millisecond {
		t.Fatalf("slept only %s", d)
	}

	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("zero sleep: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start = time.Now()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if d := time.Since(start); d > time.Second {
		t.Fatalf("cancelled sleep took %s", d)
	}
}

func TestEvery(t *testing.T) {
	ticker := Every(time.Millisecond)
	defer ticker.Stop()
	for i := 0; i < 3; i++ {
		select {
		case <-ticker.C():
		case <-time.After(time.Second):
			t.Fatalf("tick %d never arrived", i)
		}
	}
}

func TestWithTimeoutCompletes(t *testing.T) {
	v, err := WithTimeout(context.Background(), time.Second, func(context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || v != 42 {
		t.Fatalf("expected 42, got %d (%v)", v, err)
	}

	wantErr := errors.New("pin fault")
	_, err = WithTimeout(context.Background(), time.Second, func(context.Context) (struct{}, error) {
		return struct{}{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected operation error, got %v", err)
	}
}

func TestWithTimeoutExpires(t *testing.T) {
	var (
		observed = make(chan struct{})
		release  = make(chan struct{})
	)
	defer close(release)

	v, err := WithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(observed)
		<-release
		return 1, ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	var timeout *TimeoutError
	if !errors.As(err, &timeout) || timeout.After != 10*time.Millisecond {
		t.Fatalf("expected *TimeoutError after 10ms, got %#v", err)
	}
	if v != 0 {
		t.Fatalf("expected zero value on timeout, got %d", v)
	}

	select {
	case <-observed:
	case <-time.After(time.Second):
		t.Fatal("operation context was not cancelled")
	}
}

func TestWithTimeoutParentCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WithTimeout(ctx, time.Hour, func(context.Context) (int, error) {
		<-release
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) || errors.Is(err, ErrTimeout) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	var losersStopped atomic.Int32
	loser := func(ctx context.Context) error {
		<-ctx.Done()
		losersStopped.Add(1)
		return ctx.Err()
	}
	wantErr := errors.New("winner")

	i, err := Select(context.Background(), loser, func(context.Context) error {
		return wantErr
	}, loser)
	if i != 1 || !errors.Is(err, wantErr) {
		t.Fatalf("expected op 1 to win with its error, got %d (%v)", i, err)
	}
	if n := losersStopped.Load(); n != 2 {
		t.Fatalf("expected both losers stopped before Select returned, got %d", n)
	}
}

func TestSelectEmpty(t *testing.T) {
	if i, err := Select(context.Background()); i != -1 || err != nil {
		t.Fatalf("expected -1, nil; got %d, %v", i, err)
	}
}

func TestSelectParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	wait := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	if _, err := Select(ctx, wait, wait); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
