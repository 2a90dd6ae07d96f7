package redis

import (
	"context"
	"testing"
	"time"

	"github.com/cylondata/docnav/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: time.Second,
		RetryInterval:  100 * time.Millisecond,
		MaxWait:        time.Second,
		PingTimeout:    100 * time.Millisecond,
		WarnThreshold:  3,
	}
}

func TestConnectOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *ConnectOptions)
		wantErr bool
	}{
		{name: "valid", mutate: func(o *ConnectOptions) {}},
		{name: "missing addr", mutate: func(o *ConnectOptions) { o.Addr = "" }, wantErr: true},
		{name: "zero connect timeout", mutate: func(o *ConnectOptions) { o.ConnectTimeout = 0 }, wantErr: true},
		{name: "zero retry interval", mutate: func(o *ConnectOptions) { o.RetryInterval = 0 }, wantErr: true},
		{name: "zero max wait", mutate: func(o *ConnectOptions) { o.MaxWait = 0 }, wantErr: true},
		{name: "zero ping timeout", mutate: func(o *ConnectOptions) { o.PingTimeout = 0 }, wantErr: true},
		{name: "negative warn threshold", mutate: func(o *ConnectOptions) { o.WarnThreshold = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := validOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNextWait(t *testing.T) {
	if got := nextWait(time.Second, 10*time.Second); got != 2*time.Second {
		t.Errorf("nextWait() = %v, want 2s", got)
	}
	if got := nextWait(8*time.Second, 10*time.Second); got != 10*time.Second {
		t.Errorf("nextWait() = %v, want cap 10s", got)
	}
}

func TestTimeLeft(t *testing.T) {
	if got := timeLeft(context.Background()); got != 0 {
		t.Errorf("timeLeft() without deadline = %v, want 0", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if got := timeLeft(ctx); got <= 0 || got > time.Minute {
		t.Errorf("timeLeft() = %v, want within (0, 1m]", got)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	opts := validOptions()
	opts.PingTimeout = 0

	if _, err := New(context.Background(), opts, logger.NewNop()); err == nil {
		t.Error("New() with invalid options should fail")
	}
}

func TestNewGivesUpWhenUnreachable(t *testing.T) {
	opts := validOptions()
	opts.Addr = "127.0.0.1:1" // nothing listens on port 1
	opts.ConnectTimeout = 300 * time.Millisecond
	opts.DialTimeout = 50 * time.Millisecond

	if _, err := New(context.Background(), opts, logger.NewNop()); err == nil {
		t.Error("New() against an unreachable address should fail")
	}
}
