package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"newsfox/internal/domain/entity"
	"newsfox/internal/infra/notifier"
)

type fakeWarmService struct {
	failed      int
	err         error
	calls       atomic.Int32
	gotCats     []entity.Category
	gotParallel int
	hasDeadline bool
}

func (f *fakeWarmService) Warm(ctx context.Context, cats []entity.Category, parallelism int) (int, error) {
	f.calls.Add(1)
	f.gotCats = cats
	f.gotParallel = parallelism
	_, f.hasDeadline = ctx.Deadline()
	return f.failed, f.err
}

func newTestWarmer(svc WarmService, buf *bytes.Buffer) *Warmer {
	return &Warmer{
		Service:    svc,
		Categories: entity.Categories(),
		Config:     DefaultConfig(),
		Metrics:    globalTestMetrics,
		Logger:     slog.New(slog.NewJSONHandler(buf, nil)),
	}
}

func TestWarmer_RunOnce(t *testing.T) {
	var buf bytes.Buffer
	svc := &fakeWarmService{}
	w := newTestWarmer(svc, &buf)

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.gotCats) != 7 {
		t.Errorf("expected 7 categories, got %d", len(svc.gotCats))
	}
	if svc.gotParallel != 2 {
		t.Errorf("expected parallelism 2, got %d", svc.gotParallel)
	}
	if !svc.hasDeadline {
		t.Error("expected warm context to carry the warm timeout")
	}
	if !strings.Contains(buf.String(), "cache warm completed") {
		t.Errorf("expected completion log, got %s", buf.String())
	}
}

func TestWarmer_RunOnce_PartialFailureWarns(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWarmer(&fakeWarmService{failed: 3}, &buf)

	if err := w.RunOnce(context.Background()); err != nil {
		t.Fatalf("partial failure should not be an error: %v", err)
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) || !strings.Contains(buf.String(), `"failed":3`) {
		t.Errorf("expected warn log with failed count, got %s", buf.String())
	}
}

func TestWarmer_RunOnce_ErrorIsSanitized(t *testing.T) {
	var buf bytes.Buffer
	w := newTestWarmer(&fakeWarmService{err: errors.New("GET https://gnews.io/api/v4/top-headlines?apikey=secret123: timeout")}, &buf)

	if err := w.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(buf.String(), "secret123") {
		t.Errorf("api key leaked into logs: %s", buf.String())
	}
}

type recordingNotifier struct {
	alerts []notifier.Alert
	err    error
	ctxErr error
}

func (r *recordingNotifier) Notify(ctx context.Context, a notifier.Alert) error {
	r.alerts = append(r.alerts, a)
	r.ctxErr = ctx.Err()
	return r.err
}

func TestWarmer_Alerts(t *testing.T) {
	tests := []struct {
		name      string
		svc       *fakeWarmService
		wantTitle string
	}{
		{name: "success sends nothing", svc: &fakeWarmService{}},
		{name: "partial failure", svc: &fakeWarmService{failed: 2}, wantTitle: "Cache warm incomplete"},
		{name: "run error", svc: &fakeWarmService{failed: 7, err: context.DeadlineExceeded}, wantTitle: "Cache warm failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n := &recordingNotifier{}
			w := newTestWarmer(tt.svc, &buf)
			w.Notifier = n

			_ = w.RunOnce(context.Background())

			if tt.wantTitle == "" {
				if len(n.alerts) != 0 {
					t.Fatalf("expected no alert, got %+v", n.alerts)
				}
				return
			}
			if len(n.alerts) != 1 {
				t.Fatalf("expected 1 alert, got %d", len(n.alerts))
			}
			a := n.alerts[0]
			if a.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", a.Title, tt.wantTitle)
			}
			if a.Failed != tt.svc.failed || a.Total != 7 {
				t.Errorf("counts = %d/%d, want %d/7", a.Failed, a.Total, tt.svc.failed)
			}
		})
	}
}

func TestWarmer_AlertSurvivesCanceledRun(t *testing.T) {
	var buf bytes.Buffer
	n := &recordingNotifier{err: errors.New("webhook 500")}
	w := newTestWarmer(&fakeWarmService{err: context.Canceled}, &buf)
	w.Notifier = n

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = w.RunOnce(ctx)

	if len(n.alerts) != 1 {
		t.Fatalf("expected alert after canceled run, got %d", len(n.alerts))
	}
	if n.ctxErr != nil {
		t.Errorf("alert context should not inherit cancellation: %v", n.ctxErr)
	}
	if !strings.Contains(buf.String(), "failure alert not delivered") {
		t.Errorf("expected delivery failure log, got %s", buf.String())
	}
}

func TestWarmer_Schedule(t *testing.T) {
	var buf bytes.Buffer
	svc := &fakeWarmService{}
	w := newTestWarmer(svc, &buf)
	w.Config.CronSchedule = "@every 50ms"

	c, err := w.Schedule(context.Background())
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	c.Start()
	deadline := time.Now().Add(3 * time.Second)
	for svc.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	<-c.Stop().Done()

	if svc.calls.Load() == 0 {
		t.Error("expected scheduled warm run")
	}
}

func TestWarmer_Schedule_Errors(t *testing.T) {
	var buf bytes.Buffer

	w := newTestWarmer(&fakeWarmService{}, &buf)
	w.Config.Timezone = "Nowhere/City"
	if _, err := w.Schedule(context.Background()); err == nil {
		t.Error("expected timezone error")
	}

	w = newTestWarmer(&fakeWarmService{}, &buf)
	w.Config.CronSchedule = "not a schedule"
	if _, err := w.Schedule(context.Background()); err == nil {
		t.Error("expected cron error")
	}
}
