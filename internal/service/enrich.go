package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/d60-Lab/postwatch/internal/repository"
	"github.com/d60-Lab/postwatch/pkg/metrics"
)

var tracer = otel.Tracer("github.com/d60-Lab/postwatch/internal/service")

// PostStatsReader 按公众号读取文章统计
type PostStatsReader interface {
	Stats(ctx context.Context, msgBiz string) (repository.PostStats, error)
}

// Enricher 为一页公众号补充文章统计，每个公众号的查询互不依赖，
// 以 workers 为上限并发执行。
type Enricher struct {
	stats   PostStatsReader
	workers int
}

// NewEnricher workers < 1 时按 1（顺序执行）处理
func NewEnricher(stats PostStatsReader, workers int) *Enricher {
	if workers < 1 {
		workers = 1
	}
	return &Enricher{stats: stats, workers: workers}
}

// Enrich 原地填充 views；任一查询失败则整体失败
func (e *Enricher) Enrich(ctx context.Context, views []ProfileView) error {
	ctx, span := tracer.Start(ctx, "Enricher.Enrich", trace.WithAttributes(
		attribute.Int("profiles", len(views)),
		attribute.Int("workers", e.workers),
	))
	defer span.End()

	start := time.Now()
	defer func() { metrics.EnrichDuration.Observe(time.Since(start).Seconds()) }()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range views {
		v := &views[i]
		if v.MsgBiz == "" {
			v.PostsAllCount, v.PostsHasDataCount = 0, 0
			v.NewestPostTime, v.OldestPostTime = nil, nil
			continue
		}
		g.Go(func() error {
			st, err := e.stats.Stats(gctx, v.MsgBiz)
			if err != nil {
				return storeErr("post stats", err)
			}
			v.PostsAllCount = st.AllCount
			v.PostsHasDataCount = st.HasDataCount
			v.NewestPostTime = st.Newest
			v.OldestPostTime = st.Oldest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "enrich failed")
		return err
	}
	return nil
}
