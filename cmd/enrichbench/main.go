package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/d60-Lab/postwatch/config"
	"github.com/d60-Lab/postwatch/internal/model"
	"github.com/d60-Lab/postwatch/internal/repository"
	"github.com/d60-Lab/postwatch/internal/service"
	"github.com/d60-Lab/postwatch/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// 对比顺序统计与并发统计下公众号列表一页的耗时
//
//	PROFILES 公众号数  POSTS 每号文章数  PAGE 每页条数
//	ROUNDS 每组请求次数  WORKERS 并发统计的上限
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := database.AutoMigrate(db); err != nil {
		panic(err)
	}

	profilesN := envInt("PROFILES", 200)
	postsPer := envInt("POSTS", 50)
	page := envInt("PAGE", 20)
	rounds := envInt("ROUNDS", 50)
	workers := envInt("WORKERS", 8)

	ctx := context.Background()
	postRepo := repository.NewPostRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	// seed: 每个公众号 POSTS 篇文章，约一半有阅读数
	t0 := time.Now()
	base := time.Now().Add(-90 * 24 * time.Hour)
	profiles := make([]*model.Profile, 0, profilesN)
	for i := 0; i < profilesN; i++ {
		biz := fmt.Sprintf("bench_%s", model.NewID())
		opened := base.Add(time.Duration(rand.Intn(90*24)) * time.Hour)
		profiles = append(profiles, &model.Profile{MsgBiz: biz, Title: "bench " + strconv.Itoa(i), OpenHistoryPageAt: &opened})

		posts := make([]*model.Post, postsPer)
		for j := range posts {
			pub := base.Add(time.Duration(rand.Intn(90*24*60)) * time.Minute)
			idx := j % 8
			p := &model.Post{MsgBiz: biz, Title: fmt.Sprintf("post %d-%d", i, j), PublishAt: &pub, MsgIdx: &idx}
			if rand.Intn(2) == 0 {
				n := int64(rand.Intn(100000))
				p.ReadNum = &n
			}
			posts[j] = p
		}
		if err := postRepo.Create(ctx, posts...); err != nil {
			panic(err)
		}
	}
	if err := profileRepo.Create(ctx, profiles...); err != nil {
		panic(err)
	}
	seedDur := time.Since(t0)

	categories := repository.NewCategoryRepository(db)
	resolver := service.NewFilterResolver(nil, service.NewCategoryRegistry(categories, profileRepo))

	run := func(w int) []time.Duration {
		svc := service.NewProfileService(profileRepo, resolver, service.NewEnricher(postRepo, w))
		totalPages := int(math.Ceil(float64(profilesN) / float64(page)))
		recs := make([]time.Duration, 0, rounds)
		for r := 0; r < rounds; r++ {
			st := time.Now()
			_, err := svc.List(ctx, service.ListProfilesParams{
				Page: service.PageRequest{Page: r%totalPages + 1, PerPage: page},
			})
			if err != nil {
				panic(err)
			}
			recs = append(recs, time.Since(st))
		}
		return recs
	}

	seqRecs := run(1)
	parRecs := run(workers)

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 {
			return 0
		}
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 {
			k = 0
		}
		if k >= len(xs) {
			k = len(xs) - 1
		}
		return xs[k]
	}

	fmt.Printf("PROFILES=%d, POSTS=%d, PAGE=%d, ROUNDS=%d, WORKERS=%d, driver=%s\n",
		profilesN, postsPer, page, rounds, workers, cfg.Database.Driver)
	fmt.Printf("Seed %d posts: %v\n", profilesN*postsPer, seedDur)
	fmt.Printf("Sequential enrich (workers=1) p50: %v, p95: %v, p99: %v\n",
		pct(seqRecs, 0.50), pct(seqRecs, 0.95), pct(seqRecs, 0.99))
	fmt.Printf("Fan-out enrich (workers=%d) p50: %v, p95: %v, p99: %v\n",
		workers, pct(parRecs, 0.50), pct(parRecs, 0.95), pct(parRecs, 0.99))
	if p50 := pct(parRecs, 0.50); p50 > 0 {
		fmt.Printf("Speedup p50: %.2fx\n", float64(pct(seqRecs, 0.50))/float64(p50))
	}
}
