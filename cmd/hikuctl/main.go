/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Command hikuctl wires an engine.Engine from a config file/environment, logs the selected
// executor and cache backends, and exits. It has no Graph of its own and runs no query.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/okorienev/hiku/cache"
	"github.com/okorienev/hiku/concurrent"
	"github.com/okorienev/hiku/engine"
	"github.com/okorienev/hiku/engine/exec"
	"github.com/okorienev/hiku/sched"

	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("hikuctl: failed")
	}
}

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName("hikuctl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("HIKU")
	v.AutomaticEnv()

	v.SetDefault("executor.kind", "pool")
	v.SetDefault("executor.pool.max_size", runtime.GOMAXPROCS(0))
	v.SetDefault("executor.pool.min_size", 1)
	v.SetDefault("executor.errgroup.limit", 0)
	v.SetDefault("cache.kind", "none")
	v.SetDefault("cache.lru.size", 10000)
	v.SetDefault("cache.redis.addr", "127.0.0.1:6379")
	v.SetDefault("cache.redis.prefix", "hiku")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			logrus.WithError(err).Warn("hikuctl: failed to read config file, using defaults/env")
		}
	}
	return v
}

func buildExecutor(v *viper.Viper) (sched.Executor, error) {
	switch v.GetString("executor.kind") {
	case "errgroup":
		limit := v.GetInt("executor.errgroup.limit")
		return exec.NewErrGroupExecutor(limit), nil
	case "cooperative":
		return exec.NewCooperativeExecutor(), nil
	case "pool":
		return exec.NewPoolExecutor(concurrent.WorkerPoolExecutorConfig{
			MaxPoolSize: uint32(v.GetInt("executor.pool.max_size")),
			MinPoolSize: uint32(v.GetInt("executor.pool.min_size")),
		})
	default:
		return nil, fmt.Errorf("hikuctl: unknown executor.kind %q", v.GetString("executor.kind"))
	}
}

func buildCache(v *viper.Viper) (cache.Cache, error) {
	switch v.GetString("cache.kind") {
	case "none", "":
		return nil, nil
	case "lru":
		return cache.NewLRUCache(v.GetInt("cache.lru.size"))
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: v.GetString("cache.redis.addr")})
		return cache.NewRedisCache(client, v.GetString("cache.redis.prefix")), nil
	default:
		return nil, fmt.Errorf("hikuctl: unknown cache.kind %q", v.GetString("cache.kind"))
	}
}

func run() error {
	v := loadConfig()

	executor, err := buildExecutor(v)
	if err != nil {
		return err
	}
	backend, err := buildCache(v)
	if err != nil {
		return err
	}

	// Built but not run: hikuctl has no schema of its own to query. Embedders pass their own
	// Graph and query.Node to Execute or Plan on the Engine that engine.New returns.
	_ = engine.New(executor, backend)

	logrus.WithFields(logrus.Fields{
		"executor": v.GetString("executor.kind"),
		"cache":    v.GetString("cache.kind"),
	}).Info("hikuctl: engine configured")

	fmt.Fprintln(os.Stdout, "hikuctl: engine ready; wire a graph.Graph and query.Node to run Plan/Execute")
	return nil
}
