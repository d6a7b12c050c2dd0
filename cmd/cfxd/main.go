/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command cfxd serves the read-only artifact API over a root directory.
//
// Flags may also be set through the environment (CFXD_ADDR, CFXD_ROOT,
// CFXD_LOG_LEVEL, CFXD_LOG_FORMAT); a .env file in the working directory is
// loaded first.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dirpx.dev/cfx/artifact"
	"dirpx.dev/cfx/httpd"
)

const shutdownGrace = 5 * time.Second

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("CFXD_ADDR", ":8710"), "listen address")
	root := flag.String("root", envOr("CFXD_ROOT", artifact.DefaultRoot), "artifact root directory")
	logLevel := flag.String("log-level", envOr("CFXD_LOG_LEVEL", "info"), "log level (debug|info|warn|error)")
	logFormat := flag.String("log-format", envOr("CFXD_LOG_FORMAT", "text"), "log format (text|json)")
	flag.Parse()

	log := newLogger(*logLevel, *logFormat, os.Stderr)

	srv := &http.Server{
		Addr:    *addr,
		Handler: httpd.New(*root, log).Handler(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", *addr, "root", *root)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
