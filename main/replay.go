package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/adammck/grfm"
	"github.com/adammck/grfm/config"
	"github.com/adammck/grfm/gait"
	"github.com/adammck/grfm/trial"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	configPath  string
	outDir      string
	methodName  string
	jobs        int
	metricsAddr string

	replayCmd = &cobra.Command{
		Use:   "replay [trial.csv...]",
		Short: "Predict the reactions for recorded trials",
		Long: `Replays recorded trials through the estimator, one engine per trial,
and writes the predicted reactions of each to <out>/<trial>_grfm.csv.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReplay,
	}
)

func init() {
	replayCmd.Flags().StringVarP(&configPath, "config", "c", "", "subject config (YAML)")
	replayCmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write results to")
	replayCmd.Flags().StringVar(&methodName, "method", "", "override the configured method")
	replayCmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "trials to replay at once")
	replayCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while replaying")
	_ = replayCmd.MarkFlagRequired("config")
}

func runReplay(cmd *cobra.Command, paths []string) error {
	if jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", jobs)
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if methodName != "" {
		c.Method = methodName
		if err := c.Validate(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	// Catch both SIGINT (ctrl+c) and SIGTERM, to stop between samples and
	// flush what was written so far.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics := grfm.NewMetrics(reg)

	if metricsAddr != "" {
		srv := serveMetrics(metricsAddr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	runID := uuid.New()
	logger := log.WithField("run", runID.String())
	logger.Infof("replaying %d trials with method=%s", len(paths), c.Method)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, path := range paths {
		path := path // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			return replayTrial(ctx, c, metrics, logger.WithField("trial", filepath.Base(path)), path)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("done")
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		log.Infof("serving metrics on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server: %s", err)
		}
	}()

	return srv
}

// outputPath returns where the results of the given trial are written.
func outputPath(dir, trialPath string) string {
	base := strings.TrimSuffix(filepath.Base(trialPath), filepath.Ext(trialPath))
	return filepath.Join(dir, base+"_grfm.csv")
}

// replayTrial solves one trial with its own model, detector and engine.
func replayTrial(ctx context.Context, c config.Config, metrics *grfm.Metrics, logger *logrus.Entry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	samples, err := trial.ReadAll(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	m, err := c.Model()
	if err != nil {
		return err
	}

	if len(samples) > 0 && samples[0].Input.Q.Len() != m.NumCoordinates() {
		return fmt.Errorf("%s: trial has %d coordinates, model has %d", path, samples[0].Input.Q.Len(), m.NumCoordinates())
	}

	d := gait.NewRecorded()
	e, err := grfm.New(m, d, c.Parameters(), grfm.WithMetrics(metrics), grfm.WithLogger(logger))
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath(outDir, path))
	if err != nil {
		return fmt.Errorf("cannot create result file: %w", err)
	}
	defer out.Close()

	w, err := trial.NewWriter(out)
	if err != nil {
		return err
	}

	sum, err := trial.Replay(ctx, e, d, samples, w.Write)
	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.WithFields(logrus.Fields{
		"samples":    sum.Samples,
		"not_ready":  sum.NotReady,
		"violations": sum.Violations,
	}).Infof("wrote %s", out.Name())

	return nil
}
