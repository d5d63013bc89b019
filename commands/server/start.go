package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StartCmd returns the command that runs the abci server until the
// process receives an interrupt.
func StartCmd(gen AppGenerator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := NewLogger(conf)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			app, err := gen(&Options{
				Home:       conf.GetString(FlagHome),
				Logger:     logger,
				Debug:      conf.GetBool(FlagDebug),
				Registerer: reg,
			})
			if err != nil {
				return err
			}
			return serve(logger, app, conf.GetString(FlagBind), conf.GetString(FlagMetrics), reg)
		},
	}
	cmd.Flags().String(FlagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(FlagDebug, false, "call stack returned on error")
	cmd.Flags().String(FlagMetrics, "", "address of the prometheus endpoint, disabled if empty")
	return cmd
}

func serve(logger log.Logger, app abci.Application, bind, metricsAddr string, g prometheus.Gatherer) error {
	logger.Info("Starting ABCI app", "bind", bind)
	svr, err := server.NewServer(bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "cannot start server: %s", err)
	}
	defer svr.Stop()

	if metricsAddr != "" {
		metrics := &http.Server{Addr: metricsAddr, Handler: MetricsHandler(g)}
		go func() {
			logger.Info("Serving metrics", "bind", metricsAddr)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		defer metrics.Close()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	logger.Info("Shutting down", "signal", sig.String())
	return nil
}

// MetricsHandler serves the metrics collected by g under /metrics.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// VersionCmd prints the application version.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), swap.Version())
		},
	}
}
