package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"loans/handler"

	"github.com/drone/signal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run loans api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		e := provideEngine()
		defer e.Close()

		// the state store is owned by a single process, workers run alongside the api
		if withWorkers, _ := cmd.Flags().GetBool("worker"); withWorkers {
			jobs, err := startWorkers(ctx, e)
			if err != nil {
				logrus.WithError(err).Fatal("start workers failed")
			}

			defer stopWorkers(jobs)
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: handler.New(e.system, e.markets, e.prices, e.events, provideSession()).Handler(),
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("worker", true, "run the workers in the same process")
}
