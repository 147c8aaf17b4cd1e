package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"windtunnel/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve compute and drag requests over a websocket at /ws",
	Long: `Serve compute and drag requests over a websocket at /ws and Prometheus
metrics at /metrics.

Requests and replies are {"id", "type", "content"} envelopes. A "compute"
content carries sensors, samples, reference values and an optional airfoil
and is answered by "computed". A "drag" content carries the rake profiles
and is answered by "dragComputed". Failures are answered by "error".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.Addr
		}
		upgrader := websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBuffer,
			WriteBufferSize: cfg.WriteBuffer,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}
		return server.NewServer(addr, upgrader).Serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default [server] addr)")
	rootCmd.AddCommand(serveCmd)
}
