package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"flint/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve analysis requests over the line protocol",
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().String("listen", "127.0.0.1:2222", "address to listen on")
}

func runServer(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("listen")
	manifest := loadManifest(".")
	opts := buildOptions(cmd, manifest)
	opts.Cache = nil // server payloads are transient, nothing to key on disk
	opts.SideChannel = os.Stderr

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stderr, "flint server listening on %s\n", ln.Addr())
	}
	return server.New(opts).Serve(cmd.Context(), ln)
}
