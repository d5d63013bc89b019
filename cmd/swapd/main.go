package main

import (
	"fmt"
	"os"

	"github.com/iov-one/swap/cmd/swapd/app"
	"github.com/iov-one/swap/commands/server"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "swapd",
		Short:         "Atomic swap ABCI application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	server.AddPersistentFlags(root)
	root.AddCommand(
		server.InitCmd(app.GenInitOptions),
		server.StartCmd(app.GenerateApp),
		server.ValidateCmd(app.Initializers()),
		server.VersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
