package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"tasnim.dev/vpc-sweep/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vpc-sweep",
		Short: "Remove or lock down the default VPC in every AWS region",
		// main prints the error once
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cmd.NewSanitizeCmd())
	rootCmd.AddCommand(cmd.NewInspectCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
