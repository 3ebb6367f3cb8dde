package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/cliutil"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. The server is
// configured through JSZ_* environment variables and takes no flags.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: json-schema-to-zod mcp\n\n")
		cliutil.Writef(fs.Output(), "Run the MCP (Model Context Protocol) server over stdio.\n\n")
		cliutil.Writef(fs.Output(), "Tools:\n")
		cliutil.Writef(fs.Output(), "  generate    Generate a Zod module from a schema\n")
		cliutil.Writef(fs.Output(), "  analyze     List the declarations and cycles a schema produces\n")
		cliutil.Writef(fs.Output(), "\nConfiguration is read from JSZ_* environment variables, e.g.\n")
		cliutil.Writef(fs.Output(), "  JSZ_MODULE=cjs JSZ_STRICT_ONEOF=true json-schema-to-zod mcp\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
