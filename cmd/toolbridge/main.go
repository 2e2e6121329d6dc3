package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"toolbridge/pkg/server"

	_ "toolbridge/toolkits/aws"
	_ "toolbridge/toolkits/helm"
	_ "toolbridge/toolkits/kubernetes"
	_ "toolbridge/toolkits/notion"
	_ "toolbridge/toolkits/openai"
	_ "toolbridge/toolkits/postgres"
	_ "toolbridge/toolkits/search"
	_ "toolbridge/toolkits/sqlite"
)

const version = "0.1.0"

var runServer = server.Run
var exit = os.Exit

func main() {
	ctx := context.Background()

	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	kubeconfig := flags.String("kubeconfig", "", "path to kubeconfig")
	contextName := flags.String("context", "", "kubeconfig context")
	toolkits := flags.String("toolkits", "", "comma-separated toolkits to preload")
	configPath := flags.String("config", "", "config file path")
	readOnly := flags.Bool("read-only", false, "disable write operations")
	disableDestructive := flags.Bool("disable-destructive", false, "disable destructive operations")
	logLevel := flags.String("log-level", "", "log level")
	httpAddr := flags.String("http", "", "serve MCP over HTTP on this address instead of stdio")

	_ = flags.Parse(os.Args[1:])

	options := server.Options{
		ConfigPath: *configPath,
		Version:    version,
		Stderr:     os.Stderr,
	}
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["kubeconfig"] {
		options.Kubeconfig = *kubeconfig
	}
	if set["context"] {
		options.Context = *contextName
	}
	if set["toolkits"] {
		options.Toolkits = parseCSV(*toolkits)
	}
	if set["read-only"] {
		options.ReadOnly = *readOnly
	}
	if set["disable-destructive"] {
		options.DisableDestructive = *disableDestructive
	}
	if set["log-level"] {
		options.LogLevel = *logLevel
	}
	if set["http"] {
		options.HTTPAddr = *httpAddr
	}

	if err := runServer(ctx, options); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		exit(1)
	}
}

func parseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
