package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"lapstats/pkg/model"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupLogging(stderr)

	a := &app{stdout: stdout, stderr: stderr}
	cmd := a.rootCommand()
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if err != errUsage {
			fmt.Fprintln(stderr, errorMessage(err))
		}
		return 1
	}
	return a.status
}

func setupLogging(w io.Writer) {
	logrus.SetOutput(w)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logrus.SetLevel(logrus.InfoLevel)
}

func errorMessage(err error) string {
	var missing *model.MissingFileError
	if errors.As(err, &missing) {
		return "Error: " + missing.Error()
	}
	return "Error: " + err.Error()
}
