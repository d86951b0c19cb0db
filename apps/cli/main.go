// Command carnet manages the students, subjects, exams and grades of the school records API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/assoc"
	"github.com/trezcool/carnet/core/screen"
	logsvc "github.com/trezcool/carnet/services/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var code int
	must(newContainer().Invoke(func(
		conf *core.Config,
		rollbar *logsvc.RollbarLogger,
		svcs screen.Services,
		resolver *assoc.Resolver,
		deps screen.Deps,
	) {
		defer rollbar.Close()

		cli := commandLine{
			ctx:      ctx,
			conf:     conf,
			svcs:     svcs,
			resolver: resolver,
			deps:     deps,
			in:       os.Stdin,
			out:      os.Stdout,
		}
		cli.deps.Alerter = &consoleAlerter{in: cli.in, out: cli.out}

		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
			}
			code = 1
		}
	}))

	stop()
	os.Exit(code)
}
