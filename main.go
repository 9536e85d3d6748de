package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"

	"github.com/blaubaer/transcriber/pkg/app"
	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/session"
	"github.com/blaubaer/transcriber/pkg/ui/tray"
	"github.com/blaubaer/transcriber/pkg/ui/tui"
)

const logTailOnExit = 50

func main() {
	wf := &writerFacade{delegates: []io.Writer{os.Stderr}}
	consumer.Default = consumer.NewWriter(wf)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	var a app.App
	noPrompt := false

	cmd := kingpin.New("transcriber", "Starts and stops transcriptions of Argobots.")
	a.SetupConfiguration(cmd)

	cmd.Flag("log.level", "").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Default("auto").
		SetValue(lv.Consumer.Formatter.ColorMode)

	cmd.Command("tui", "Shows a form in the terminal to start and stop the transcription.").
		Default().
		Action(func(*kingpin.ParseContext) error {
			return withApp(&a, true, func(ctx context.Context) error {
				buf := common.NewLogBuffer(2000, 4096)
				wf.set([]io.Writer{buf})
				defer wf.set([]io.Writer{os.Stderr}, func([]io.Writer, []io.Writer) {
					for _, line := range buf.Tail(logTailOnExit) {
						_, _ = fmt.Fprintln(os.Stderr, line)
					}
				})
				return tui.Run(ctx, &a, a.SessionConfig(), a.Dark(), buf)
			})
		})

	cmd.Command("tray", "Shows an icon in the system tray to start and stop the transcription.").
		Action(func(*kingpin.ParseContext) error {
			return withApp(&a, true, func(ctx context.Context) error {
				return tray.Run(ctx, &a)
			})
		})

	startCmd := cmd.Command("start", "Starts a transcription and exits.")
	startCmd.Flag("no-prompt", "Fail instead of asking for missing --monitors, --speakers or --botId.").
		Envar("TR_NO_PROMPT").
		BoolVar(&noPrompt)
	startCmd.Action(func(*kingpin.ParseContext) error {
		return withApp(&a, false, func(ctx context.Context) error {
			conf := a.SessionConfig()
			if !noPrompt {
				if err := conf.RequestMissing(common.DefaultPrompter); err != nil {
					return err
				}
			}
			return report(&a, a.Start(ctx, conf))
		})
	})

	cmd.Command("stop", "Stops the running transcription and exits.").
		Action(func(*kingpin.ParseContext) error {
			return withApp(&a, false, func(ctx context.Context) error {
				return report(&a, a.Stop(ctx))
			})
		})

	kingpin.MustParse(cmd.Parse(os.Args[1:]))
}

// withApp initializes the app for the duration of fn. If loop is set the
// signal is kept in sync in the background.
func withApp(a *app.App, loop bool, fn func(ctx context.Context) error) (rErr error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := a.Dispose(); err != nil && rErr == nil {
			rErr = err
		}
	}()

	if loop {
		loopCtx, loopCancel := context.WithCancel(ctx)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.Run(loopCtx); err != nil {
				log.WithError(err).
					Warn("Signal loop failed.")
			}
		}()
		defer func() {
			loopCancel()
			wg.Wait()
		}()
	}

	return fn(ctx)
}

// report prints the resulting status of a one-shot command.
func report(a *app.App, opErr error) error {
	s := a.Snapshot()
	if v, ok := common.AsError[*session.ValidationError](opErr); ok {
		opErr = fmt.Errorf("%w %s", v, v.Details())
	}
	if opErr == nil {
		_, _ = fmt.Fprintln(os.Stdout, s.State.Display())
	}
	return common.FirstError(opErr, a.EnsureSignal(s))
}

type writerFacade struct {
	delegates []io.Writer
	mutex     sync.RWMutex
}

func (this *writerFacade) Write(p []byte) (n int, err error) {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	for i, w := range this.delegates {
		var nn int
		if nn, err = w.Write(p); err != nil {
			return n, err
		}
		if i == 0 {
			n = nn
		} else if n != nn {
			return n, fmt.Errorf("the previous writer wrote %d, but the current one wrote %d bytes", nn, n)
		}
	}

	return
}

func (this *writerFacade) set(next []io.Writer, whileChange ...func(current, next []io.Writer)) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	current := this.delegates
	for _, fn := range whileChange {
		fn(current, next)
	}
	this.delegates = next
}
