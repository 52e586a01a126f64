package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/metronome/config"
	"github.com/robmorgan/metronome/control"
	"github.com/robmorgan/metronome/engine"
	"github.com/robmorgan/metronome/logger"
	"github.com/robmorgan/metronome/output"
	"github.com/robmorgan/metronome/program"
	"github.com/robmorgan/metronome/remote"
	"github.com/robmorgan/metronome/rhythm"
	"github.com/robmorgan/metronome/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	rootCmd.AddCommand(newPlayCmd())
}

// playFlags holds everything the play command accepts besides the program options.
type playFlags struct {
	opts program.Options

	dropRate, ramp, rate int

	interactive bool
	noAudio     bool
	volume      float64
	midiPort    string
	oscAddr     string
	httpAddr    string
}

func newPlayCmd() *cobra.Command {
	cmd, _ := newPlayCmdWithFlags()
	return cmd
}

func newPlayCmdWithFlags() (*cobra.Command, *playFlags) {
	f := &playFlags{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start the metronome",
		Long: `Start the metronome. Playback runs until interrupted, or until q is pressed in
interactive mode.

Examples:
  metronome play --bpm 90 --drop-beats 4,2
  metronome play --bpm 60 --ramp 120 --rate 2
  metronome play --bpm 80 --drone C2,G2
  metronome play --click harmonic --tones "a(C3 E3 G3),b(F3 A3 C4)" --progression a,b --beats-per 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configureLogging(cmd); err != nil {
				return err
			}
			prog, err := program.Build(f.options(cmd))
			if err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool("debug")
			return run(cmd.Context(), prog, f, debug)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.opts.BPM, "bpm", 120, "beats per minute (30-300)")
	flags.StringVar(&f.opts.Click, "click", program.ClickModeClick, "beat sound: click or harmonic")
	flags.StringVar(&f.opts.File, "file", "", "WAV file to play instead of the synthesized click")
	flags.StringVar(&f.opts.DropBeats, "drop-beats", "", "play N beats then mute M beats, as N,M or a single N for both (1-16)")
	flags.IntVar(&f.dropRate, "drop-rate", 0, "percentage of beats muted at random (1-99)")
	flags.IntVar(&f.ramp, "ramp", 0, "BPM to ramp towards and back from, forever (30-300)")
	flags.IntVar(&f.rate, "rate", program.DefaultRampRate, "ramp speed in BPM per second (1-15)")
	flags.StringVar(&f.opts.Drone, "drone", "", "tones sustained under the click, e.g. C2,G2")
	flags.StringVar(&f.opts.Tones, "tones", "", `harmonic tones, e.g. "C3,E3,G3" or keyed chords "a(C3 E3 G3),b(D3 F#3 A3)"`)
	flags.StringVar(&f.opts.Progression, "progression", "", "order of keyed chords, e.g. a,b,a")
	flags.StringVar(&f.opts.BeatsPer, "beats-per", "", "beats each progression chord is held for (1-12), one value or one per chord")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "control the tempo from the keyboard")
	flags.BoolVar(&f.noAudio, "no-audio", false, "don't open the audio device")
	flags.Float64Var(&f.volume, "volume", config.DefaultVolume, "master volume (0-1)")
	flags.StringVar(&f.midiPort, "midi-port", "", "also send beats to this MIDI output port, by name or number")
	flags.StringVar(&f.oscAddr, "osc", "", "also send beats as OSC messages to host:port")
	flags.StringVar(&f.httpAddr, "http", "", "serve HTTP tempo control on this address, e.g. :8080")

	return cmd, f
}

// options resolves the flags into program options. Numeric options that have no "unset" value
// are only passed on when given explicitly.
func (f *playFlags) options(cmd *cobra.Command) program.Options {
	opts := f.opts
	if cmd.Flags().Changed("drop-rate") {
		opts.DropRate = program.IntOption(f.dropRate)
	}
	if cmd.Flags().Changed("ramp") {
		opts.Ramp = program.IntOption(f.ramp)
	}
	if cmd.Flags().Changed("rate") {
		opts.Rate = program.IntOption(f.rate)
	}
	return opts
}

func configureLogging(cmd *cobra.Command) error {
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		return nil
	}
	if err := logger.SetLevel(level); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

// run plays prog until it is stopped by a signal, the interactive UI or the HTTP control.
func run(ctx context.Context, prog *program.Program, f *playFlags, debug bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := uuid.New().String()
	log := logger.GetProjectLogger().WithField("session", session)

	log.Info("Initializing config...")
	cfg, err := config.NewConfig()
	if err != nil {
		return errors.WithStackTrace(err)
	}
	cfg.SetVolume(f.volume)

	state := control.NewState(prog.BPM, rhythm.MinBPM, rhythm.MaxBPM, prog.Ramping())
	latest := &output.Latest{}
	sinks := output.Multi{latest, output.NewLog(log)}
	var workers []*output.Async

	addWorker := func(s output.Sink) {
		a := output.NewAsync(s, output.DefaultQueueSize)
		workers = append(workers, a)
		sinks = append(sinks, a)
	}

	if !f.noAudio {
		log.Info("Opening audio device...")
		spk, err := output.NewSpeaker(cfg, prog.ClickFile)
		if err != nil {
			return errors.WithStackTrace(err)
		}
		addWorker(spk)
	}

	if f.midiPort != "" {
		defer midi.CloseDriver()
		m, err := output.NewMIDI(f.midiPort)
		if err != nil {
			closeSinks(sinks, log)
			return errors.WithStackTrace(err)
		}
		addWorker(m)
	}

	if f.oscAddr != "" {
		o, err := output.NewOSC(f.oscAddr)
		if err != nil {
			closeSinks(sinks, log)
			return errors.WithStackTrace(err)
		}
		addWorker(o)
	}

	var listener *ui.Listener
	if f.interactive {
		listener = ui.NewListener(state, prog.String())
		addWorker(listener)
		if !debug {
			logger.SetOutput(io.Discard)
		}
	}

	wg := sync.WaitGroup{}
	for _, w := range workers {
		wg.Add(1)
		go w.Run(ctx, &wg)
	}

	if f.httpAddr != "" {
		srv := remote.NewServer(session, state, latest)
		wg.Add(1)
		go func() {
			if err := srv.ListenAndServe(ctx, f.httpAddr, &wg); err != nil {
				log.WithError(err).Error("HTTP control failed")
			}
		}()
	}

	// handle CTRL+C interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	go func() {
		select {
		case <-quit:
			log.Info("interrupted")
			state.Stop()
		case <-state.Done():
		}
	}()

	sched := engine.NewScheduler(prog, state, sinks, engine.WithLogger(log))
	done := make(chan error, 1)
	go func() {
		done <- sched.Run()
	}()

	var uiErr error
	if listener != nil {
		uiErr = listener.Run()
	}

	err = <-done
	cancel()
	wg.Wait()
	closeSinks(sinks, log)

	if err != nil {
		return errors.WithStackTrace(err)
	}
	if uiErr != nil {
		return errors.WithStackTrace(uiErr)
	}
	return nil
}

func closeSinks(sinks output.Multi, log *logrus.Entry) {
	if err := sinks.Close(); err != nil {
		log.WithError(err).Warn("closing output")
	}
}
