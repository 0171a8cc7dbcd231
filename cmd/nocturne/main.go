package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/nocturne/internal/bench"
	"github.com/san-kum/nocturne/internal/config"
	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/host"
	"github.com/san-kum/nocturne/internal/logging"
	"github.com/san-kum/nocturne/internal/overlay"
	"github.com/san-kum/nocturne/internal/remote"
	"github.com/san-kum/nocturne/internal/scenes"
	"github.com/san-kum/nocturne/internal/stage"
)

var (
	configFile    string
	preset        string
	sceneDuration time.Duration
	fadeDuration  time.Duration
	fps           int
	seed          int64
	fullscreen    bool
	sceneList     []string
	playlist      string
	logFile       string
	logLevel      string
	broker        string
	topic         string

	benchFrames int
	benchCols   int
	benchRows   int
	chartWidth  int
	chartHeight int
)

// fallbackViewport is used until the terminal reports its size.
var fallbackViewport = display.Viewport{Cols: 80, Rows: 24}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering a flag resets its
// variable to the default, so every call starts from a clean slate.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "nocturne",
		Short:        "rotating ambient night scenes for an idle terminal",
		SilenceUsage: true,
		RunE:         runDisplay,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")

	flags := rootCmd.Flags()
	flags.DurationVar(&sceneDuration, "duration", config.DefaultSceneDuration, "time each scene stays on screen")
	flags.DurationVar(&fadeDuration, "fade", config.DefaultFadeDuration, "crossfade length")
	flags.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	flags.BoolVar(&fullscreen, "fullscreen", false, "start on the alternate screen")
	flags.StringSliceVar(&sceneList, "scenes", nil, "scenes to rotate through (default all)")
	flags.StringVar(&playlist, "playlist", "", "named playlist")
	flags.StringVar(&logFile, "log-file", config.DefaultLogFile, "log file while the display runs (empty discards)")
	flags.StringVar(&broker, "mqtt", "", "mqtt broker url, enables remote skip")
	flags.StringVar(&topic, "topic", config.DefaultTopic, "mqtt topic prefix")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list scenes",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "show a single scene",
		Args:  cobra.ExactArgs(1),
		RunE:  previewScene,
	}
	previewCmd.Flags().AddFlagSet(flags)

	benchCmd := &cobra.Command{
		Use:   "bench [scene...]",
		Short: "benchmark scene frame cost",
		RunE:  benchScenes,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", bench.DefaultFrames, "frames per scene")
	benchCmd.Flags().IntVar(&benchCols, "cols", 120, "viewport columns")
	benchCmd.Flags().IntVar(&benchRows, "rows", 40, "viewport rows")
	benchCmd.Flags().IntVar(&chartWidth, "width", 80, "chart width")
	benchCmd.Flags().IntVar(&chartHeight, "height", 8, "chart height")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the current settings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().AddFlagSet(flags)

	rootCmd.AddCommand(scenesCmd, presetsCmd, previewCmd, benchCmd, initCmd)
	return rootCmd
}

// loadConfig layers preset, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("duration") {
		cfg.SceneDuration = sceneDuration
	}
	if fl.Changed("fade") {
		cfg.FadeDuration = fadeDuration
	}
	if fl.Changed("fps") {
		cfg.FPS = fps
	}
	if fl.Changed("fullscreen") {
		cfg.Fullscreen = fullscreen
	}
	if fl.Changed("scenes") {
		cfg.Scenes = sceneList
	}
	if fl.Changed("playlist") {
		cfg.Playlist = playlist
	}
	if fl.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if fl.Changed("mqtt") {
		cfg.MQTT.Broker = broker
	}
	if fl.Changed("topic") {
		cfg.MQTT.Topic = topic
	}
	if fl.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDisplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return play(cfg, cfg.SceneNames())
}

func previewScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return play(cfg, args[:1])
}

// play runs the display until the user quits.
func play(cfg *config.Config, names []string) error {
	log, closer, err := logging.File(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	runSeed := cfg.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	list, err := scenes.NewCatalog(runSeed, log).Select(names)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(scenes.Slugs(), ", "))
	}

	loop := stage.NewLoop(time.Now())
	pool := display.NewPool(fallbackViewport, cfg.FadeDuration)
	ov := overlay.New(loop, cfg.OverlayDuration)
	notify := stage.Notifiers{ov}

	relay := &host.Relay{}
	if cfg.RemoteEnabled() {
		bridge, err := remote.Dial(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic, relay.Skip, log)
		if err != nil {
			log.Warn().Err(err).Msg("remote bridge disabled")
		} else {
			defer bridge.Close()
			notify = append(notify, bridge)
		}
	}

	orch, err := stage.New(list, pool, notify, loop,
		stage.WithSceneDuration(cfg.SceneDuration),
		stage.WithMaxDt(cfg.MaxDt),
		stage.WithTransitionTimeout(cfg.TransitionTimeout),
		stage.WithResizeDebounce(cfg.ResizeDebounce),
		stage.WithSeed(runSeed),
		stage.WithLogger(log),
	)
	if err != nil {
		return err
	}

	log.Info().Int("scenes", len(list)).Int64("seed", runSeed).Msg("display starting")
	m := host.NewModel(orch, loop, pool, ov,
		host.WithFPS(cfg.FPS),
		host.WithFullscreen(cfg.Fullscreen),
		host.WithLogger(log),
	)
	p := host.NewProgram(m)
	relay.Attach(p)
	_, err = p.Run()
	orch.Stop()
	log.Info().Msg("display stopped")
	return err
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME")
	slugs := scenes.Slugs()
	for i, name := range scenes.Names() {
		fmt.Fprintf(w, "%s\t%s\n", slugs[i], overlay.Title(name))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSCENE\tFADE\tSCENES")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		list := "all"
		if names := cfg.SceneNames(); len(names) > 0 {
			list = strings.Join(names, ", ")
		}
		fmt.Fprintf(w, "%s\t%v\t%v\t%s\n", name, cfg.SceneDuration, cfg.FadeDuration, list)
	}
	return w.Flush()
}

func benchScenes(cmd *cobra.Command, args []string) error {
	log := logging.Console(os.Stderr, logLevel)
	runSeed := seed
	if runSeed == 0 {
		runSeed = 42
	}
	list, err := scenes.NewCatalog(runSeed, log).Select(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := bench.DefaultConfig()
	cfg.Frames = benchFrames
	cfg.Viewport = display.Viewport{Cols: benchCols, Rows: benchRows}

	fmt.Printf("benchmarking %d scenes, %d frames each at %dx%d\n\n", len(list), cfg.Frames, benchCols, benchRows)
	results, err := bench.NewRunner(cfg).Run(ctx, list)
	fmt.Print(bench.Report(results, chartWidth, chartHeight))
	if err != nil {
		log.Warn().Err(err).Msg("benchmark interrupted")
	}
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "nocturne.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	log := logging.Console(cmd.ErrOrStderr(), cfg.LogLevel)
	log.Info().Str("path", path).Msg("config written")
	return nil
}

