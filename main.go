package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/gpdwatkins/RSG-Space-Weather/anim"
	"github.com/gpdwatkins/RSG-Space-Weather/api"
	"github.com/gpdwatkins/RSG-Space-Weather/dataset"
	"github.com/gpdwatkins/RSG-Space-Weather/geo"
	"github.com/gpdwatkins/RSG-Space-Weather/render"
)

type app struct {
	Config anim.Config
	Log    zerolog.Logger
}

func newApp() *app {
	a := new(app)
	return a
}

func (a *app) readConfig(configPath string) error {
	f, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	a.Config, err = anim.ReadConfig(f)
	return err
}

func (a *app) setupLogger() {
	level, err := zerolog.ParseLevel(a.Config.Log.Level)
	if err != nil || a.Config.Log.Level == "" {
		level = zerolog.InfoLevel
	}

	var w = os.Stderr
	if a.Config.Log.Pretty {
		a.Log = zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
		return
	}
	a.Log = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// animationKind bundles a renderer constructor with the per-kind
// defaults for axis, output directory and base name.
type animationKind struct {
	axis string
	dir  string
	name string
	make func(cfg *anim.Config) (anim.Renderer, error)
}

var kinds = map[string]animationKind{
	"data_globe": {"time", "data_gif", "globe_data", func(cfg *anim.Config) (anim.Renderer, error) {
		return render.NewDataGlobe(), nil
	}},
	"connections_globe": {"win_start", "connections_gif", "globe_conn", func(cfg *anim.Config) (anim.Renderer, error) {
		r := render.NewConnectionsGlobe()
		if cfg.Animation.Threshold != 0 {
			r.Threshold = cfg.Animation.Threshold
		}
		return r, nil
	}},
	"lag_mat": {"time_win", "lag_mat_gif", "lag_mat", func(cfg *anim.Config) (anim.Renderer, error) {
		return render.NewLagMatrix(), nil
	}},
	"lag_network": {"win_start", "lag_network_gif", "lag_network", func(cfg *anim.Config) (anim.Renderer, error) {
		return render.NewLagNetwork(), nil
	}},
	"corr_thresh": {"win_start", "corr_thresh_gif", "corr_thresh", func(cfg *anim.Config) (anim.Renderer, error) {
		return render.NewCorrThresh(), nil
	}},
	"cca_ang": {"time", "cca_ang_gif", "cca_ang", func(cfg *anim.Config) (anim.Renderer, error) {
		weight := cfg.Animation.Weight
		if weight == "" {
			weight = "a"
		}
		return render.NewCCAAngle(weight)
	}},
}

func (a *app) buildJob() (*anim.Job, error) {
	cfg := &a.Config

	kind, ok := kinds[cfg.Animation.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown animation kind %q", cfg.Animation.Kind)
	}
	renderer, err := kind.make(cfg)
	if err != nil {
		return nil, err
	}

	df, err := os.Open(cfg.Data.Dataset)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.LoadCSV(df)
	df.Close()
	if err != nil {
		return nil, err
	}

	opts := anim.DefaultOptions()
	opts.Stations = cfg.Animation.Stations
	opts.Components = cfg.Animation.Components
	opts.Colour = cfg.Animation.Colour
	if cfg.Animation.DayNight != nil {
		opts.DayNight = *cfg.Animation.DayNight
	}
	if cfg.Data.Stations != "" {
		sf, err := os.Open(cfg.Data.Stations)
		if err != nil {
			return nil, err
		}
		opts.Coords, err = geo.LoadCatalog(sf)
		sf.Close()
		if err != nil {
			return nil, err
		}
	}

	axis := cfg.Animation.Axis
	if axis == "" {
		axis = kind.axis
	}
	outDir := cfg.Animation.OutDir
	if outDir == "" {
		outDir = kind.dir
	}
	name := cfg.Animation.Name
	if name == "" {
		name = kind.name
	}

	job := anim.NewJob(ds, axis, outDir, name, renderer)
	job.Options = opts
	job.Workers = cfg.Animation.Workers
	job.Log = a.Log
	if cfg.Animation.FrameDelayMs > 0 {
		job.Encoder.FrameDelay = time.Duration(cfg.Animation.FrameDelayMs) * time.Millisecond
	}

	return job, nil
}

func (a *app) connectPublisher() (mqtt.Client, anim.Publisher, error) {
	cfg := &a.Config
	options := mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID("rsg-anim").
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	client := mqtt.NewClient(options)

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, nil, token.Error()
	}
	return client, anim.NewMQTTPublisher(client, cfg.Mqtt.Topic, 1), nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	a := newApp()
	if err := a.readConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "reading config: %v\n", err)
		os.Exit(1)
	}
	a.setupLogger()

	job, err := a.buildJob()
	if err != nil {
		a.Log.Fatal().Err(err).Msg("configuring animation")
	}

	if a.Config.Mqtt.URL != "" {
		client, pub, err := a.connectPublisher()
		if err != nil {
			a.Log.Fatal().Err(err).Msg("connecting to broker")
		}
		defer client.Disconnect(250)
		job.Publisher = pub
	}

	if a.Config.Preview.Addr != "" {
		srv := api.NewServer(a.Config.Preview.Addr, job.OutDir, a.Log)
		go func() {
			if err := srv.Serve(); err != nil {
				a.Log.Error().Err(err).Msg("preview server stopped")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := job.Run(ctx)
	if err != nil {
		a.Log.Fatal().Err(err).Msg("animation failed")
	}
	a.Log.Info().Str("gif", res.GIFPath).Int("frames", len(res.FramePaths)).Msg("done")
}
