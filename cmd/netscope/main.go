package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/breml/rootcerts"
	"github.com/qdm12/goservices"
	"github.com/qdm12/goservices/httpserver"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gosplash"
	"github.com/qdm12/log"
	"github.com/qdm12/netscope/internal/config"
	"github.com/qdm12/netscope/internal/health"
	"github.com/qdm12/netscope/internal/httpclient"
	"github.com/qdm12/netscope/internal/metrics"
	"github.com/qdm12/netscope/internal/models"
	"github.com/qdm12/netscope/internal/noop"
	"github.com/qdm12/netscope/internal/render"
	"github.com/qdm12/netscope/internal/resolver"
	"github.com/qdm12/netscope/internal/server"
	"github.com/qdm12/netscope/internal/shoutrrr"
	"github.com/qdm12/netscope/internal/widget"
	"github.com/qdm12/netscope/pkg/ipinfo"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var (
	version = "unknown"
	commit  = "unknown"
	date    = "an unknown date"
)

func main() {
	buildInfo := models.BuildInformation{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	logger := log.New()

	reader := reader.New(reader.Settings{
		HandleDeprecatedKey: func(source, oldKey, newKey string) {
			logger.Warnf("%q key %s is deprecated, please use %q instead",
				source, oldKey, newKey)
		},
	})

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)

	errorCh := make(chan error)
	go func() {
		errorCh <- _main(ctx, reader, os.Args, logger, buildInfo, time.Now)
	}()

	select {
	case <-ctx.Done():
		stop()
		logger.Warn("Caught OS signal, shutting down")
	case err := <-errorCh:
		stop()
		close(errorCh)
		if err == nil { // expected exit such as healthcheck
			os.Exit(0)
		}
		logger.Error(err.Error())
		cancel()
	}

	const shutdownGracePeriod = 5 * time.Second
	timer := time.NewTimer(shutdownGracePeriod)
	select {
	case err := <-errorCh:
		if !timer.Stop() {
			<-timer.C
		}
		if err != nil {
			logger.Error(err.Error())
		}
		logger.Info("Shutdown successful")
	case <-timer.C:
		logger.Warn("Shutdown timed out")
	}

	os.Exit(1)
}

func _main(ctx context.Context, reader *reader.Reader, args []string, logger log.LoggerInterface,
	buildInfo models.BuildInformation, timeNow func() time.Time) (err error) {
	rootCmd := &cobra.Command{
		Use:           "netscope",
		Short:         "netscope shows information about your public IP address.",
		Version:       buildInfo.VersionString(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), reader, logger, buildInfo, timeNow)
		},
	}
	rootCmd.AddCommand(
		newVersionCmd(buildInfo),
		newHealthcheckCmd(reader),
		newQueryCmd(reader, logger, timeNow),
	)
	rootCmd.SetArgs(args[1:])
	return rootCmd.ExecuteContext(ctx)
}

func newVersionCmd(buildInfo models.BuildInformation) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the program version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
		},
	}
}

func newHealthcheckCmd(reader *reader.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Query the health server of a running instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Running the program in a separate instance through the Docker
			// built-in healthcheck, in an ephemeral fashion to query the
			// long running instance of the program about its status
			var healthSettings config.Health
			healthSettings.Read(reader)
			healthSettings.SetDefaults()
			err := healthSettings.Validate()
			if err != nil {
				return fmt.Errorf("health settings: %w", err)
			}

			client := health.NewClient()
			return client.Query(cmd.Context(), *healthSettings.ServerAddress)
		},
	}
}

func newQueryCmd(reader *reader.Reader, logger log.LoggerInterface,
	timeNow func() time.Time) *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Fetch and print information about your public IP address once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return query(cmd.Context(), reader, logger, timeNow,
				cmd.OutOrStdout(), !noColor)
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors in the output")
	return cmd
}

func run(ctx context.Context, reader *reader.Reader, logger log.LoggerInterface,
	buildInfo models.BuildInformation, timeNow func() time.Time) (err error) {
	printSplash(buildInfo)

	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}
	logger.Info(config.String())

	shoutrrrClient, err := shoutrrr.New(shoutrrr.Settings{
		Addresses:    config.Shoutrrr.Addresses,
		DefaultTitle: config.Shoutrrr.DefaultTitle,
		Logger:       logger.New(log.SetComponent("shoutrrr")),
	})
	if err != nil {
		return fmt.Errorf("setting up Shoutrrr: %w", err)
	}

	client := &http.Client{Timeout: config.Client.Timeout}
	defer client.CloseIdleConnections()

	fetcher, err := createFetcher(client, config, logger)
	if err != nil {
		shoutrrrClient.Notify(err.Error())
		return err
	}

	metrics := metrics.New()
	registry := widget.NewRegistry(widget.Settings{
		Fetcher:     fetcher,
		Notifier:    shoutrrrClient,
		Metrics:     metrics,
		Logger:      logger.New(log.SetComponent("widget")),
		IdleTimeout: config.Widget.IdleTimeout,
		TimeNow:     timeNow,
	})

	resolver, err := resolver.New(config.Resolver.ToSettings())
	if err != nil {
		return fmt.Errorf("creating resolver: %w", err)
	}

	healthServer, err := createHealthServer(resolver, fetcher.URL(), logger,
		*config.Health.ServerAddress)
	if err != nil {
		return fmt.Errorf("creating health server: %w", err)
	}

	server, err := createServer(config.Server, registry, metrics.Handler(), logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	servicesSequence, err := goservices.NewSequence(goservices.SequenceSettings{
		ServicesStart: []goservices.Service{registry, healthServer, server},
		ServicesStop:  []goservices.Service{server, healthServer, registry},
	})
	if err != nil {
		return fmt.Errorf("creating services sequence: %w", err)
	}

	runError, startErr := servicesSequence.Start(ctx)
	if startErr != nil {
		return fmt.Errorf("starting services: %w", startErr)
	}

	shoutrrrClient.Notify("Launched")

	select {
	case <-ctx.Done():
	case err = <-runError:
		shoutrrrClient.Notify(err.Error())
		return fmt.Errorf("exiting due to critical error: %w", err)
	}

	err = servicesSequence.Stop()
	if err != nil {
		shoutrrrClient.Notify(err.Error())
		return fmt.Errorf("stopping failed: %w", err)
	}

	return nil
}

func query(ctx context.Context, reader *reader.Reader, logger log.LoggerInterface,
	timeNow func() time.Time, stdout io.Writer, colored bool) (err error) {
	config, err := readConfig(reader, logger)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: config.Client.Timeout}
	defer client.CloseIdleConnections()

	fetcher, err := createFetcher(client, config, logger)
	if err != nil {
		return err
	}

	registry := widget.NewRegistry(widget.Settings{
		Fetcher:     fetcher,
		Notifier:    noopNotifier{},
		Metrics:     metrics.New(),
		Logger:      logger.New(log.SetComponent("widget")),
		IdleTimeout: config.Widget.IdleTimeout,
		TimeNow:     timeNow,
	})

	mounted := registry.Mount(ctx)
	defer registry.Remove(mounted.ID())

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-mounted.Settled():
	}

	page := render.Page(mounted.State(), mounted.Sections())
	_, err = fmt.Fprint(stdout, render.Text(page, colored))
	return err
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

func printSplash(buildInfo models.BuildInformation) {
	splashSettings := gosplash.Settings{
		User:       "qdm12",
		Repository: "netscope",
		Emails:     []string{"quentin.mcgaw@gmail.com"},
		Version:    buildInfo.Version,
		Commit:     buildInfo.Commit,
		BuildDate:  buildInfo.Date,
		// Sponsor information
		PaypalUser:    "qmcgaw",
		GithubSponsor: "qdm12",
	}
	for _, line := range gosplash.MakeLines(splashSettings) {
		fmt.Println(line)
	}
}

func readConfig(reader *reader.Reader, logger log.LoggerInterface) (
	config config.Config, err error) {
	err = config.Read(reader)
	if err != nil {
		return config, fmt.Errorf("reading settings: %w", err)
	}
	config.SetDefaults()
	err = config.Validate()
	if err != nil {
		return config, fmt.Errorf("settings validation: %w", err)
	}

	logger.Patch(config.Logger.ToOptions()...)

	return config, nil
}

func createFetcher(client *http.Client, config config.Config,
	logger log.LoggerInterface) (fetcher *ipinfo.Fetcher, err error) {
	logClient := httpclient.New(client, logger.New(log.SetComponent("http client")))
	fetcher, err = ipinfo.New(logClient, config.Fetch.ToOptions()...)
	if err != nil {
		return nil, fmt.Errorf("creating IP information fetcher: %w", err)
	}
	return fetcher, nil
}

func createHealthServer(resolver health.LookupIPer, fetchURL string,
	logger log.LoggerInterface, serverAddress string) (
	healthServer *httpserver.Server, err error) {
	u, err := url.Parse(fetchURL)
	if err != nil {
		return nil, fmt.Errorf("parsing fetch URL: %w", err)
	}
	healthLogger := logger.New(log.SetComponent("healthcheck server"))
	isHealthy := health.MakeIsHealthy(resolver, u.Hostname(), healthLogger)
	return health.NewServer(serverAddress, healthLogger, isHealthy)
}

//nolint:ireturn
func createServer(config config.Server, registry server.Registry,
	metricsHandler http.Handler, logger log.LoggerInterface) (
	service goservices.Service, err error) {
	if !*config.Enabled {
		return noop.New("http server", logger), nil
	}
	serverLogger := logger.New(log.SetComponent("http server"))
	httpServer, err := server.New(config.ListeningAddress, config.RootURL,
		registry, metricsHandler, serverLogger)
	if err != nil {
		return nil, err
	}
	return httpServer, nil
}
