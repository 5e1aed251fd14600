package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/twmb/franz-go/pkg/sr"

	"github.com/maribelsv/showcase/config"
	"github.com/maribelsv/showcase/internal/adapter/blobstorage"
	"github.com/maribelsv/showcase/internal/adapter/httphandler"
	"github.com/maribelsv/showcase/internal/adapter/kafka"
	"github.com/maribelsv/showcase/internal/adapter/storage"
	"github.com/maribelsv/showcase/internal/core/domain"
	"github.com/maribelsv/showcase/internal/core/service"
	"github.com/maribelsv/showcase/pkg/schema"
)

type outbound struct {
	sqldb    storage.SQLDB
	images   blobstorage.GCSImageStore
	events   kafka.EventsProducer
	tallyRun kafka.VoteTallyProcessor
	tally    kafka.VoteTallyView
}

type services struct {
	products service.ProductService
	accounts *service.AccountService
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	eventSerde schema.Serde
	outbound   outbound
	services   services
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerde()
	app.initOutboundAdapters()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerde() {
	const op = "App.initSerde"

	srClient, err := sr.NewClient(
		sr.URLs(app.cfg.Broker.SchemaRegistryURLs...),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	subject := app.cfg.Broker.Topics.ProductEvents + "-value"
	eventSerde, err := schema.NewSerdeProductEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.eventSerde = eventSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.sqldb = sqldb

	images, err := blobstorage.NewGCSImageStore(
		app.ctx, app.cfg.Blob.Bucket, app.cfg.Blob.CredentialsFile,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.images = images

	seedBrokers := app.cfg.Broker.SeedBrokers
	eventsTopic := app.cfg.Broker.Topics.ProductEvents

	events, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(app.ctx, seedBrokers, eventsTopic),
		kafka.ProducerEncoderOpt(app.eventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.events = events

	tallyGroup := app.cfg.Broker.Consumers.VoteTallyGroup

	tallyRun, err := kafka.NewVoteTallyProcessor(
		seedBrokers, eventsTopic, tallyGroup, app.eventSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.tallyRun = tallyRun

	tally, err := kafka.NewVoteTallyView(seedBrokers, tallyGroup)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.tally = tally
}

func (app *App) initCoreServices() {
	products := storage.NewProductsRepository(app.outbound.sqldb)
	users := storage.NewUsersRepository(app.outbound.sqldb)
	sessions := storage.NewSessionsRepository(app.outbound.sqldb)

	app.services.products = service.NewProductService(
		products, app.outbound.events,
	)
	app.services.accounts = service.NewAccountService(
		users, sessions, app.cfg.SessionTTL,
	)
	app.services.accounts.Watch(func(sn domain.Session) {
		slog.Info("session state changed",
			"authenticated", sn.Authenticated(), "userID", sn.User.ID)
	})
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()

	ps := app.services.products
	httphandler.RegisterProducts(mux, ps, ps, ps, ps, ps, app.outbound.tally)
	httphandler.RegisterAccounts(mux, app.services.accounts, app.services.accounts)
	httphandler.RegisterUploads(mux, app.outbound.images)

	handler := httphandler.WithSession(
		app.services.accounts, httphandler.AllowJSON(mux),
	)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)
	go app.outbound.tallyRun.Run(app.ctx)
	go app.outbound.tally.Run(app.ctx)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.outbound.tallyRun.Close()
	app.outbound.events.Close()
	app.outbound.images.Close()
	app.outbound.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
