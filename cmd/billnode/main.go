package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/libp2p/go-libp2p/core/peer"
	lndclock "github.com/lightningnetwork/lnd/clock"
	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/bitcredit-backend/internal/chain"
	"github.com/goodnatureofminers/bitcredit-backend/internal/clock"
	"github.com/goodnatureofminers/bitcredit-backend/internal/metrics"
	"github.com/goodnatureofminers/bitcredit-backend/internal/network"
	"github.com/goodnatureofminers/bitcredit-backend/internal/payment"
	"github.com/goodnatureofminers/bitcredit-backend/internal/service"
	"github.com/goodnatureofminers/bitcredit-backend/internal/storage"
	"github.com/goodnatureofminers/bitcredit-backend/internal/transport"
)

var config struct {
	DataDir       string `long:"data-dir" env:"BILLNODE_DATA_DIR" description:"directory holding bills, bill keys and the node identity" default:"data"`
	ListenAddr    string `long:"listen-addr" env:"BILLNODE_LISTEN_ADDR" description:"p2p listen multiaddr" default:"/ip4/0.0.0.0/tcp/1908"`
	BootstrapFile string `long:"bootstrap-file" env:"BILLNODE_BOOTSTRAP_FILE" description:"JSON list of bootstrap peers" default:"bootstrap/bootstrap_nodes.json"`
	Network       string `long:"network" env:"BILLNODE_NETWORK" description:"bitcoin network (mainnet, testnet, regtest, signet)" default:"testnet"`

	Name          string `long:"name" env:"BILLNODE_NAME" description:"owner name published with the identity"`
	PostalAddress string `long:"postal-address" env:"BILLNODE_POSTAL_ADDRESS" description:"owner postal address"`
	Email         string `long:"email" env:"BILLNODE_EMAIL" description:"owner email"`

	EsploraURL      string        `long:"esplora-url" env:"BILLNODE_ESPLORA_URL" description:"Esplora API base URL, defaults to the public explorer of the network"`
	OracleTimeout   time.Duration `long:"oracle-timeout" env:"BILLNODE_ORACLE_TIMEOUT" description:"timeout of one explorer request" default:"10s"`
	OracleRetries   int           `long:"oracle-retries" env:"BILLNODE_ORACLE_RETRIES" description:"explorer request retries" default:"3"`
	OracleRPS       int           `long:"oracle-rps" env:"BILLNODE_ORACLE_RPS" description:"explorer requests per second" default:"5"`
	PaymentDeadline time.Duration `long:"payment-deadline" env:"BILLNODE_PAYMENT_DEADLINE" description:"time a buyer has to pay a sale" default:"48h"`
	ValidityPeriod  time.Duration `long:"validity-period" env:"BILLNODE_VALIDITY_PERIOD" description:"maturity of bills issued without a maturity date" default:"2160h"`

	SyncInterval    time.Duration `long:"sync-interval" env:"BILLNODE_SYNC_INTERVAL" description:"interval between directory syncs" default:"1m"`
	RecordTimeout   time.Duration `long:"record-timeout" env:"BILLNODE_RECORD_TIMEOUT" description:"timeout of DHT record lookups" default:"30s"`
	TransferTimeout time.Duration `long:"transfer-timeout" env:"BILLNODE_TRANSFER_TIMEOUT" description:"timeout of bill transfers" default:"2m"`

	GRPCAddr    string `long:"grpc-addr" env:"BILLNODE_GRPC_ADDR" description:"control API addr" default:":1909"`
	HTTPAddr    string `long:"http-addr" env:"BILLNODE_HTTP_ADDR" description:"REST API and metrics addr" default:":1910"`
	MetricsAddr string `long:"metrics-addr" env:"BILLNODE_METRICS_ADDR" description:"separate metrics server addr, disabled when empty"`

	ClickhouseDSN        string        `long:"clickhouse-dsn" env:"BILLNODE_CLICKHOUSE_DSN" description:"ClickHouse DSN of the block archive, disabled when empty"`
	ArchiveFlushSize     int           `long:"archive-flush-size" env:"BILLNODE_ARCHIVE_FLUSH_SIZE" description:"blocks per archive insert" default:"500"`
	ArchiveFlushInterval time.Duration `long:"archive-flush-interval" env:"BILLNODE_ARCHIVE_FLUSH_INTERVAL" description:"max delay of archive inserts" default:"5s"`
	ArchiveRPS           int           `long:"archive-rps" env:"BILLNODE_ARCHIVE_RPS" description:"archive inserts per second" default:"10"`
	ArchiveWorkers       int           `long:"archive-workers" env:"BILLNODE_ARCHIVE_WORKERS" description:"bills backfilled in parallel" default:"4"`

	LogJSON bool `long:"log-json" env:"BILLNODE_LOG_JSON" description:"log JSON instead of console output"`
}

func main() {
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(config.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("bill node failed", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, logger *zap.Logger) error {
	params, err := payment.ParamsForNetwork(config.Network)
	if err != nil {
		return err
	}
	store, err := storage.NewFileStore(config.DataDir)
	if err != nil {
		return fmt.Errorf("open data dir: %w", err)
	}
	peerKey, err := loadPeerKey(ctx, store, logger)
	if err != nil {
		return err
	}
	self, err := peer.IDFromPrivateKey(peerKey)
	if err != nil {
		return fmt.Errorf("derive peer id: %w", err)
	}
	identity, err := loadIdentity(ctx, store, self, service.Profile{
		Name:          config.Name,
		PostalAddress: config.PostalAddress,
		Email:         config.Email,
	}, params, logger)
	if err != nil {
		return err
	}

	if config.MetricsAddr != "" {
		startMetricsServer(ctx, config.MetricsAddr, logger)
	}

	bootstrap, err := network.LoadBootstrapPeers(config.BootstrapFile, logger)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("no bootstrap file, starting as first node", zap.String("path", config.BootstrapFile))
	} else if err != nil {
		return err
	}

	node, err := network.NewHost(ctx, network.HostConfig{PrivateKey: peerKey, BootstrapPeers: bootstrap}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := node.Close(); err != nil {
			logger.Warn("failed to close p2p host", zap.Error(err))
		}
	}()

	net, loop := network.New(node.Backend, network.Config{
		RecordTimeout:   config.RecordTimeout,
		TransferTimeout: config.TransferTimeout,
	}, metrics.NewNetwork(), logger)
	go loop.Run(ctx)

	if err := startListening(ctx, net, bootstrap, logger); err != nil {
		return err
	}
	for _, addr := range node.ListenAddrs() {
		logger.Info("listening", zap.Stringer("addr", addr))
	}

	ledger := chain.NewLedger(store, metrics.NewLedger(), logger)
	if config.ClickhouseDSN != "" {
		stopArchive, err := startArchive(ctx, ledger, store, logger)
		if err != nil {
			return err
		}
		defer stopArchive()
	}

	clk := lndclock.NewDefaultClock()
	esploraURL := config.EsploraURL
	if esploraURL == "" {
		esploraURL = payment.DefaultEsploraURL(config.Network)
	}
	oracle := payment.NewOracle(
		payment.NewEsploraClient(payment.EsploraConfig{
			URL:            esploraURL,
			RequestTimeout: config.OracleTimeout,
			MaxRetries:     config.OracleRetries,
		}),
		metrics.NewPaymentOracle(config.Network),
		config.OracleRPS,
		logger,
	)
	replayer := chain.NewReplayer(oracle, clk, params, config.PaymentDeadline, logger)

	bills, err := service.NewBillService(ledger, store, replayer, net, clk, identity, service.Config{
		Params:         params,
		ValidityPeriod: config.ValidityPeriod,
	}, logger)
	if err != nil {
		return fmt.Errorf("init bill service: %w", err)
	}
	syncer := service.NewSync(bills, identity, metrics.NewSync(), clock.SleeperFor(clk), service.SyncConfig{
		Interval: config.SyncInterval,
	}, logger)
	go syncer.Serve(ctx, loop.Events())

	if err := startGRPCServer(ctx, config.GRPCAddr, transport.NewBillHandler(bills, syncer, logger), logger); err != nil {
		return err
	}
	if err := startHTTPServer(ctx, config.HTTPAddr, bills, logger); err != nil {
		return err
	}

	logger.Info("bill node started",
		zap.String("peer", self.String()),
		zap.String("network", params.Name),
	)
	if err := syncer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func startListening(ctx context.Context, net *network.Client, bootstrap []peer.AddrInfo, logger *zap.Logger) error {
	addr, err := ma.NewMultiaddr(config.ListenAddr)
	if err != nil {
		return fmt.Errorf("parse listen addr: %w", err)
	}
	if err := net.StartListening(ctx, addr); err != nil {
		return err
	}
	for _, pi := range bootstrap {
		if err := net.Dial(ctx, pi); err != nil {
			logger.Warn("failed to dial bootstrap peer", zap.Stringer("peer", pi.ID), zap.Error(err))
		}
	}
	return net.Bootstrap(ctx)
}
