package app

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"

	"github.com/fsdevblog/groph-affiliate/internal/transport/payout"
	"github.com/fsdevblog/groph-affiliate/internal/transport/payout/client"

	"github.com/fsdevblog/groph-affiliate/pkg/uow"

	"github.com/fsdevblog/groph-affiliate/internal/config"
	"github.com/fsdevblog/groph-affiliate/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/fsdevblog/groph-affiliate/internal/transport/api"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	"os/signal"
	"syscall"

	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app, run address %s", a.Config.RunAddress)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %s", uowErr.Error())
	}

	gateway := payout.NewGateway(client.New(a.Config.PayoutAPIAddress))

	services, sErr := service.Factory(unitOfWork, gateway, a.Logger)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:            a.Logger,
		CommissionService: services.CommissionService,
		PayoutService:     services.PayoutService,
		AffiliateService:  services.AffiliateService,
		ReconcileService:  services.ReconcileService,
		JWTSecretKey:      []byte(a.Config.JWTAdminSecret),
		WebhookSecret:     []byte(a.Config.PayoutWebhookSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	runner := payout.NewRunner(services.PayoutService, a.Logger)
	if a.Config.PayoutInterval > 0 {
		runner.SetInterval(a.Config.PayoutInterval)
	}
	if a.Config.PayoutBatchLimit > 0 {
		runner.SetLimitPerIteration(a.Config.PayoutBatchLimit)
	}

	go runner.Run(notifyCtx)

	select {
	case <-notifyCtx.Done():
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	// affiliate repo
	affiliateRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewAffiliateRepository(dbtx)
	}
	if regErr := unitOfWork.Register(uow.RepositoryName(repoargs.AffiliateRepoName), affiliateRepoFactoryFn); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	// commission repo
	commissionRepoFactoryFn := func(dbtx uow.DBTX) uow.Repository {
		return pgrepo.NewCommissionRepository(dbtx)
	}
	if regErr := unitOfWork.Register(
		uow.RepositoryName(repoargs.CommissionRepoName),
		commissionRepoFactoryFn,
	); regErr != nil {
		return nil, fmt.Errorf("init UOW: %s", regErr.Error())
	}

	return unitOfWork, nil
}
