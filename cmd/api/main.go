package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/infrastructure/database/postgres"
	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/api"
	"github.com/nexumapp/nexum-api/internal/config"
	"github.com/nexumapp/nexum-api/internal/integrations"
	"github.com/nexumapp/nexum-api/internal/scheduler"
	"github.com/nexumapp/nexum-api/internal/usecases/administrating"
	"github.com/nexumapp/nexum-api/internal/usecases/authenticating"
	"github.com/nexumapp/nexum-api/internal/usecases/financialplanning"
	"github.com/nexumapp/nexum-api/internal/usecases/noting"
	"github.com/nexumapp/nexum-api/internal/usecases/roitracking"
	"github.com/nexumapp/nexum-api/internal/usecases/tasking"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store storage.Store
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		store = storage.NewPostgresStore(pgConn)
	} else {
		logrus.Warn("Banco de dados desabilitado, usando armazém em memória sem persistência")
		store = storage.NewMemoryStore()
	}

	authenticator, err := authenticating.NewService(store, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o serviço de autenticação")
	}

	roiService := roitracking.NewService(store)
	financialService := financialplanning.NewService(store)
	adminService := administrating.NewService(store, authenticator)
	noteService := noting.NewService(store)
	taskService := tasking.NewService(store)
	integrationService := integrations.NewService(cfg)

	// Inicializa o agendador de atualização do painel administrativo
	adminRefreshService := scheduler.NewAdminRefreshService(adminService, cfg)

	if err := adminRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização administrativa")
	} else {
		logrus.Info("Agendador de atualização administrativa iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		roiService,
		financialService,
		adminService,
		noteService,
		taskService,
		integrationService,
		adminRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
