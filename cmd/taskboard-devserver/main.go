// Command taskboard-devserver runs the in-memory backend for local use of
// the client without the real API.
package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/taskboard/internal/fakeapi"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logCfg := logger.DefaultConfig()
	logCfg.Console = true
	logCfg.FilePath = ""
	logCfg.Level = logger.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err := logger.Init(logCfg); err != nil {
		os.Exit(1)
	}
	defer logger.Close()

	port := getenv("PORT", "5000")
	email := getenv("TASKBOARD_DEV_EMAIL", "dev@taskboard.local")
	senha := getenv("TASKBOARD_DEV_PASSWORD", "dev")

	srv := fakeapi.New()
	srv.AddUser(email, senha, getenv("TASKBOARD_DEV_TOKEN", "dev-token"))

	if os.Getenv("TASKBOARD_DEV_SEED") != "" {
		seed(srv)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		if err := srv.Close(); err != nil {
			logger.Error("Error closing server", logger.Err(err))
		}
	}()

	logger.Info("Dev server starting", logger.F("port", port), logger.F("email", email))
	if err := srv.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", logger.Err(err))
		os.Exit(1)
	}
}

// seed adds a couple of projects with tasks
func seed(srv *fakeapi.Server) {
	today := model.DateOf(time.Now())

	site := srv.SeedProject(model.Project{
		Nome:       "Site institucional",
		Descricao:  "Nova versão do site",
		Status:     model.StatusInProgress,
		DataInicio: model.DatePtr(today.AddDays(-14)),
		DataFim:    model.DatePtr(today.AddDays(30)),
	})
	srv.SeedTask(model.Task{
		Titulo:         "Layout da home",
		Descricao:      "Aprovar com o cliente",
		Prioridade:     model.PriorityHigh,
		Status:         model.StatusFinished,
		DataVencimento: model.DatePtr(today.AddDays(-3)),
		ProjetoID:      site.ID,
	})
	srv.SeedTask(model.Task{
		Titulo:         "Formulário de contato",
		Descricao:      "Enviar email para o comercial",
		Prioridade:     model.PriorityMedium,
		Status:         model.StatusNotStarted,
		DataVencimento: model.DatePtr(today.AddDays(-1)),
		ProjetoID:      site.ID,
	})

	srv.SeedProject(model.Project{
		Nome:      "Migração do banco",
		Descricao: "Mover para o novo servidor",
		Status:    model.StatusNotStarted,
	})
}
