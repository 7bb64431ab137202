package main

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/infotech-symposium/event-registration/api"
	"github.com/spf13/cobra"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local registration endpoint that checks requests and accepts them",
	RunE: func(cmd *cobra.Command, args []string) error {
		stub := api.NewStub(logger, cfg.Env, api.AcceptAll, api.WithAllowedOrigins(cfg.AllowedOrigins...))

		h, err := stub.Handler()
		if err != nil {
			return err
		}

		serverSettings := getServerSettingsFromEnv()
		s := &http.Server{
			Handler: h,
			Addr:    net.JoinHostPort(serverSettings.Host, serverSettings.Port),
		}

		logger.Info("Registration stub listening",
			slog.String("addr", s.Addr),
			slog.String("env", cfg.Env.String()),
			slog.String("docs", api.DocsPath+"/swagger-ui/"),
		)
		return s.ListenAndServe()
	},
}

type ServerSettings struct {
	Host string
	Port string
}

func getServerSettingsFromEnv() ServerSettings {
	return ServerSettings{
		Host: getEnvOrDefault("HOST", "0.0.0.0"),
		Port: getEnvOrDefault("PORT", "8080"),
	}
}
