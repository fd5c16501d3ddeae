package api

import (
	"github.com/lgomes/vocadrill/internal/config"
	"github.com/lgomes/vocadrill/internal/db"
	"github.com/lgomes/vocadrill/internal/services"
)

type Server struct {
	DB             *db.DB
	Config         *config.Config
	SessionService services.SessionService
	CardService    services.CardService
	StatsService   services.StatsService
}
