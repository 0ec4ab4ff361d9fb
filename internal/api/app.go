package api

import (
	"github.com/AlexanderModestov/baby-sleep-pred/internal"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/forecast"
	"github.com/AlexanderModestov/baby-sleep-pred/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Users() storage.UserRepository
	Children() storage.ChildRepository
	Sessions() storage.SessionRepository
	Predictor() forecast.Predictor
}

type app struct {
	logger    internal.Logger
	store     storage.Storage
	predictor forecast.Predictor
}

func NewApp(logger internal.Logger, store storage.Storage, predictor forecast.Predictor) App {
	return &app{logger: logger, store: store, predictor: predictor}
}

func (a *app) Logger() internal.Logger             { return a.logger }
func (a *app) Users() storage.UserRepository       { return a.store }
func (a *app) Children() storage.ChildRepository   { return a.store }
func (a *app) Sessions() storage.SessionRepository { return a.store }
func (a *app) Predictor() forecast.Predictor       { return a.predictor }
