package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
)

type GiveawayService interface {
	List(ctx context.Context, clientID int64) ([]*models.Giveaway, error)
	Wins(ctx context.Context, giveawayID int64) ([]*models.GiveawayWin, error)
}

type giveawayService struct {
	g repository.GiveawayRepository
}

func NewGiveawayService(g repository.GiveawayRepository) GiveawayService {
	return &giveawayService{
		g: g,
	}
}

func (s *giveawayService) List(ctx context.Context, clientID int64) ([]*models.Giveaway, error) {
	if clientID == 0 {
		err := errors.New("client id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	giveaways, err := s.g.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("error listing giveaways")
	}
	return giveaways, nil
}

func (s *giveawayService) Wins(ctx context.Context, giveawayID int64) ([]*models.GiveawayWin, error) {
	if giveawayID == 0 {
		err := errors.New("giveaway id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	wins, err := s.g.ListWins(ctx, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("error listing giveaway wins")
	}
	return wins, nil
}
