package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/agencydesk/agencyflow/internal/models"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/agencydesk/agencyflow/internal/workflow"
)

type TokenRefreshJob struct {
	sr  repository.SocialAccountRepository
	pub service.PublisherService
}

func NewTokenRefreshJob(sr repository.SocialAccountRepository, pub service.PublisherService) *TokenRefreshJob {
	return &TokenRefreshJob{
		sr:  sr,
		pub: pub,
	}
}

func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.sr.ListByTimeInterval(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {

		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			var err error
			switch acc.Platform {
			case workflow.PlatformYoutube:
				err = c.pub.RefreshYoutubeToken(ctx, acc.ID, acc.RefreshToken)
				if err != nil {
					slog.Info("Unable to refresh tokens for YouTube")
				}

			case workflow.PlatformInstagram:
				err = c.pub.RefreshInstagramToken(ctx, acc.ID, acc.RefreshToken)
				if err != nil {
					slog.Info("Unable to refresh tokens for Instagram")
				}

			case workflow.PlatformTiktok:
				err = c.pub.RefreshTiktokToken(ctx, acc.ID, acc.RefreshToken)
				if err != nil {
					slog.Info("Unable to refresh tokens for TikTok")
				}
			}
		}(acc)
	}

	wg.Wait()
}
