package services

import (
	"context"
	"log"

	"harambee-sacco/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs nightly maintenance: purging expired refresh tokens and
// logging a capital pool snapshot for the ops trail.
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	investments      *InvestmentService
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository, investments *InvestmentService) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: refreshTokenRepo,
		investments:      investments,
	}
}

// Start schedules the maintenance jobs (02:30 daily)
func (s *CronService) Start() {
	s.cron.AddFunc("30 2 * * *", s.purgeExpiredTokens)
	s.cron.AddFunc("30 2 * * *", s.logPoolSnapshot)
	s.cron.Start()
	log.Println("🚀 CronService started (daily maintenance at 02:30)")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeExpiredTokens() {
	deleted, err := s.refreshTokenRepo.DeleteExpired(context.Background())
	if err != nil {
		log.Printf("❌ Token purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d expired refresh tokens", deleted)
	}
}

func (s *CronService) logPoolSnapshot() {
	pool, err := s.investments.Pool(context.Background())
	if err != nil {
		log.Printf("❌ Pool snapshot failed: %v", err)
		return
	}
	log.Printf("📊 Capital pool: shares=%s bonds=%s available=%s",
		pool.SharePool, pool.BondsBalance, pool.AvailableCapital)
}
