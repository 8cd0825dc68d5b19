package subscription_fx

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"solsub/internal/repositories"
	"solsub/internal/services"
)

const defaultSweepInterval = time.Hour

var Module = fx.Options(
	fx.Provide(provideSubscriptionRepo, providePaymentRepo, provideSubscriptionService),
	fx.Invoke(registerBillingSweep),
)

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}

func provideSubscriptionService(
	subs repositories.SubscriptionRepository,
	payments repositories.PaymentRepository,
	plans repositories.IPlanRepository,
	provider services.WalletProvider,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(subs, payments, plans, provider)
}

// registerBillingSweep runs the overdue-subscription sweep on a fixed
// interval for as long as the app is up.
func registerBillingSweep(lc fx.Lifecycle, subscriptionService services.SubscriptionServiceInterface) {
	interval := defaultSweepInterval
	if minutes, err := strconv.Atoi(os.Getenv("BILLING_SWEEP_MINUTES")); err == nil && minutes > 0 {
		interval = time.Duration(minutes) * time.Minute
	}

	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if _, err := subscriptionService.SweepExpired(context.Background()); err != nil {
							log.Printf("Billing sweep failed: %v", err)
						}
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
}
