package jobs

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"Reposition/internal/notify"
	"Reposition/internal/session"
	"Reposition/pkg/repoapi"
)

// API is the part of the API client the checker uses
type API interface {
	GetSearchAlerts(ctx context.Context) ([]repoapi.SearchAlert, error)
	GetSearchAlertOffers(ctx context.Context, ID int64) (repoapi.OfferPartition, error)
}

// Limiter throttles the checks of each alert
type Limiter interface {
	AlertCheckAllowed(ctx context.Context, alertID int64) bool
}

// Session tells whether the user is signed in
type Session interface {
	Exist() bool
}

// Checker checks the user's search alerts for new offers
type Checker struct {
	api      API
	session  Session
	storage  session.Storage
	limiter  Limiter
	notifier notify.Notifier
	prefix   string
}

// NewChecker creates a Checker, the last notified offer of each alert is kept in storage
func NewChecker(api API, s Session, storage session.Storage, keyPrefix string, limiter Limiter, n notify.Notifier) *Checker {
	return &Checker{
		api:      api,
		session:  s,
		storage:  storage,
		limiter:  limiter,
		notifier: n,
		prefix:   keyPrefix,
	}
}

func (c *Checker) lastOfferKey(alertID int64) string {
	key := fmt.Sprintf("lastOffer:%d", alertID)
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// CheckSearchAlerts checks all the user's search alerts and notifies the offers not notified yet
// the first check of an alert only records its latest offer
func (c *Checker) CheckSearchAlerts(ctx context.Context) {
	logger := log.WithField("job", "CheckSearchAlerts")
	if !c.session.Exist() {
		logger.Info("not signed in, skipping")
		return
	}

	alerts, err := c.api.GetSearchAlerts(ctx)
	if err != nil {
		logger.Errorf("failed to get search alerts: %v", err)
		return
	}

	var checkedCount, sentCount int
	start := time.Now()
	for _, a := range alerts {
		alertLogger := logger.WithField("alert", a.ID)
		if !c.limiter.AlertCheckAllowed(ctx, a.ID) {
			alertLogger.Debug("checked recently, skipping")
			continue
		}
		sent, err := c.checkAlert(ctx, a)
		if err != nil {
			alertLogger.Errorf("failed to check: %v", err)
			if repoapi.IsAuthError(err) {
				// the session is gone, the other alerts would fail the same way
				return
			}
			continue
		}
		checkedCount++
		sentCount += sent
		if sent > 0 {
			alertLogger.Infof("notified %d new offers", sent)
		}
	}

	logger.Infof("checked %d/%d alerts and notified %d new offers in %s",
		checkedCount, len(alerts), sentCount, time.Since(start))
}

// checkAlert notifies the new offers of an alert, returning how many were notified
func (c *Checker) checkAlert(ctx context.Context, a repoapi.SearchAlert) (int, error) {
	p, err := c.api.GetSearchAlertOffers(ctx, a.ID)
	if err != nil {
		return 0, err
	}

	latest := int64(0)
	for _, o := range p.All() {
		if o.ID > latest {
			latest = o.ID
		}
	}

	key := c.lastOfferKey(a.ID)
	last, err := c.lastOffer(ctx, key)
	if errors.Is(err, session.ErrKeyNotFound) {
		return 0, c.storage.Set(ctx, key, strconv.FormatInt(latest, 10))
	}
	if err != nil {
		return 0, err
	}

	var fresh []repoapi.Offer
	for _, o := range p.New {
		if o.ID > last {
			fresh = append(fresh, o)
		}
	}
	if len(fresh) > 0 {
		if err = c.notifier.Notify(ctx, a, fresh); err != nil {
			return 0, err
		}
	}
	if latest > last {
		if err = c.storage.Set(ctx, key, strconv.FormatInt(latest, 10)); err != nil {
			return len(fresh), errors.Wrap(err, "jobs: error recording the last offer")
		}
	}
	return len(fresh), nil
}

func (c *Checker) lastOffer(ctx context.Context, key string) (int64, error) {
	v, err := c.storage.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	last, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "jobs: invalid value of %s", key)
	}
	return last, nil
}
