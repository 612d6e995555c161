package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"Reposition/internal/filter"
	"Reposition/internal/form"
	"Reposition/internal/jobs"
	"Reposition/pkg/repoapi"
)

// readSecret reads a line from stdin after prompting for it on stderr
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt+": ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", "")
	var f form.Login
	fs.StringVar(&f.Email, "email", "", "account email")
	fs.StringVar(&f.Password, "password", "", "account password, read from stdin if empty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if f.Password == "" {
		var err error
		if f.Password, err = readSecret("Password"); err != nil {
			return err
		}
	}
	if err := form.Validate(f); err != nil {
		return err
	}

	profile, err := a.auth.Login(ctx, f.Email, f.Password)
	if err != nil {
		if repoapi.IsAuthError(err) {
			return invalidInput(errors.New("Invalid email or password"))
		}
		return err
	}
	a.renderer.Message(a.renderer.Locale().LoginSucceededMessage, profile.FullName())
	return nil
}

func (a *app) logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.renderer.Message("%s", a.renderer.Locale().LogoutSucceededMessage)
	return nil
}

func (a *app) whoami(_ context.Context, _ []string) error {
	profile, ok := a.auth.Profile()
	if !ok {
		return a.auth.LoadError()
	}
	a.renderer.Message(a.renderer.Locale().GreetingMessage, profile.FirstName)
	a.renderer.Profile(profile)
	return nil
}

func (a *app) password(ctx context.Context, args []string) error {
	fs := newFlagSet("password", "")
	var f form.Password
	fs.StringVar(&f.CurrentPassword, "current", "", "current password, read from stdin if empty")
	fs.StringVar(&f.NewPassword, "new", "", "new password, read from stdin if empty")
	fs.StringVar(&f.ConfirmPassword, "confirm", "", "new password again, read from stdin if empty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	for _, field := range []struct {
		value  *string
		prompt string
	}{
		{&f.CurrentPassword, "Current password"},
		{&f.NewPassword, "New password"},
		{&f.ConfirmPassword, "Confirm password"},
	} {
		if *field.value != "" {
			continue
		}
		v, err := readSecret(field.prompt)
		if err != nil {
			return err
		}
		*field.value = v
	}
	if err := form.Validate(f); err != nil {
		return err
	}

	if err := a.api.UpdatePassword(ctx, f.CurrentPassword, f.NewPassword); err != nil {
		return err
	}
	a.renderer.Message("%s", a.renderer.Locale().PasswordChangedMessage)
	return nil
}

func (a *app) inquire(ctx context.Context, args []string) error {
	fs := newFlagSet("inquire", "OFFER_ID")
	profile, _ := a.auth.Profile()
	f := form.Contact{FullName: profile.FullName(), Email: profile.Email}
	var offerID int64
	fs.Int64Var(&offerID, "offer", 0, "ID of the offer")
	fs.StringVar(&f.FullName, "name", f.FullName, "your full name")
	fs.StringVar(&f.Email, "email", f.Email, "email to be contacted at")
	fs.IntVar(&f.Quantity, "quantity", 0, "TEUs wanted")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	offerID, err := idArg(fs, offerID)
	if err != nil {
		return err
	}
	if err = form.Validate(f); err != nil {
		return err
	}

	if !a.limiter.InquiryAllowed(ctx, offerID) {
		a.renderer.Message("%s", a.renderer.Locale().InquiryRateLimitedMessage)
		return nil
	}
	err = a.api.CreateInquiry(ctx, repoapi.Inquiry{
		FullName: f.FullName,
		Email:    f.Email,
		Quantity: f.Quantity,
		OfferID:  offerID,
	})
	if err != nil {
		if repoapi.IsNotFound(err) {
			return invalidInput(errors.Errorf("offer %d not found", offerID))
		}
		return err
	}
	a.renderer.Message("%s", a.renderer.Locale().InquirySentMessage)
	return nil
}

func (a *app) locations(ctx context.Context, args []string) error {
	fs := newFlagSet("locations", "KEYWORD")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	keyword := strings.Join(fs.Args(), " ")
	locations, err := a.api.SearchLocations(ctx, keyword)
	if errors.Is(err, repoapi.ErrEmptyKeyword) {
		fs.Usage()
		return errUsage
	}
	if err != nil {
		return err
	}
	a.renderer.Locations(locations)
	return nil
}

func (a *app) companies(ctx context.Context, _ []string) error {
	companies, err := a.api.GetCompanies(ctx)
	if err != nil {
		return err
	}
	a.renderer.Companies(companies)
	return nil
}

func (a *app) services(ctx context.Context, args []string) error {
	fs := newFlagSet("services", "[SERVICE_ID]")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		services, err := a.api.GetLineServices(ctx)
		if err != nil {
			return err
		}
		a.renderer.Services(services)
		return nil
	}

	id, err := idArg(fs, 0)
	if err != nil {
		return err
	}
	service, err := a.api.GetLineService(ctx, id)
	if err != nil {
		return err
	}
	a.renderer.Services([]repoapi.LineService{service})
	return nil
}

func (a *app) alerts(ctx context.Context, _ []string) error {
	alerts, err := a.api.GetSearchAlerts(ctx)
	if err != nil {
		return err
	}
	a.renderer.Alerts(alerts)
	return nil
}

func (a *app) deleteAlert(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-alert", "ALERT_ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := idArg(fs, 0)
	if err != nil {
		return err
	}
	if err = a.api.DeleteSearchAlert(ctx, id); err != nil {
		return err
	}
	a.renderer.Message("%s", a.renderer.Locale().AlertDeletedMessage)
	return nil
}

func (a *app) myOffers(ctx context.Context, args []string) error {
	fs := newFlagSet("my-offers", "")
	var viewName string
	var highlight int64
	fs.StringVar(&viewName, "view", string(filter.ViewActive), "offers to show: active, team, expired or deleted")
	fs.Int64Var(&highlight, "highlight", 0, "ID of an offer to show first")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	view, err := filter.ParseView(viewName)
	if err != nil {
		return invalidInput(err)
	}

	offers, err := a.api.GetMyOffers(ctx)
	if err != nil {
		return err
	}
	loc := a.renderer.Locale()
	titles := map[filter.View]string{
		filter.ViewActive:  loc.MyOffersTitle,
		filter.ViewTeam:    loc.MyTeamOffersTitle,
		filter.ViewExpired: loc.MyExpiredOffersTitle,
		filter.ViewDeleted: loc.MyDeletedOffersTitle,
	}
	highlighted, rest := filter.MyOffers(offers, view, highlight, timeNow())
	a.renderer.MyOffers(titles[view], highlighted, rest)
	return nil
}

func (a *app) deleteOffer(ctx context.Context, args []string) error {
	fs := newFlagSet("delete-offer", "OFFER_ID")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := idArg(fs, 0)
	if err != nil {
		return err
	}
	if err = a.api.DeleteOffer(ctx, id); err != nil {
		return err
	}
	a.renderer.Message(a.renderer.Locale().OfferDeletedMessage, id)
	return nil
}

func (a *app) watch(ctx context.Context, _ []string) error {
	n, err := a.notifier()
	if err != nil {
		return err
	}
	checker := jobs.NewChecker(a.api, a.session, a.storage, a.config.Session.KeyPrefix, a.limiter, n)
	scheduler, err := jobs.NewScheduler(ctx, a.config.Jobs, checker)
	if err != nil {
		return err
	}
	scheduler.Start()
	log.Info("watching search alerts, press Ctrl+C to stop")

	<-ctx.Done()
	scheduler.Stop()
	return nil
}
