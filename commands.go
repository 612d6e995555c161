package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"Reposition/internal/auth"
	"Reposition/internal/form"
	"Reposition/internal/route"
	"Reposition/pkg/repoapi"
)

// command represents a CLI command, showing a page of the client
type command struct {
	name    string
	summary string
	page    string // the page the command belongs to, empty when it doesn't need a session
	run     func(a *app, ctx context.Context, args []string) error
}

var commands = []command{
	{"login", "sign in", "", (*app).login},
	{"logout", "sign out", "", (*app).logout},
	{"whoami", "show your profile", route.Profile, (*app).whoami},
	{"password", "change your password", route.Profile, (*app).password},
	{"browse", "search offers, filter and sort them, and save the search as an alert", route.BrowseOffers, (*app).browse},
	{"alert-offers", "show the offers of a search alert", route.BrowseOffers, (*app).alertOffers},
	{"inquire", "send an inquiry for an offer", route.BrowseOffers, (*app).inquire},
	{"locations", "search locations to browse offers between", route.BrowseOffers, (*app).locations},
	{"companies", "list the shipping lines", route.BrowseOffers, (*app).companies},
	{"alerts", "list your search alerts", route.SearchAlerts, (*app).alerts},
	{"delete-alert", "delete a search alert", route.SearchAlerts, (*app).deleteAlert},
	{"watch", "notify the new offers of your search alerts periodically", route.SearchAlerts, (*app).watch},
	{"my-offers", "list your offers", route.MyOffers, (*app).myOffers},
	{"delete-offer", "delete one of your offers", route.MyOffers, (*app).deleteOffer},
	{"create-offer", "publish an offer", route.CreateOffer, (*app).createOffer},
	{"services", "list the line services to publish offers on", route.CreateOffer, (*app).services},
	{"edit-offer", "edit one of your offers", route.EditOffer, (*app).editOffer},
}

// homeCommands maps the home pages to the commands showing them
var homeCommands = map[string]string{
	route.MyOffers:     "my-offers",
	route.BrowseOffers: "browse",
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// errUsage is returned by commands given invalid arguments, after printing the usage
var errUsage = errors.New("invalid usage")

// run runs the command named by the first argument, the signed-in user's home page if there's none
// it returns the process exit code
func (a *app) run(ctx context.Context, args []string) int {
	var name string
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	if name == "" {
		if err := a.guard(ctx, route.Landing); err != nil {
			return a.fail(err)
		}
		target, _ := route.Resolve(route.Landing, a.auth)
		name = homeCommands[target]
	}

	c, ok := findCommand(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
		usage()
		return 2
	}
	if err := a.guard(ctx, c.page); err != nil {
		return a.fail(err)
	}
	if err := c.run(a, ctx, args); err != nil {
		return a.fail(err)
	}
	return 0
}

// guard loads the profile and checks the user may see the given page
func (a *app) guard(ctx context.Context, page string) error {
	if page == "" {
		return nil
	}
	if err := a.auth.Init(ctx); err != nil {
		return err
	}
	if target, _ := route.Resolve(page, a.auth); target == route.Landing {
		return auth.ErrNotSignedIn
	}
	return nil
}

// fail prints the message of a command's error and returns the exit code
// errors without a message of their own are logged and reported as a generic failure
func (a *app) fail(err error) int {
	loc := a.renderer.Locale()
	var fieldErrs form.FieldErrors
	switch {
	case errors.Is(err, errUsage):
		return 2
	case errors.Is(err, auth.ErrNotSignedIn):
		a.renderer.Message("%s", loc.NotSignedInMessage)
	case repoapi.IsAuthError(err):
		a.renderer.Message("%s", loc.SessionExpiredMessage)
	case errors.As(err, &fieldErrs):
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			a.renderer.Message("%s: %s", field, fieldErrs[field])
		}
	case errors.As(err, new(inputError)):
		a.renderer.Message("%s", err)
	default:
		log.Error(err)
		a.renderer.Message("%s", loc.InternalErrorMessage)
	}
	return 1
}

// inputError represents an error caused by the user's input, printed as is
type inputError struct {
	err error
}

func (e inputError) Error() string {
	return e.err.Error()
}

func (e inputError) Unwrap() error {
	return e.err
}

func invalidInput(err error) error {
	return inputError{err}
}

// newFlagSet creates the flag set of a command
func newFlagSet(name, positional string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] %s\n", name, positional)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses a command's arguments
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// idArg reads an ID from the flag if set, otherwise from the first positional argument
func idArg(fs *flag.FlagSet, flagValue int64) (int64, error) {
	if flagValue != 0 {
		return flagValue, nil
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 0, errUsage
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidInput(errors.Errorf("invalid ID %q", fs.Arg(0)))
	}
	return id, nil
}

// dateValue is a flag.Value holding an ISO 8601 date
type dateValue struct {
	t *time.Time
}

func (d dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

func (d dateValue) Set(s string) error {
	t, err := repoapi.ParseTime(s)
	if err != nil {
		return errors.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	*d.t = t
	return nil
}

// listValue is a flag.Value holding a comma-separated list
type listValue struct {
	list *[]string
	set  bool
}

func (l *listValue) String() string {
	if l.list == nil {
		return ""
	}
	return strings.Join(*l.list, ",")
}

func (l *listValue) Set(s string) error {
	l.set = true
	*l.list = nil
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l.list = append(*l.list, item)
		}
	}
	return nil
}

// selectionValue is a flag.Value holding a location selection like `Port:9`
type selectionValue struct {
	sel *repoapi.Selection
}

func (s selectionValue) String() string {
	if s.sel == nil || s.sel.ID == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", s.sel.Type, s.sel.ID)
}

func (s selectionValue) Set(v string) error {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return errors.Errorf("invalid location %q, use TYPE:ID as listed by the locations command", v)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return errors.Errorf("invalid location ID %q", parts[1])
	}
	*s.sel = repoapi.Selection{ID: id, Type: parts[0], Label: v, SelectedLabel: v}
	return nil
}
