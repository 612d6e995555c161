package main

import (
	"flag"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"Reposition/internal/filter"
	"Reposition/pkg/repoapi"
)

func TestSelectionValue(t *testing.T) {
	var sel repoapi.Selection
	v := selectionValue{&sel}
	if err := v.Set("Port:9"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if sel.ID != 9 || sel.Type != "Port" {
		t.Errorf("Set() = %+v", sel)
	}
	for _, invalid := range []string{"9", "Port:", ":9", "Port:-1", "Port:x"} {
		if err := v.Set(invalid); err == nil {
			t.Errorf("Set(%q) succeeded", invalid)
		}
	}
}

func TestFilterFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var f filterFlags
	f.register(fs)
	if err := fs.Parse([]string{"-max-teu", "500", "-hide-swap", "-companies", "MSC, Maersk", "-eta", "2,10"}); err != nil {
		t.Fatal(err)
	}
	if !f.changed() {
		t.Fatal("changed() = false")
	}

	base := filter.Default(timeNow())
	opts, err := f.options(base)
	if err != nil {
		t.Fatalf("options() error = %v", err)
	}
	if opts.MaxTEUPrice != 500 || opts.MaxFEUPrice != base.MaxFEUPrice {
		t.Errorf("prices = %v/%v", opts.MaxTEUPrice, opts.MaxFEUPrice)
	}
	if !opts.ShowSale || opts.ShowSlotSwap || !opts.ShowWithoutPrice {
		t.Errorf("toggles = %v %v %v", opts.ShowSale, opts.ShowSlotSwap, opts.ShowWithoutPrice)
	}
	if diff := cmp.Diff([]string{"MSC", "Maersk"}, opts.SelectedCompanies); diff != "" {
		t.Errorf("SelectedCompanies mismatch (-want +got):\n%s", diff)
	}
	if opts.ETAValues != [2]int{2, 10} {
		t.Errorf("ETAValues = %v", opts.ETAValues)
	}
}

func TestFilterFlagsInvalidETA(t *testing.T) {
	for _, eta := range []string{"10,2", "0,200", "1", "a,b"} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		var f filterFlags
		f.register(fs)
		if err := fs.Parse([]string{"-eta", eta}); err != nil {
			t.Fatal(err)
		}
		if _, err := f.options(filter.Default(timeNow())); !errors.Is(err, filter.ErrInvalidETAValues) {
			t.Errorf("options() with -eta %s error = %v, want ErrInvalidETAValues", eta, err)
		}
	}
}
