package form

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	if err == nil {
		return FieldErrors{}
	}
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Validate() error = %v, want FieldErrors", err)
	}
	return fe
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name string
		form Password
		want FieldErrors
	}{
		{
			name: "valid",
			form: Password{CurrentPassword: "old", NewPassword: "12345678", ConfirmPassword: "12345678"},
			want: FieldErrors{},
		},
		{
			name: "empty",
			form: Password{},
			want: FieldErrors{
				"currentPassword": "Current password required",
				"newPassword":     "New password required",
				"confirmPassword": "Confirm password required",
			},
		},
		{
			name: "short and mismatched",
			form: Password{CurrentPassword: "old", NewPassword: "1234567", ConfirmPassword: "12345678"},
			want: FieldErrors{
				"newPassword":     "Password should be more than 8 characters!",
				"confirmPassword": "Passwords do not match",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldErrors(t, Validate(tt.form))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateOffer(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	valid := Offer{
		ServiceID:           1,
		LoadingTerminalID:   2,
		LoadingDate:         &date,
		DischargeTerminalID: 3,
		AvailableTEU:        10,
		ContactEmail:        "ops@example.com",
		OpenUntil:           &date,
	}
	if err := Validate(valid); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	got := fieldErrors(t, Validate(Offer{ContactEmail: "not-an-email"}))
	want := FieldErrors{
		"chosenService":         "Required service",
		"chosenLoadingPort":     "Port of loading required",
		"selectedLoadingDate":   "Date of loading required",
		"chosenDischargePort":   "Port of discharge required",
		"availableTEU":          "Available TEU required",
		"emailContact":          "email incorrect",
		"selectedOpenUntilDate": "Expire Date required",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateContact(t *testing.T) {
	got := fieldErrors(t, Validate(Contact{}))
	want := FieldErrors{
		"fullName": "Required Full Name",
		"email":    "email required",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
	if err := Validate(Contact{FullName: "Ada Lovelace", Email: "ada@example.com"}); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidateLogin(t *testing.T) {
	got := fieldErrors(t, Validate(Login{Email: "ada"}))
	want := FieldErrors{
		"email":    "Invalid email address",
		"password": "Required",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldErrorsString(t *testing.T) {
	err := FieldErrors{"b": "second", "a": "first"}
	if got, want := err.Error(), "a: first; b: second"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
