package validate_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/httpreq/internal/validate"
)

type fileConfig struct {
	Endpoint string `yaml:"endpoint,omitempty" validate:"required,url"`
	Workers  int    `yaml:"workers" validate:"gt=0"`
}

type builderState struct {
	Target  string `field:"target" validate:"required"`
	Retries int    `validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	testCases := map[string]struct {
		val    any
		expErr validate.FieldErrors
	}{
		"validConfig": {
			val: fileConfig{Endpoint: "https://example.com", Workers: 1},
		},
		"yamlNameAndRequired": {
			val: fileConfig{Workers: 1},
			expErr: validate.FieldErrors{
				{Field: "endpoint", Err: "This field is required"},
			},
		},
		"urlMessage": {
			val: fileConfig{Endpoint: "/relative", Workers: 1},
			expErr: validate.FieldErrors{
				{Field: "endpoint", Err: "Must be an absolute URL"},
			},
		},
		"translatedMessage": {
			val: fileConfig{Endpoint: "https://example.com"},
			expErr: validate.FieldErrors{
				{Field: "workers", Err: "workers must be greater than 0"},
			},
		},
		"fieldTagAndStructName": {
			val: builderState{Retries: -1},
			expErr: validate.FieldErrors{
				{Field: "target", Err: "This field is required"},
				{Field: "Retries", Err: "Retries must be 0 or greater"},
			},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := validate.Struct(tc.val)
			if tc.expErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
				return
			}

			var fe validate.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %T: %v", err, err)
			}
			if diff := cmp.Diff(tc.expErr, fe); diff != "" {
				t.Errorf("field errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	fe := validate.FieldErrors{
		{Field: "url", Err: "This field is required"},
		{Field: "client", Err: "This field is required"},
	}

	if got, want := fe.Error(), "url: This field is required; client: This field is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"url", "client"}, fe.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}
