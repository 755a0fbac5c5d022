package project

import (
	"errors"
	"testing"

	"github.com/fernandofps20/tsui5/internal/apperr"
	"github.com/fernandofps20/tsui5/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProperties(t *testing.T) {
	p := NewProperties("myapp", "com.acme", "jdoe", nil)

	assert.Equal(t, "myapp", p.Application)
	assert.Equal(t, "com.acme", p.Namespace)
	assert.Equal(t, "jdoe", p.Author)
	assert.Equal(t, "com.acme.myapp", p.AppID)
	assert.Equal(t, "com/acme/myapp", p.AppURI)
	assert.Equal(t, "OpenUI5", p.Framework)
	assert.Equal(t, "1.100.0", p.FrameworkVersion)
	assert.Equal(t, "@openui5/ts-types-esm", p.TypesPackage)
	assert.Equal(t, "1.100.0", p.TypesPackageVersion)
	assert.Nil(t, p.SetupCompleted)
}

func TestNewProperties_EmptyNamespace(t *testing.T) {
	p := NewProperties("myapp", "", "jdoe", nil)
	assert.Equal(t, "myapp", p.AppID)
	assert.Equal(t, "myapp", p.AppURI)
}

func TestNewProperties_ConfigOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Framework = "SAPUI5"
	cfg.FrameworkVersion = "1.120.0"

	p := NewProperties("shop", "a.b.c", "x", cfg)
	assert.Equal(t, "SAPUI5", p.Framework)
	assert.Equal(t, "1.120.0", p.FrameworkVersion)
	assert.Equal(t, "a/b/c/shop", p.AppURI)
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr string
	}{
		{"myapp", ""},
		{"my-app-2", ""},
		{"", "You must provide a valid project name."},
		{"MyApp", "MyApp is not a valid name. Use lower-case and dashes only."},
		{"my_app", "my_app is not a valid name. Use lower-case and dashes only."},
		{"my app", "my app is not a valid name. Use lower-case and dashes only."},
		{"../escape", "../escape is not a valid name. Use lower-case and dashes only."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.InvalidName))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateNamespace(t *testing.T) {
	for _, ok := range []string{"", "com.acme", "my_company.apps", "A1"} {
		assert.NoError(t, ValidateNamespace(ok), ok)
	}
	for _, bad := range []string{"com-acme", "com acme", "com/acme"} {
		err := ValidateNamespace(bad)
		require.Error(t, err, bad)
		assert.Equal(t, "Please use alpha numeric characters and dots only for the namespace.", err.Error())
	}
}

func TestValidateAuthor(t *testing.T) {
	for _, ok := range []string{"", "jdoe", "JaneDoe42"} {
		assert.NoError(t, ValidateAuthor(ok), ok)
	}
	for _, bad := range []string{"Jane Doe", "j.doe", "jane@acme"} {
		err := ValidateAuthor(bad)
		require.Error(t, err, bad)
		assert.Equal(t, "Author not valid", err.Error())
	}
}
