// Package project creates new tsui5 applications and reads the state file
// that marks a directory as one.
package project

import (
	"regexp"
	"strings"

	"github.com/fernandofps20/tsui5/internal/apperr"
	"github.com/fernandofps20/tsui5/internal/config"
)

var (
	nameRe      = regexp.MustCompile(`^[a-z0-9-]+$`)
	namespaceRe = regexp.MustCompile(`^[a-zA-Z0-9_.]*$`)
	authorRe    = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
)

// Properties is the identity of a project. It is the data every project
// template renders with and the content of tsui5.json.
type Properties struct {
	Application         string `json:"application"`
	Namespace           string `json:"namespace"`
	Author              string `json:"author"`
	Framework           string `json:"framework"`
	FrameworkVersion    string `json:"frameworkVersion"`
	TypesPackage        string `json:"typesPackage"`
	TypesPackageVersion string `json:"typesPackageVersion"`
	AppID               string `json:"appId"`
	AppURI              string `json:"appURI"`
	SetupCompleted      *bool  `json:"setupCompleted,omitempty"`
}

// NewProperties derives the full property set for an application. Platform
// values come from cfg; a nil cfg uses the built-in defaults.
func NewProperties(application, namespace, author string, cfg *config.Config) *Properties {
	if cfg == nil {
		cfg = config.Default()
	}

	p := &Properties{
		Application:         application,
		Namespace:           namespace,
		Author:              author,
		Framework:           cfg.Framework,
		FrameworkVersion:    cfg.FrameworkVersion,
		TypesPackage:        cfg.TypesPackage,
		TypesPackageVersion: cfg.TypesPackageVersion,
		AppID:               application,
		AppURI:              application,
	}
	if namespace != "" {
		p.AppID = namespace + "." + application
		p.AppURI = strings.ReplaceAll(namespace, ".", "/") + "/" + application
	}
	return p
}

// ValidateName checks a project name: lower-case letters, digits and dashes.
func ValidateName(name string) error {
	if name == "" {
		return apperr.New(apperr.InvalidName, "You must provide a valid project name.")
	}
	if !nameRe.MatchString(name) {
		return apperr.New(apperr.InvalidName, "%s is not a valid name. Use lower-case and dashes only.", name)
	}
	return nil
}

// ValidateNamespace accepts letters, digits, underscores and dots. The empty
// namespace is allowed.
func ValidateNamespace(ns string) error {
	if !namespaceRe.MatchString(ns) {
		return apperr.New(apperr.InvalidName, "Please use alpha numeric characters and dots only for the namespace.")
	}
	return nil
}

// ValidateAuthor accepts letters and digits only.
func ValidateAuthor(author string) error {
	if !authorRe.MatchString(author) {
		return apperr.New(apperr.InvalidName, "Author not valid")
	}
	return nil
}
